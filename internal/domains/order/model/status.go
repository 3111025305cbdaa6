package model

// Status is the order lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// AllStatuses in lifecycle order, cancelled last
var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// rank positions the forward path; cancelled is off the path
var rank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusShipped:   3,
	StatusDelivered: 4,
}

var labels = map[Status]string{
	StatusPending:   "قيد المراجعة",
	StatusConfirmed: "مؤكد",
	StatusPreparing: "جاري التحضير",
	StatusShipped:   "تم الشحن",
	StatusDelivered: "تم التسليم",
	StatusCancelled: "ملغي",
}

func (s Status) IsValid() bool {
	_, ok := labels[s]
	return ok
}

func (s Status) String() string {
	return string(s)
}

// Label is the Arabic display name, falls back to the raw value
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// IsTerminal reports delivered or cancelled
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition checks from → to.
//
// Permissive mode accepts any valid target. Strict mode only moves forward
// along pending → confirmed → preparing → shipped → delivered (skipping is
// fine), and allows cancelled from any non-terminal state.
// from == to is always accepted; callers treat it as a no-op.
func CanTransition(from, to Status, strict bool) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}
	if !strict {
		return nil
	}

	if from.IsTerminal() {
		return TransitionNotAllowed(from, to)
	}
	if to == StatusCancelled {
		return nil
	}

	fromRank, ok := rank[from]
	if !ok || rank[to] <= fromRank {
		return TransitionNotAllowed(from, to)
	}
	return nil
}
