package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_LabelsAndValidity(t *testing.T) {
	want := map[Status]string{
		StatusPending:   "قيد المراجعة",
		StatusConfirmed: "مؤكد",
		StatusPreparing: "جاري التحضير",
		StatusShipped:   "تم الشحن",
		StatusDelivered: "تم التسليم",
		StatusCancelled: "ملغي",
	}
	for s, label := range want {
		assert.True(t, s.IsValid(), s)
		assert.Equal(t, label, s.Label())
	}

	assert.Len(t, AllStatuses, 6)
	assert.False(t, Status("returned").IsValid())
	assert.Equal(t, "returned", Status("returned").Label())
}

func TestCanTransition_Permissive(t *testing.T) {
	// every valid pair is allowed, including backwards and out of terminal states
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			assert.NoError(t, CanTransition(from, to, false), "%s → %s", from, to)
		}
	}

	assert.ErrorIs(t, CanTransition(StatusPending, Status("lost"), false), ErrInvalidStatus)
}

func TestCanTransition_Strict(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusShipped, true}, // skipping forward
		{StatusConfirmed, StatusPreparing, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},

		{StatusConfirmed, StatusPending, false},
		{StatusShipped, StatusPreparing, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusShipped, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},

		// same status is a no-op, even for terminal states
		{StatusDelivered, StatusDelivered, true},
		{StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"→"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, true)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		})
	}
}

func TestTransitionNotAllowed_MessageUsesLabels(t *testing.T) {
	err := TransitionNotAllowed(StatusDelivered, StatusPending)
	assert.Contains(t, err.Message, "تم التسليم")
	assert.Contains(t, err.Message, "قيد المراجعة")
	assert.Equal(t, StatusDelivered, err.Details["from"])
}
