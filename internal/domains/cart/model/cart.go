package model

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity caps a single line, mirrors the storefront quantity picker
const MaxQuantity = 100

var (
	ErrInvalidQuantity = errors.New("quantity must be >= 1")
	ErrQuantityTooHigh = errors.New("quantity cannot exceed 100")
	ErrInvalidPrice    = errors.New("price must be >= 0")
	ErrItemNotFound    = errors.New("item not found")
	ErrMissingProduct  = errors.New("productId is required")
)

// CartItem is one line of the checkout snapshot.
// Price is the unit price the shopper saw, already post-discount.
type CartItem struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
	Category  string          `json:"category,omitempty"`
}

// Validate checks product, quantity and price bounds.
// Value receiver so ozzo validates []CartItem element-wise.
func (ci CartItem) Validate() error {
	if ci.ProductID == uuid.Nil {
		return ErrMissingProduct
	}
	if ci.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if ci.Quantity > MaxQuantity {
		return ErrQuantityTooHigh
	}
	if ci.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// LineTotal is price × quantity
func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Cart accumulates items keyed by product, in insertion order.
// Not safe for concurrent use; the server builds one per request.
type Cart struct {
	Items []CartItem `json:"items"`
}

// NewCart builds a cart from a submitted snapshot, merging duplicate products
func NewCart(items []CartItem) (*Cart, error) {
	c := &Cart{}
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add appends item, or increases the quantity of an existing line for the same product.
// The existing line keeps its price.
func (c *Cart) Add(item CartItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	if i := c.indexOf(item.ProductID); i >= 0 {
		merged := c.Items[i]
		merged.Quantity += item.Quantity
		if merged.Quantity > MaxQuantity {
			return ErrQuantityTooHigh
		}
		c.Items[i] = merged
		return nil
	}

	c.Items = append(c.Items, item)
	return nil
}

// Remove drops the line for productID, no-op when absent
func (c *Cart) Remove(productID uuid.UUID) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of a line; zero or less removes it
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrItemNotFound
	}
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	if quantity > MaxQuantity {
		return ErrQuantityTooHigh
	}
	c.Items[i].Quantity = quantity
	return nil
}

// Subtotal is Σ price × quantity, before tax, shipping and discount
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal())
	}
	return total
}

// ItemCount is the total number of units
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Clear() {
	c.Items = nil
}

// ProductIDs returns the distinct product ids in cart order
func (c *Cart) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
