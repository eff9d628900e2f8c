package shopping

import "time"

// Cart holds at most one item per product; adding an existing product merges
// quantities. TotalCents is always the sum of line subtotals.
type Cart struct {
	UserID     int64      `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CartItem struct {
	ProductID      int64 `json:"product_id"`
	Quantity       int   `json:"quantity"`
	UnitPriceCents int64 `json:"unit_price_cents"`
}

func NewCart(userID int64) *Cart {
	now := time.Now().UTC()
	return &Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}
}

// AddItem merges quantity into an existing line or appends a new one, then
// recomputes the total.
func (c *Cart) AddItem(productID int64, quantity int, unitPriceCents int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.recompute()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID:      productID,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
	})
	c.recompute()
}

// RemoveItem deletes the line for productID, reporting whether it existed.
func (c *Cart) RemoveItem(productID int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute()
			return true
		}
	}
	return false
}

// Clear drops every line and zeroes the total.
func (c *Cart) Clear() {
	c.Items = nil
	c.recompute()
}

func (c *Cart) recompute() {
	var total int64
	for _, it := range c.Items {
		total += int64(it.Quantity) * it.UnitPriceCents
	}
	c.TotalCents = total
	c.UpdatedAt = time.Now().UTC()
}
