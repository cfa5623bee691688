package domain

import (
	"encoding/json"
	"time"
)

const DefaultUnit = "kg"

type CartItem struct {
	ID       string    `json:"id"`
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	Unit     string    `json:"unit"`
	Notes    string    `json:"notes,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Matches reports whether the item is the merge target for (productID, unit).
func (i CartItem) Matches(productID, unit string) bool {
	return i.Product.ID == productID && i.Unit == unit
}

func (i CartItem) Clone() CartItem {
	c := i
	c.Product = i.Product.Clone()
	return c
}

// Cart is the single per-device aggregate. EstimatedTotal is derived and
// recomputed by the owner on every mutation.
type Cart struct {
	ID             string     `json:"id"`
	Items          []CartItem `json:"items"`
	EstimatedTotal float64    `json:"estimated_total"`
	Currency       string     `json:"currency"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TotalItems is the number of distinct items, not the summed quantity.
func (c Cart) TotalItems() int {
	return len(c.Items)
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	for i, item := range c.Items {
		out.Items[i] = item.Clone()
	}
	return out
}

func (c Cart) Summary() CartSummary {
	return CartSummary{
		TotalQuantity:  c.TotalQuantity(),
		EstimatedTotal: c.EstimatedTotal,
		Currency:       c.Currency,
		distinct:       c.TotalItems(),
	}
}

// MarshalJSON adds the derived total_items field.
func (c Cart) MarshalJSON() ([]byte, error) {
	type cartAlias Cart
	return json.Marshal(struct {
		cartAlias
		TotalItems int `json:"total_items"`
	}{cartAlias(c), c.TotalItems()})
}

// CartSummary exposes the distinct item count under two names, TotalItems
// and ItemCount, backed by one value.
type CartSummary struct {
	TotalQuantity  int
	EstimatedTotal float64
	Currency       string
	distinct       int
}

func (s CartSummary) TotalItems() int { return s.distinct }

func (s CartSummary) ItemCount() int { return s.distinct }

func (s CartSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalItems     int     `json:"total_items"`
		TotalQuantity  int     `json:"total_quantity"`
		EstimatedTotal float64 `json:"estimated_total"`
		Currency       string  `json:"currency"`
		ItemCount      int     `json:"item_count"`
	}{s.distinct, s.TotalQuantity, s.EstimatedTotal, s.Currency, s.distinct})
}
