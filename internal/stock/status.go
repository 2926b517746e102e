// Package stock classifies stock levels against their minimum thresholds.
package stock

import (
	"fmt"
	"strings"

	"store-ledger/internal/model"
)

// Status of a stock level. Ties go to the more severe state.
type Status int

const (
	InStock Status = iota
	LowStock
	OutOfStock
)

func (s Status) String() string {
	switch s {
	case OutOfStock:
		return "out_of_stock"
	case LowStock:
		return "low_stock"
	case InStock:
		return "in_stock"
	default:
		return "unknown"
	}
}

// Label is the display text of a status
func (s Status) Label() string {
	switch s {
	case OutOfStock:
		return "Out of Stock"
	case LowStock:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "out_of_stock":
		*s = OutOfStock
	case "low_stock":
		*s = LowStock
	case "in_stock":
		*s = InStock
	default:
		return fmt.Errorf("unknown stock status %q", text)
	}
	return nil
}

// Item is anything with a store and a stock level
type Item interface {
	StoreRef() model.StoreID
	StockLevel() (quantity, minQuantity int)
}

// Evaluate classifies a quantity against its minimum
func Evaluate(quantity, minQuantity int) Status {
	switch {
	case quantity <= 0:
		return OutOfStock
	case quantity <= minQuantity:
		return LowStock
	default:
		return InStock
	}
}

// Shortfall is how many units are needed to reach the minimum
func Shortfall(quantity, minQuantity int) int {
	if quantity >= minQuantity {
		return 0
	}
	return minQuantity - quantity
}

// IsMissing reports whether an item in scope sits at or below its minimum.
// The boundary is inclusive: quantity == minQuantity counts as missing.
func IsMissing(item Item, scope model.StoreScope) bool {
	if !scope.Includes(item.StoreRef()) {
		return false
	}
	q, m := item.StockLevel()
	return q <= m
}

// Missing keeps the missing items of scope, preserving order
func Missing[I Item](items []I, scope model.StoreScope) []I {
	out := make([]I, 0)
	for _, it := range items {
		if IsMissing(it, scope) {
			out = append(out, it)
		}
	}
	return out
}

// Report is the evaluation of one item
type Report[I Item] struct {
	Item      I      `json:"item"`
	Status    Status `json:"status"`
	Shortfall int    `json:"shortfall"`
}

// Inspect evaluates a single item
func Inspect[I Item](it I) Report[I] {
	q, m := it.StockLevel()
	return Report[I]{Item: it, Status: Evaluate(q, m), Shortfall: Shortfall(q, m)}
}

// Assess evaluates the missing items of scope
func Assess[I Item](items []I, scope model.StoreScope) []Report[I] {
	missing := Missing(items, scope)
	out := make([]Report[I], 0, len(missing))
	for _, it := range missing {
		out = append(out, Inspect(it))
	}
	return out
}
