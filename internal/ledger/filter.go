// Package ledger holds the pure computations over ledger collections:
// store scoping, sums, averages and groupings. Nothing here performs I/O
// or validates input; every function is total over well-formed records.
package ledger

import (
	"strings"
	"time"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
)

// Scope returns the records of one store, preserving their relative order.
// AllStores returns the input unchanged.
func Scope[E model.Record](entries []E, scope model.StoreScope) []E {
	if scope.All() {
		return entries
	}
	out := make([]E, 0, len(entries))
	for _, e := range entries {
		if e.StoreRef() == scope.Store() {
			out = append(out, e)
		}
	}
	return out
}

// Filter keeps the entries matching keep, preserving order
func Filter[E any](entries []E, keep func(E) bool) []E {
	out := make([]E, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// OnDay keeps entries dated on the same calendar day as day, in day's location
func OnDay[E model.Entry](entries []E, day time.Time) []E {
	y, m, d := day.Date()
	loc := day.Location()
	return Filter(entries, func(e E) bool {
		ey, em, ed := e.EntryDate().In(loc).Date()
		return ey == y && em == m && ed == d
	})
}

// ByIncomeType keeps income entries of the given type; "all" or "" keeps every income entry
func ByIncomeType(entries []model.Entry, incomeType string) []model.Entry {
	return Filter(entries, func(e model.Entry) bool {
		income, ok := e.(model.Income)
		if !ok {
			return false
		}
		return incomeType == "" || incomeType == "all" || string(income.Type) == incomeType
	})
}

// ByCategory keeps sales whose product belongs to category; "all" or "" keeps every sale
func ByCategory(entries []model.Entry, c *catalog.Catalog, category string) []model.Entry {
	return Filter(entries, func(e model.Entry) bool {
		sale, ok := e.(model.Sale)
		if !ok {
			return false
		}
		return category == "" || strings.EqualFold(category, "all") || c.CategoryOf(sale.ProductName) == category
	})
}

// Recent returns the first n entries. Collections are kept newest first.
func Recent[E any](entries []E, n int) []E {
	if n < 0 {
		n = 0
	}
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}
