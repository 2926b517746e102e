package ledger

import (
	"github.com/shopspring/decimal"

	"store-ledger/internal/model"
)

// Field selects the value to aggregate from an element
type Field[E any] func(E) decimal.Decimal

// Amount selects the monetary amount of a ledger entry
func Amount[E model.Entry]() Field[E] {
	return func(e E) decimal.Decimal { return model.AmountOf(e) }
}

// Quantity selects the item count of a ledger entry
func Quantity[E model.Entry]() Field[E] {
	return func(e E) decimal.Decimal { return decimal.NewFromInt(model.QuantityOf(e)) }
}

// Sum adds field over entries. An empty input sums to zero.
func Sum[E any](entries []E, field Field[E]) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(field(e))
	}
	return total
}

// Count returns the number of entries
func Count[E any](entries []E) int {
	return len(entries)
}

// Average is Sum divided by Count, zero for an empty input
func Average[E any](entries []E, field Field[E]) decimal.Decimal {
	n := Count(entries)
	if n == 0 {
		return decimal.Zero
	}
	return Sum(entries, field).Div(decimal.NewFromInt(int64(n)))
}

// Group is the bucket of one key
type Group[K comparable, E any] struct {
	Key   K
	Items []E
	Total decimal.Decimal
}

// Count returns the number of items in the group
func (g Group[K, E]) Count() int {
	return len(g.Items)
}

// Grouping keeps groups in first-seen key order
type Grouping[K comparable, E any] struct {
	order  []K
	groups map[K]*Group[K, E]
}

// GroupBy buckets entries by key, accumulating Total through field
func GroupBy[E any, K comparable](entries []E, key func(E) K, field Field[E]) *Grouping[K, E] {
	g := &Grouping[K, E]{groups: make(map[K]*Group[K, E])}
	for _, e := range entries {
		k := key(e)
		bucket, ok := g.groups[k]
		if !ok {
			bucket = &Group[K, E]{Key: k, Total: decimal.Zero}
			g.groups[k] = bucket
			g.order = append(g.order, k)
		}
		bucket.Items = append(bucket.Items, e)
		bucket.Total = bucket.Total.Add(field(e))
	}
	return g
}

// Len returns the number of distinct keys
func (g *Grouping[K, E]) Len() int {
	return len(g.order)
}

// Keys returns the keys in first-seen order
func (g *Grouping[K, E]) Keys() []K {
	return append([]K(nil), g.order...)
}

// Get returns the group of a key
func (g *Grouping[K, E]) Get(key K) (Group[K, E], bool) {
	bucket, ok := g.groups[key]
	if !ok {
		return Group[K, E]{}, false
	}
	return *bucket, true
}

// Groups returns every group in first-seen key order
func (g *Grouping[K, E]) Groups() []Group[K, E] {
	out := make([]Group[K, E], 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.groups[k])
	}
	return out
}

// StoreKey groups records by store
func StoreKey[E model.Record](e E) model.StoreID {
	return e.StoreRef()
}
