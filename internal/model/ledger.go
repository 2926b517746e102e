package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted and API amounts are plain JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Kind is the closed set of ledger entry variants
type Kind string

const (
	KindSale          Kind = "sale"
	KindIncome        Kind = "income"
	KindCredit        Kind = "credit"
	KindPersonalUse   Kind = "personal_use"
	KindReceivedStock Kind = "received_stock"
)

// Kinds lists every ledger kind in display order
var Kinds = []Kind{KindSale, KindIncome, KindCredit, KindPersonalUse, KindReceivedStock}

var kindAliases = map[string]Kind{
	"sale":              KindSale,
	"sales":             KindSale,
	"income":            KindIncome,
	"credit":            KindCredit,
	"credits":           KindCredit,
	"personal_use":      KindPersonalUse,
	"received_stock":    KindReceivedStock,
	"received_products": KindReceivedStock,
}

// ParseKind accepts kind names in snake or kebab case, singular or plural
func ParseKind(value string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	if k, ok := kindAliases[normalized]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown ledger kind %q", value)
}

// CollectionKey is the fixed storage key of the kind's collection
func (k Kind) CollectionKey() string {
	switch k {
	case KindSale:
		return "store_sales"
	case KindIncome:
		return "store_income"
	case KindCredit:
		return "store_credits"
	case KindPersonalUse:
		return "store_personal_use"
	case KindReceivedStock:
		return "store_received_stock"
	default:
		return ""
	}
}

// Label is the screen title of the kind
func (k Kind) Label() string {
	switch k {
	case KindSale:
		return "Sales"
	case KindIncome:
		return "Income"
	case KindCredit:
		return "Credits"
	case KindPersonalUse:
		return "Personal Use"
	case KindReceivedStock:
		return "Received Products"
	default:
		return "Unknown"
	}
}

// Record is anything kept in a store-scoped collection
type Record interface {
	RecordID() int64
	StoreRef() StoreID
}

// Entry is a ledger record. The set of implementations is closed.
type Entry interface {
	Record
	Kind() Kind
	EntryDate() time.Time
	ledgerEntry()
}

// EntryHeader holds the fields shared by every ledger variant
type EntryHeader struct {
	ID      int64     `json:"id"`
	StoreID StoreID   `json:"store_id"`
	Date    time.Time `json:"date"`
}

func (h EntryHeader) RecordID() int64      { return h.ID }
func (h EntryHeader) StoreRef() StoreID    { return h.StoreID }
func (h EntryHeader) EntryDate() time.Time { return h.Date }

// Sale of a catalog product
type Sale struct {
	EntryHeader
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeType is the reporting period of an income entry
type IncomeType string

const (
	IncomeDaily   IncomeType = "daily"
	IncomeMonthly IncomeType = "monthly"
	Income10Days  IncomeType = "10days"
)

// Valid reports whether t is a declared income type
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeDaily, IncomeMonthly, Income10Days:
		return true
	default:
		return false
	}
}

// Income recorded for a period
type Income struct {
	EntryHeader
	Type        IncomeType      `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Credit extended by the store
type Credit struct {
	EntryHeader
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

// PersonalUse of stock by staff
type PersonalUse struct {
	EntryHeader
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// ReceivedStock from a supplier
type ReceivedStock struct {
	EntryHeader
	ProductID int    `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Supplier  string `json:"supplier"`
	Notes     string `json:"notes"`
}

func (Sale) Kind() Kind          { return KindSale }
func (Income) Kind() Kind        { return KindIncome }
func (Credit) Kind() Kind        { return KindCredit }
func (PersonalUse) Kind() Kind   { return KindPersonalUse }
func (ReceivedStock) Kind() Kind { return KindReceivedStock }

func (Sale) ledgerEntry()          {}
func (Income) ledgerEntry()        {}
func (Credit) ledgerEntry()        {}
func (PersonalUse) ledgerEntry()   {}
func (ReceivedStock) ledgerEntry() {}

// AmountOf returns the monetary amount of an entry; variants without one yield zero
func AmountOf(e Entry) decimal.Decimal {
	switch v := e.(type) {
	case Sale:
		return v.Amount
	case Income:
		return v.Amount
	case Credit:
		return v.Amount
	case PersonalUse, ReceivedStock:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// QuantityOf returns the item count of an entry; variants without one yield zero
func QuantityOf(e Entry) int64 {
	switch v := e.(type) {
	case Sale:
		return int64(v.Quantity)
	case PersonalUse:
		return int64(v.Quantity)
	case ReceivedStock:
		return int64(v.Quantity)
	case Income, Credit:
		return 0
	default:
		return 0
	}
}

// WithHeader returns a copy of e carrying the given header
func WithHeader(e Entry, h EntryHeader) Entry {
	switch v := e.(type) {
	case Sale:
		v.EntryHeader = h
		return v
	case Income:
		v.EntryHeader = h
		return v
	case Credit:
		v.EntryHeader = h
		return v
	case PersonalUse:
		v.EntryHeader = h
		return v
	case ReceivedStock:
		v.EntryHeader = h
		return v
	default:
		return e
	}
}
