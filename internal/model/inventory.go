package model

import "github.com/shopspring/decimal"

// Collection keys of the stock lists
const (
	InventoryCollectionKey = "store_inventory"
	MaterialCollectionKey  = "store_materials"
)

// InventoryItem is the stock level of a product type in a store.
// Quantity and MinQuantity are set independently; "missing" is derived.
type InventoryItem struct {
	ID          int64           `json:"id"`
	ProductID   int             `json:"product_id"`
	StoreID     StoreID         `json:"store_id"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (i InventoryItem) RecordID() int64   { return i.ID }
func (i InventoryItem) StoreRef() StoreID { return i.StoreID }
func (i InventoryItem) StockLevel() (int, int) {
	return i.Quantity, i.MinQuantity
}

// MaterialStock is the stock level of a packaging material in a store
type MaterialStock struct {
	ID          int64   `json:"id"`
	MaterialID  int     `json:"material_id"`
	StoreID     StoreID `json:"store_id"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"min_quantity"`
}

func (m MaterialStock) RecordID() int64   { return m.ID }
func (m MaterialStock) StoreRef() StoreID { return m.StoreID }
func (m MaterialStock) StockLevel() (int, int) {
	return m.Quantity, m.MinQuantity
}
