package main

import (
	"time"

	"github.com/shopspring/decimal"

	"store-ledger/internal/model"
)

const day = 24 * time.Hour

// demoData is the sample ledger shown by the mobile screens, dated relative to now
type demoData struct {
	Sales         []model.Sale
	Income        []model.Income
	Credits       []model.Credit
	PersonalUse   []model.PersonalUse
	ReceivedStock []model.ReceivedStock
	Inventory     []model.InventoryItem
	Materials     []model.MaterialStock
}

func header(id int64, store model.StoreID, date time.Time) model.EntryHeader {
	return model.EntryHeader{ID: id, StoreID: store, Date: date}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func buildDemoData(now time.Time) demoData {
	const (
		khzema  model.StoreID = "khzema"
		sahloul model.StoreID = "sahloul"
	)
	calendar := func(s string) time.Time {
		t, _ := time.ParseInLocation("2006-01-02", s, now.Location())
		return t
	}

	return demoData{
		Sales: []model.Sale{
			{EntryHeader: header(1, khzema, now.Add(-time.Hour)), ProductName: "Gourmet Vanilla Custard", Quantity: 1, Amount: dec("12")},
			{EntryHeader: header(2, khzema, now.Add(-2*time.Hour)), ProductName: "Vosol 20k", Quantity: 2, Amount: dec("50")},
			{EntryHeader: header(3, khzema, now.Add(-3*time.Hour)), ProductName: "PnP PnP-TM1", Quantity: 1, Amount: dec("35")},
			{EntryHeader: header(4, sahloul, now.Add(-4*time.Hour)), ProductName: "Nexbar 18k", Quantity: 1, Amount: dec("30")},
		},
		Income: []model.Income{
			{EntryHeader: header(1, khzema, now), Type: model.IncomeDaily, Amount: dec("450"), Description: "Daily sales"},
			{EntryHeader: header(2, sahloul, now.Add(-day)), Type: model.IncomeDaily, Amount: dec("380"), Description: "Daily sales"},
			{EntryHeader: header(3, khzema, now.Add(-2*day)), Type: model.IncomeDaily, Amount: dec("520"), Description: "Daily sales"},
			{EntryHeader: header(4, khzema, now.Add(-30*day)), Type: model.IncomeMonthly, Amount: dec("12500"), Description: "Monthly revenue"},
			{EntryHeader: header(5, sahloul, now.Add(-10*day)), Type: model.Income10Days, Amount: dec("4200"), Description: "10-day period"},
			{EntryHeader: header(6, sahloul, now.Add(-60*day)), Type: model.IncomeMonthly, Amount: dec("11800"), Description: "Previous month"},
		},
		Credits: []model.Credit{
			{EntryHeader: header(1, khzema, calendar("2024-01-15")), Amount: dec("150"), Reason: "Store renovation"},
			{EntryHeader: header(2, khzema, calendar("2024-01-10")), Amount: dec("75"), Reason: "Equipment purchase"},
			{EntryHeader: header(3, sahloul, calendar("2024-01-12")), Amount: dec("200"), Reason: "Inventory expansion"},
			{EntryHeader: header(4, sahloul, calendar("2024-01-08")), Amount: dec("50"), Reason: "Marketing materials"},
			{EntryHeader: header(5, khzema, calendar("2024-01-05")), Amount: dec("100"), Reason: "Staff training"},
			{EntryHeader: header(6, sahloul, calendar("2024-01-03")), Amount: dec("125"), Reason: "Security system"},
		},
		PersonalUse: []model.PersonalUse{
			{EntryHeader: header(1, khzema, now), ProductID: 1, Quantity: 1, Reason: "Personal consumption"},
			{EntryHeader: header(2, khzema, now.Add(-day)), ProductID: 2, Quantity: 2, Reason: "Testing product"},
			{EntryHeader: header(3, khzema, now.Add(-2*day)), ProductID: 3, Quantity: 1, Reason: "Personal use"},
		},
		ReceivedStock: []model.ReceivedStock{
			{EntryHeader: header(1, khzema, now), ProductID: 1, Quantity: 20, Supplier: "Supplier A", Notes: "New shipment"},
			{EntryHeader: header(2, khzema, now.Add(-day)), ProductID: 2, Quantity: 15, Supplier: "Supplier B", Notes: "Restock"},
			{EntryHeader: header(3, khzema, now.Add(-2*day)), ProductID: 3, Quantity: 30, Supplier: "Supplier A", Notes: "Bulk order"},
		},
		Inventory: []model.InventoryItem{
			{ID: 1, ProductID: 1, StoreID: khzema, Quantity: 15, MinQuantity: 5, Price: dec("25.99")},
			{ID: 2, ProductID: 2, StoreID: khzema, Quantity: 2, MinQuantity: 3, Price: dec("12.50")},
			{ID: 3, ProductID: 3, StoreID: sahloul, Quantity: 20, MinQuantity: 5, Price: dec("18.75")},
			{ID: 4, ProductID: 4, StoreID: sahloul, Quantity: 0, MinQuantity: 5, Price: dec("45.00")},
			{ID: 5, ProductID: 5, StoreID: khzema, Quantity: 1, MinQuantity: 3, Price: dec("32.99")},
		},
		Materials: []model.MaterialStock{
			{ID: 1, MaterialID: 1, StoreID: khzema, Quantity: 8, MinQuantity: 10},
			{ID: 2, MaterialID: 2, StoreID: khzema, Quantity: 15, MinQuantity: 10},
			{ID: 3, MaterialID: 3, StoreID: khzema, Quantity: 5, MinQuantity: 20},
			{ID: 4, MaterialID: 1, StoreID: sahloul, Quantity: 12, MinQuantity: 10},
			{ID: 5, MaterialID: 2, StoreID: sahloul, Quantity: 3, MinQuantity: 10},
			{ID: 6, MaterialID: 3, StoreID: sahloul, Quantity: 25, MinQuantity: 20},
		},
	}
}
