package catalog

import (
	"store-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// Category keys of the default product table
const (
	CategoryPuff        = "puff"
	CategoryPuffDevice  = "puffDevice"
	CategoryMech        = "mech"
	CategoryCoil        = "coil"
	CategoryVapeBattery = "vapeBattery"
	CategoryLiquide     = "liquide"
)

// Data is everything a Catalog is built from
type Data struct {
	Categories   []Category
	Stores       []model.Store
	ProductTypes []model.ProductType
	Materials    []model.Material
	IncomeTypes  []model.IncomeCategory
}

// DefaultData is the reference data shipped with the application
func DefaultData() Data {
	return Data{
		Categories:   defaultCategories(),
		Stores:       defaultStores(),
		ProductTypes: defaultProductTypes(),
		Materials:    defaultMaterials(),
		IncomeTypes:  defaultIncomeTypes(),
	}
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func defaultCategories() []Category {
	return []Category{
		{
			Key:  CategoryPuff,
			Name: "Puff",
			Lines: []Line{
				{Key: "vosol", Name: "Vosol", Models: []string{"20k", "6k", "4k"}, Price: price(25), Description: "Premium disposable vape device"},
				{Key: "nexbar", Name: "Nexbar", Models: []string{"18k", "10k", "capsul"}, Price: price(30), Description: "Advanced disposable vape with extended battery"},
			},
		},
		{
			Key:  CategoryPuffDevice,
			Name: "Puff Device",
			Lines: []Line{
				{Key: "vosol", Name: "Vosol Device", Models: []string{"Standard", "Pro"}, Price: price(45), Description: "Rechargeable vape device"},
				{Key: "capsul", Name: "Capsul Device", Models: []string{"Mini", "Max"}, Price: price(50), Description: "Compact vape device with capsule system"},
			},
		},
		{
			Key:  CategoryMech,
			Name: "Mechanical",
			Lines: []Line{
				{Key: "pnp", Name: "PnP", Models: []string{"PnP-TM1", "PnP-TM2", "PnP-R1", "PnP-R2"}, Price: price(35), Description: "PnP coil system"},
				{Key: "voopoo", Name: "Voopoo", Models: []string{"Voopoo PnP", "Voopoo TPP"}, Price: price(40), Description: "Voopoo coil technology"},
				{Key: "zCoil", Name: "Z Coil", Models: []string{"Z1", "Z2", "Z3", "Z4"}, Price: price(30), Description: "Z coil series"},
				{Key: "gtCores", Name: "GT Cores", Models: []string{"GT2", "GT4", "GT6", "GT8"}, Price: price(25), Description: "GT core coil system"},
				{Key: "gti", Name: "GTI", Models: []string{"GTI 0.2", "GTI 0.4", "GTI 0.6"}, Price: price(28), Description: "GTI coil technology"},
				{Key: "tpp", Name: "TPP", Models: []string{"TPP-DM1", "TPP-DM2", "TPP-DM3"}, Price: price(32), Description: "TPP coil system"},
			},
		},
		{
			Key:  CategoryCoil,
			Name: "Coil",
			Lines: []Line{
				{Key: "coil28", Name: "Coil 28", Models: []string{"0.28Ω", "0.3Ω", "0.4Ω"}, Price: price(15), Description: "28 gauge coil series"},
				{Key: "coil62", Name: "Coil 62", Models: []string{"0.62Ω", "0.8Ω", "1.0Ω"}, Price: price(18), Description: "62 gauge coil series"},
			},
		},
		{
			Key:  CategoryVapeBattery,
			Name: "Vape Battery",
			Lines: []Line{
				{Key: "standard", Name: "Standard Battery", Models: []string{"1000mAh", "1500mAh", "2000mAh"}, Price: price(20), Description: "Standard vape battery"},
				{Key: "advanced", Name: "Advanced Battery", Models: []string{"2500mAh", "3000mAh", "3500mAh"}, Price: price(35), Description: "Advanced battery with fast charging"},
			},
		},
		{
			Key:         CategoryLiquide,
			Name:        "Liquide",
			Price:       price(12),
			Description: "Premium e-liquid flavors",
			Flavors: []FlavorGroup{
				{Key: "gourmet", Name: "Gourmet", Flavors: []string{
					"Vanilla Custard", "Caramel Latte", "Chocolate Fudge", "Butterscotch", "Tiramisu", "Creme Brulee",
					"Hazelnut Coffee", "Irish Cream", "Maple Syrup", "Praline", "Toffee", "White Chocolate",
				}},
				{Key: "fruite", Name: "Fruité", Flavors: []string{
					"Strawberry", "Blueberry", "Mango", "Pineapple", "Watermelon", "Apple", "Banana", "Orange",
					"Grape", "Cherry", "Peach", "Kiwi", "Lemon", "Lime", "Raspberry",
				}},
			},
		},
	}
}

func defaultStores() []model.Store {
	return []model.Store{
		{ID: "khzema", Name: "Khzema Store", Location: "Khzema Location"},
		{ID: "sahloul", Name: "Sahloul Store", Location: "Sahloul Location"},
	}
}

func defaultProductTypes() []model.ProductType {
	return []model.ProductType{
		{ID: 1, Name: "Puff", Category: "vape"},
		{ID: 2, Name: "Liquide", Category: "vape"},
		{ID: 3, Name: "Coil", Category: "vape"},
		{ID: 4, Name: "Vape Battery", Category: "vape"},
		{ID: 5, Name: "Mech", Category: "vape"},
	}
}

func defaultMaterials() []model.Material {
	return []model.Material{
		{ID: 1, Name: "Flacon 60ml", Type: "container"},
		{ID: 2, Name: "Flacon 30ml", Type: "container"},
		{ID: 3, Name: "Stickers", Type: "labeling"},
	}
}

func defaultIncomeTypes() []model.IncomeCategory {
	return []model.IncomeCategory{
		{ID: model.IncomeDaily, Name: "Daily Income"},
		{ID: model.IncomeMonthly, Name: "Monthly Income"},
		{ID: model.Income10Days, Name: "Every 10 Days"},
	}
}
