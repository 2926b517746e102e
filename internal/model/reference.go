package model

// ProductType is reference data used to resolve display names of stock records
type ProductType struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Material is reference data for packaging and labelling supplies
type Material struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// IncomeCategory names an income type for display
type IncomeCategory struct {
	ID   IncomeType `json:"id"`
	Name string     `json:"name"`
}
