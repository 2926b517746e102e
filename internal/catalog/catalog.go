// Package catalog holds the static reference data of the chain: product
// categories and prices, stores, product types, materials and income types.
//
// A Catalog is immutable after New and safe for concurrent readers.
// Lookups never fail; a miss yields a neutral fallback.
package catalog

import (
	"strings"

	"store-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// Fallbacks returned on lookup misses
const (
	UnknownCategory   = "unknown"
	UnknownProduct    = "Unknown Product"
	UnknownStore      = "Unknown Store"
	UnknownMaterial   = "Unknown Material"
	UnknownIncomeType = "Unknown Income Type"
)

// Category groups product lines (models priced per line) or flavor groups
// (priced at category level).
type Category struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Lines       []Line          `json:"lines,omitempty"`
	Flavors     []FlavorGroup   `json:"flavors,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

// Line is a product sold in several models at one price
type Line struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Models      []string        `json:"models"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

// FlavorGroup is a named list of flavors inside a flavor category
type FlavorGroup struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Flavors []string `json:"flavors"`
}

// Product is one sellable name with its category and unit price
type Product struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// IsFlavorCategory reports whether prices are set at category level
func (c Category) IsFlavorCategory() bool {
	return len(c.Flavors) > 0
}

type indexEntry struct {
	product  Product
	position int
}

type flavorMatcher struct {
	category Category
	position int
}

// Catalog is the read-only lookup table built once from Data
type Catalog struct {
	categories []Category
	products   []Product
	index      map[string]indexEntry
	flavored   []flavorMatcher

	stores       []model.Store
	storeIndex   map[model.StoreID]model.Store
	productTypes []model.ProductType
	materials    []model.Material
	incomeTypes  []model.IncomeCategory
}

// Default returns a catalog over DefaultData
func Default() *Catalog {
	return New(DefaultData())
}

// New flattens the nested category table into a name index.
// When two categories produce the same name the earlier one wins.
func New(data Data) *Catalog {
	c := &Catalog{
		categories:   data.Categories,
		index:        make(map[string]indexEntry),
		stores:       data.Stores,
		storeIndex:   make(map[model.StoreID]model.Store, len(data.Stores)),
		productTypes: data.ProductTypes,
		materials:    data.Materials,
		incomeTypes:  data.IncomeTypes,
	}

	for pos, cat := range data.Categories {
		if cat.IsFlavorCategory() {
			c.flavored = append(c.flavored, flavorMatcher{category: cat, position: pos})
		}
		for _, p := range expand(cat) {
			c.products = append(c.products, p)
			if _, exists := c.index[p.Name]; !exists {
				c.index[p.Name] = indexEntry{product: p, position: pos}
			}
		}
	}

	for _, s := range data.Stores {
		c.storeIndex[s.ID] = s
	}
	return c
}

func expand(cat Category) []Product {
	var out []Product
	for _, line := range cat.Lines {
		for _, m := range line.Models {
			out = append(out, Product{Name: line.Name + " " + m, Category: cat.Key, Price: line.Price})
		}
	}
	for _, group := range cat.Flavors {
		for _, f := range group.Flavors {
			out = append(out, Product{Name: group.Name + " " + f, Category: cat.Key, Price: cat.Price})
		}
	}
	return out
}

// Lookup finds the category and price of a sellable name. Categories are
// searched in declaration order: exact reconstructed names for product
// lines, flavor-group name containment for flavor categories.
func (c *Catalog) Lookup(name string) (Product, bool) {
	exact, hasExact := c.index[name]
	for _, fm := range c.flavored {
		if hasExact && fm.position > exact.position {
			break
		}
		for _, group := range fm.category.Flavors {
			if strings.Contains(name, group.Name) {
				return Product{Name: name, Category: fm.category.Key, Price: fm.category.Price}, true
			}
		}
	}
	if hasExact {
		return exact.product, true
	}
	return Product{}, false
}

// PriceOf returns the unit price of a product name, zero when unknown
func (c *Catalog) PriceOf(name string) decimal.Decimal {
	if p, ok := c.Lookup(name); ok {
		return p.Price
	}
	return decimal.Zero
}

// CategoryOf returns the category key of a product name, "unknown" when unknown
func (c *Catalog) CategoryOf(name string) string {
	if p, ok := c.Lookup(name); ok {
		return p.Category
	}
	return UnknownCategory
}

// ResolveProductName builds "<line name> <model>" (or "<group name> <flavor>")
// from catalog keys. Unknown keys resolve to UnknownProduct.
func (c *Catalog) ResolveProductName(categoryKey, productKey, variant string) string {
	cat, ok := c.Category(categoryKey)
	if !ok {
		return UnknownProduct
	}
	for _, line := range cat.Lines {
		if line.Key == productKey && contains(line.Models, variant) {
			return line.Name + " " + variant
		}
	}
	for _, group := range cat.Flavors {
		if group.Key == productKey && contains(group.Flavors, variant) {
			return group.Name + " " + variant
		}
	}
	return UnknownProduct
}

// Category returns a category by key
func (c *Catalog) Category(key string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Key == key {
			return cat, true
		}
	}
	return Category{}, false
}

// Categories returns every category in declaration order
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// Products lists sellable products of a category; "all" or "" lists everything
func (c *Catalog) Products(category string) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || category == "all" || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ProductNames lists every sellable name in declaration order
func (c *Catalog) ProductNames() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// PuffModels lists the names of the puff category
func (c *Catalog) PuffModels() []string {
	var names []string
	for _, p := range c.Products(CategoryPuff) {
		names = append(names, p.Name)
	}
	return names
}

// LiquideFlavors lists flavored names of one group ("gourmet", "fruite") or of "all"
func (c *Catalog) LiquideFlavors(group string) []string {
	cat, ok := c.Category(CategoryLiquide)
	if !ok {
		return nil
	}
	var names []string
	for _, g := range cat.Flavors {
		if group != "all" && group != "" && g.Key != group {
			continue
		}
		for _, f := range g.Flavors {
			names = append(names, g.Name+" "+f)
		}
	}
	return names
}

// Stores returns every store
func (c *Catalog) Stores() []model.Store {
	return append([]model.Store(nil), c.stores...)
}

// Store returns a store by id
func (c *Catalog) Store(id model.StoreID) (model.Store, bool) {
	s, ok := c.storeIndex[id]
	return s, ok
}

// HasStore reports whether id references an existing store
func (c *Catalog) HasStore(id model.StoreID) bool {
	_, ok := c.storeIndex[id]
	return ok
}

// StoreName returns the display name of a store
func (c *Catalog) StoreName(id model.StoreID) string {
	if s, ok := c.storeIndex[id]; ok {
		return s.Name
	}
	return UnknownStore
}

// ProductTypes returns the product type reference list
func (c *Catalog) ProductTypes() []model.ProductType {
	return append([]model.ProductType(nil), c.productTypes...)
}

// HasProductType reports whether id references a product type
func (c *Catalog) HasProductType(id int) bool {
	for _, p := range c.productTypes {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ProductTypeName resolves a product type id to its display name
func (c *Catalog) ProductTypeName(id int) string {
	for _, p := range c.productTypes {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownProduct
}

// Materials returns the material reference list
func (c *Catalog) Materials() []model.Material {
	return append([]model.Material(nil), c.materials...)
}

// HasMaterial reports whether id references a material
func (c *Catalog) HasMaterial(id int) bool {
	for _, m := range c.materials {
		if m.ID == id {
			return true
		}
	}
	return false
}

// MaterialName resolves a material id to its display name
func (c *Catalog) MaterialName(id int) string {
	for _, m := range c.materials {
		if m.ID == id {
			return m.Name
		}
	}
	return UnknownMaterial
}

// IncomeTypes returns the income type reference list
func (c *Catalog) IncomeTypes() []model.IncomeCategory {
	return append([]model.IncomeCategory(nil), c.incomeTypes...)
}

// IncomeTypeName resolves an income type to its display name
func (c *Catalog) IncomeTypeName(t model.IncomeType) string {
	for _, it := range c.incomeTypes {
		if it.ID == t {
			return it.Name
		}
	}
	return UnknownIncomeType
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
