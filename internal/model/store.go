package model

// StoreID is the stable slug of a store (e.g. "khzema")
type StoreID string

// Store is reference data defined at deployment time
type Store struct {
	ID       StoreID `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
}

// StoreScope selects the entries of one store, or of every store for admin views.
// The "all stores" scope is a sentinel and never a Store itself.
type StoreScope struct {
	store StoreID
	all   bool
}

// AllStores is the admin-wide scope
var AllStores = StoreScope{all: true}

// ScopeOf returns the scope of a single store
func ScopeOf(id StoreID) StoreScope {
	return StoreScope{store: id}
}

// ParseScope maps a query value to a scope. Empty and "all" select every store.
func ParseScope(value string) StoreScope {
	if value == "" || value == "all" {
		return AllStores
	}
	return ScopeOf(StoreID(value))
}

// All reports whether the scope covers every store
func (s StoreScope) All() bool {
	return s.all
}

// Store returns the concrete store of the scope, empty for AllStores
func (s StoreScope) Store() StoreID {
	if s.all {
		return ""
	}
	return s.store
}

// Includes reports whether a record of the given store is inside the scope
func (s StoreScope) Includes(id StoreID) bool {
	return s.all || s.store == id
}

func (s StoreScope) String() string {
	if s.all {
		return "all"
	}
	return string(s.store)
}
