package model

import "errors"

var (
	ErrInvalidRole          = errors.New("session role is not recognised")
	ErrSessionStoreRequired = errors.New("vendor session must be bound to a store")
)

// Session is the resolved identity handed over by the identity collaborator.
// The core never authenticates; it only consumes role and store.
type Session struct {
	Subject string  `json:"subject,omitempty"`
	Role    Role    `json:"role"`
	StoreID StoreID `json:"store_id,omitempty"`
}

// Validate checks the role and, for vendors, the bound store
func (s Session) Validate() error {
	if !s.Role.Valid() {
		return ErrInvalidRole
	}
	if s.Role == RoleVendor && s.StoreID == "" {
		return ErrSessionStoreRequired
	}
	return nil
}

// Scope returns the widest scope the session may read
func (s Session) Scope() StoreScope {
	if s.Role == RoleAdmin {
		return AllStores
	}
	return ScopeOf(s.StoreID)
}

// Resolve narrows a requested scope to what the session may see.
// Vendors are pinned to their own store whatever they ask for.
func (s Session) Resolve(requested StoreScope) StoreScope {
	if s.Role == RoleAdmin {
		return requested
	}
	return ScopeOf(s.StoreID)
}

// CanWrite reports whether the session may mutate records of a store
func (s Session) CanWrite(id StoreID) bool {
	return s.Role == RoleVendor && s.StoreID == id
}
