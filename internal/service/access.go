package service

import (
	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
)

func checkSession(session model.Session) error {
	if err := session.Validate(); err != nil {
		return forbidden(err.Error())
	}
	return nil
}

// writableStore returns the store a session may mutate. Admin sessions are
// read-only and vendors are pinned to their bound store.
func writableStore(session model.Session, requested model.StoreID, c *catalog.Catalog) (model.StoreID, error) {
	if err := checkSession(session); err != nil {
		return "", err
	}
	target := requested
	if target == "" {
		target = session.StoreID
	}
	if !session.CanWrite(target) {
		if session.Role != model.RoleVendor {
			return "", forbidden("admin sessions are read-only")
		}
		return "", forbidden("vendors may only write to their own store")
	}
	if !c.HasStore(target) {
		return "", invalid("store_id", "store", "does not reference an existing store")
	}
	return target, nil
}
