package model

// Privilege represents a permission granted to a role
type Privilege string

const (
	PrivLedgerView      Privilege = "ledger:view"
	PrivLedgerCreate    Privilege = "ledger:create"
	PrivLedgerUpdate    Privilege = "ledger:update"
	PrivLedgerDelete    Privilege = "ledger:delete"
	PrivInventoryView   Privilege = "inventory:view"
	PrivInventoryUpdate Privilege = "inventory:update"
	PrivDashboardView   Privilege = "dashboard:view"
	PrivCatalogView     Privilege = "catalog:view"
)

// RolePrivileges maps each role to what it may do.
// Admin is read-only; vendors write to their own store.
var RolePrivileges = map[Role][]Privilege{
	RoleAdmin: {
		PrivLedgerView,
		PrivInventoryView,
		PrivDashboardView,
		PrivCatalogView,
	},
	RoleVendor: {
		PrivLedgerView,
		PrivLedgerCreate,
		PrivLedgerUpdate,
		PrivLedgerDelete,
		PrivInventoryView,
		PrivInventoryUpdate,
		PrivDashboardView,
		PrivCatalogView,
	},
}
