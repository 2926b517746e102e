package model

import "time"

// Collection is the persisted blob of one logical collection (e.g. "store_credits").
// Version is the optimistic-lock token; it increases by one on every save.
type Collection struct {
	Key       string    `gorm:"column:collection_key;type:varchar(100);primaryKey" json:"key"`
	Data      []byte    `json:"-"`
	Version   uint64    `gorm:"not null;default:0" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Collection) TableName() string {
	return "ledger_collections"
}

// Empty reports whether nothing was ever saved under the key
func (c Collection) Empty() bool {
	return c.Version == 0
}
