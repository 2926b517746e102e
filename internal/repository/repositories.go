package repository

import "store-ledger/internal/model"

// Repositories binds every collection of the application to one store
type Repositories struct {
	Sales         RecordRepository[model.Sale]
	Income        RecordRepository[model.Income]
	Credits       RecordRepository[model.Credit]
	PersonalUse   RecordRepository[model.PersonalUse]
	ReceivedStock RecordRepository[model.ReceivedStock]
	Inventory     RecordRepository[model.InventoryItem]
	Materials     RecordRepository[model.MaterialStock]
}

func NewRepositories(store CollectionStore, maxRetries int) *Repositories {
	return &Repositories{
		Sales:         NewRecordRepo[model.Sale](store, model.KindSale.CollectionKey(), maxRetries),
		Income:        NewRecordRepo[model.Income](store, model.KindIncome.CollectionKey(), maxRetries),
		Credits:       NewRecordRepo[model.Credit](store, model.KindCredit.CollectionKey(), maxRetries),
		PersonalUse:   NewRecordRepo[model.PersonalUse](store, model.KindPersonalUse.CollectionKey(), maxRetries),
		ReceivedStock: NewRecordRepo[model.ReceivedStock](store, model.KindReceivedStock.CollectionKey(), maxRetries),
		Inventory:     NewRecordRepo[model.InventoryItem](store, model.InventoryCollectionKey, maxRetries),
		Materials:     NewRecordRepo[model.MaterialStock](store, model.MaterialCollectionKey, maxRetries),
	}
}
