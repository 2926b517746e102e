package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
	"store-ledger/internal/ws"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestLedgerService_CreateSale(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestLedger(t, newTestRepos(t))

	t.Run("amount defaults to price times quantity", func(t *testing.T) {
		e, err := svc.Create(ctx, khzemaVendor, model.KindSale, &EntryRequest{ProductName: "Vosol 20k", Quantity: intPtr(2)})
		require.NoError(t, err)

		sale := e.(model.Sale)
		assert.Equal(t, "50", sale.Amount.String())
		assert.EqualValues(t, "khzema", sale.StoreID)
		assert.True(t, fixedNow.Equal(sale.Date))
		assert.NotZero(t, sale.ID)
	})

	t.Run("explicit amount wins", func(t *testing.T) {
		e, err := svc.Create(ctx, khzemaVendor, model.KindSale, &EntryRequest{ProductName: "Gourmet Toffee", Quantity: intPtr(3), Amount: decPtr("30")})
		require.NoError(t, err)
		assert.Equal(t, "30", e.(model.Sale).Amount.String())
	})

	t.Run("resolved from catalog keys", func(t *testing.T) {
		e, err := svc.Create(ctx, khzemaVendor, model.KindSale, &EntryRequest{
			Category: catalog.CategoryPuffDevice, Product: "capsul", Model: "Max", Quantity: intPtr(1), Date: "2024-01-10",
		})
		require.NoError(t, err)
		sale := e.(model.Sale)
		assert.Equal(t, "Capsul Device Max", sale.ProductName)
		assert.Equal(t, "50", sale.Amount.String())
		assert.Equal(t, 10, sale.Date.Day())
	})

	t.Run("events follow saves", func(t *testing.T) {
		events := pub.Events()
		require.Len(t, events, 3)
		assert.Equal(t, ws.EventEntryCreated, events[0].Type)
		assert.Equal(t, "sale", events[0].Kind)
		assert.Equal(t, "Sales added at Khzema Store", events[0].Message)
	})

	t.Run("newest first", func(t *testing.T) {
		entries, err := svc.List(ctx, khzemaVendor, model.KindSale, model.AllStores)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "Capsul Device Max", entries[0].(model.Sale).ProductName)
		assert.Equal(t, "Vosol 20k", entries[2].(model.Sale).ProductName)
	})
}

func TestLedgerService_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		kind  model.Kind
		req   EntryRequest
		field string
		tag   string
	}{
		{"sale without product", model.KindSale, EntryRequest{Quantity: intPtr(1)}, "product_name", "required"},
		{"sale of unknown product", model.KindSale, EntryRequest{ProductName: "Mystery Box", Quantity: intPtr(1)}, "product_name", "catalog"},
		{"sale with bad keys", model.KindSale, EntryRequest{Category: "puff", Product: "vosol", Model: "99k", Quantity: intPtr(1)}, "product", "catalog"},
		{"sale without quantity", model.KindSale, EntryRequest{ProductName: "Vosol 6k"}, "quantity", "required"},
		{"sale with zero quantity", model.KindSale, EntryRequest{ProductName: "Vosol 6k", Quantity: intPtr(0)}, "quantity", "gte"},
		{"negative amount", model.KindSale, EntryRequest{ProductName: "Vosol 6k", Quantity: intPtr(1), Amount: decPtr("-1")}, "amount", "gte"},
		{"negative amount below float precision", model.KindSale, EntryRequest{ProductName: "Vosol 6k", Quantity: intPtr(1), Amount: decPtr("-1e-400")}, "amount", "gte"},
		{"credit of tiny negative amount", model.KindCredit, EntryRequest{Amount: decPtr("-1e-400"), Reason: "x"}, "amount", "gte"},
		{"income without amount", model.KindIncome, EntryRequest{}, "amount", "required"},
		{"income of zero", model.KindIncome, EntryRequest{Amount: decPtr("0")}, "amount", "gt"},
		{"income of unknown type", model.KindIncome, EntryRequest{Amount: decPtr("10"), Type: "weekly"}, "type", "oneof"},
		{"credit without reason", model.KindCredit, EntryRequest{Amount: decPtr("10"), Reason: "  "}, "reason", "required"},
		{"credit without amount", model.KindCredit, EntryRequest{Reason: "x"}, "amount", "required"},
		{"personal use without product", model.KindPersonalUse, EntryRequest{Quantity: intPtr(1)}, "product_id", "required"},
		{"personal use of unknown product", model.KindPersonalUse, EntryRequest{ProductID: intPtr(99), Quantity: intPtr(1)}, "product_id", "catalog"},
		{"received stock without quantity", model.KindReceivedStock, EntryRequest{ProductID: intPtr(1)}, "quantity", "required"},
		{"bad date", model.KindCredit, EntryRequest{Amount: decPtr("1"), Reason: "x", Date: "15/01/2024"}, "date", "date"},
		{"unknown kind", model.Kind("refund"), EntryRequest{}, "kind", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingStore{}
			svc, pub := newTestLedger(t, repository.NewRepositories(store, 0))

			req := tt.req
			_, err := svc.Create(ctx, khzemaVendor, tt.kind, &req)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.tag, verr.Tag)
			assert.Zero(t, store.calls, "validation must reject before storage is touched")
			assert.Empty(t, pub.Events())
		})
	}
}

func TestLedgerService_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedger(t, newTestRepos(t))

	e, err := svc.Create(ctx, khzemaVendor, model.KindIncome, &EntryRequest{Amount: decPtr("1250.50")})
	require.NoError(t, err)
	income := e.(model.Income)
	assert.Equal(t, model.IncomeDaily, income.Type)
	assert.Equal(t, DefaultIncomeDescription, income.Description)
	assert.Equal(t, "1250.5", income.Amount.String())

	e, err = svc.Create(ctx, khzemaVendor, model.KindPersonalUse, &EntryRequest{ProductID: intPtr(1), Quantity: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, DefaultPersonalUseReason, e.(model.PersonalUse).Reason)

	e, err = svc.Create(ctx, khzemaVendor, model.KindReceivedStock, &EntryRequest{ProductID: intPtr(2), Quantity: intPtr(24)})
	require.NoError(t, err)
	received := e.(model.ReceivedStock)
	assert.Equal(t, DefaultSupplier, received.Supplier)
	assert.Equal(t, DefaultReceivedNotes, received.Notes)

	e, err = svc.Create(ctx, khzemaVendor, model.KindCredit, &EntryRequest{Amount: decPtr("0"), Reason: " Customer credit "})
	require.NoError(t, err)
	assert.Equal(t, "Customer credit", e.(model.Credit).Reason)
}

func TestLedgerService_Authorization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedger(t, newTestRepos(t))
	req := &EntryRequest{Amount: decPtr("100"), Reason: "loan"}

	_, err := svc.Create(ctx, admin, model.KindCredit, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, khzemaVendor, model.KindCredit, &EntryRequest{StoreID: "sahloul", Amount: decPtr("1"), Reason: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, model.Session{Role: model.RoleVendor}, model.KindCredit, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, model.Session{Role: model.RoleVendor, StoreID: "downtown"}, model.KindCredit, req)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.List(ctx, model.Session{Role: "guest"}, model.KindCredit, model.AllStores)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLedgerService_Scoping(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedger(t, newTestRepos(t))

	k, err := svc.Create(ctx, khzemaVendor, model.KindCredit, &EntryRequest{Amount: decPtr("150"), Reason: "a"})
	require.NoError(t, err)
	s, err := svc.Create(ctx, sahloulVendor, model.KindCredit, &EntryRequest{Amount: decPtr("200"), Reason: "b"})
	require.NoError(t, err)

	t.Run("vendor pinned to own store", func(t *testing.T) {
		entries, err := svc.List(ctx, khzemaVendor, model.KindCredit, model.AllStores)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, k.RecordID(), entries[0].RecordID())

		_, err = svc.Get(ctx, khzemaVendor, model.KindCredit, s.RecordID())
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("admin sees every store", func(t *testing.T) {
		entries, err := svc.List(ctx, admin, model.KindCredit, model.AllStores)
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		entries, err = svc.List(ctx, admin, model.KindCredit, model.ScopeOf("sahloul"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, s.RecordID(), entries[0].RecordID())

		got, err := svc.Get(ctx, admin, model.KindCredit, k.RecordID())
		require.NoError(t, err)
		assert.Equal(t, "a", got.(model.Credit).Reason)
	})
}

func TestLedgerService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, pub := newTestLedger(t, newTestRepos(t))

	created, err := svc.Create(ctx, khzemaVendor, model.KindCredit, &EntryRequest{Amount: decPtr("150"), Reason: "Customer credit", Date: "2024-01-10"})
	require.NoError(t, err)

	t.Run("update replaces fields and keeps header", func(t *testing.T) {
		updated, err := svc.Update(ctx, khzemaVendor, model.KindCredit, created.RecordID(), &EntryRequest{Amount: decPtr("175"), Reason: "Customer credit (revised)"})
		require.NoError(t, err)

		c := updated.(model.Credit)
		assert.Equal(t, created.RecordID(), c.ID)
		assert.EqualValues(t, "khzema", c.StoreID)
		assert.True(t, created.EntryDate().Equal(c.Date))
		assert.Equal(t, "175", c.Amount.String())
		assert.Equal(t, "Customer credit (revised)", c.Reason)
	})

	t.Run("update can move the date", func(t *testing.T) {
		updated, err := svc.Update(ctx, khzemaVendor, model.KindCredit, created.RecordID(), &EntryRequest{Amount: decPtr("175"), Reason: "r", Date: "2024-01-12T09:00:00Z"})
		require.NoError(t, err)
		assert.True(t, time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC).Equal(updated.EntryDate()))
	})

	t.Run("other vendor cannot touch it", func(t *testing.T) {
		_, err := svc.Update(ctx, sahloulVendor, model.KindCredit, created.RecordID(), &EntryRequest{Amount: decPtr("1"), Reason: "x"})
		assert.ErrorIs(t, err, ErrEntryNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, sahloulVendor, model.KindCredit, created.RecordID()), ErrEntryNotFound)
	})

	t.Run("admin cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, admin, model.KindCredit, created.RecordID()), ErrForbidden)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, khzemaVendor, model.KindCredit, created.RecordID()))
		_, err := svc.Get(ctx, khzemaVendor, model.KindCredit, created.RecordID())
		assert.ErrorIs(t, err, ErrEntryNotFound)

		events := pub.Events()
		require.NotEmpty(t, events)
		assert.Equal(t, ws.EventEntryDeleted, events[len(events)-1].Type)
		assert.Equal(t, created.RecordID(), events[len(events)-1].EntryID)
	})
}

func TestLedgerService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	svc, pub := newTestLedger(t, repository.NewRepositories(store, 0))

	_, err := svc.Create(ctx, khzemaVendor, model.KindCredit, &EntryRequest{Amount: decPtr("10"), Reason: "x"})
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Empty(t, pub.Events())

	_, err = svc.List(ctx, admin, model.KindCredit, model.AllStores)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("", fixedNow)
	require.NoError(t, err)
	assert.True(t, fixedNow.Equal(d))

	d, err = parseDate("2024-02-29", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())

	_, err = parseDate("yesterday", fixedNow)
	assert.Error(t, err)
}
