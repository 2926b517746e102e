package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
)

func TestDashboardService(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	ledgerSvc, _ := newTestLedger(t, repos)
	inv, _ := newTestInventory(t, repos)
	dash := NewDashboardService(repos, catalog.Default(), nil)

	sale := func(s model.Session, name string, qty int, date string) {
		_, err := ledgerSvc.Create(ctx, s, model.KindSale, &EntryRequest{ProductName: name, Quantity: intPtr(qty), Date: date})
		require.NoError(t, err)
	}
	sale(khzemaVendor, "Vosol 20k", 2, "2024-01-15")        // 50
	sale(khzemaVendor, "Fruité Mango", 1, "2024-01-15")     // 12
	sale(khzemaVendor, "Coil 28 0.3Ω", 1, "2024-01-14")     // 15
	sale(sahloulVendor, "Nexbar 18k", 1, "2024-01-15")      // 30

	income := func(s model.Session, amount, incomeType string) {
		_, err := ledgerSvc.Create(ctx, s, model.KindIncome, &EntryRequest{Amount: decPtr(amount), Type: incomeType})
		require.NoError(t, err)
	}
	income(khzemaVendor, "150", "daily")
	income(khzemaVendor, "75", "monthly")
	income(sahloulVendor, "200", "daily")

	_, err := inv.CreateProduct(ctx, khzemaVendor, &InventoryRequest{ProductID: 1, Quantity: 2, MinQuantity: 3})
	require.NoError(t, err)
	_, err = inv.CreateProduct(ctx, khzemaVendor, &InventoryRequest{ProductID: 2, Quantity: 40, MinQuantity: 3})
	require.NoError(t, err)
	_, err = inv.CreateProduct(ctx, sahloulVendor, &InventoryRequest{ProductID: 1, Quantity: 0, MinQuantity: 3})
	require.NoError(t, err)

	t.Run("vendor", func(t *testing.T) {
		d, err := dash.Vendor(ctx, khzemaVendor, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "Khzema Store", d.StoreName)
		assert.Equal(t, "62", d.TodaySales.String())
		assert.Equal(t, int64(3), d.ProductsSoldToday)
		assert.Equal(t, 1, d.LowStockCount)
		assert.Equal(t, 2, d.ProductCount)
		assert.Len(t, d.RecentSales, 3)

		_, err = dash.Vendor(ctx, admin, fixedNow)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin", func(t *testing.T) {
		d, err := dash.Admin(ctx, admin, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, 3, d.ProductCount)
		assert.Equal(t, 2, d.StoreCount)
		assert.Equal(t, "425", d.TotalIncome.String())
		assert.Equal(t, 2, d.LowStockCount)
		assert.Len(t, d.RecentIncome, 3)

		_, err = dash.Admin(ctx, khzemaVendor, fixedNow)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("income grouped by store", func(t *testing.T) {
		s, err := dash.Summary(ctx, admin, model.KindIncome, SummaryQuery{Scope: model.AllStores, GroupBy: GroupStore}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "425", s.Total.String())
		assert.Equal(t, 3, s.Count)
		require.Len(t, s.Groups, 2)
		// newest first: sahloul's income was recorded last
		assert.Equal(t, "sahloul", s.Groups[0].Key)
		assert.Equal(t, "Sahloul Store", s.Groups[0].Label)
		assert.Equal(t, "200", s.Groups[0].Total.String())
		assert.Equal(t, "khzema", s.Groups[1].Key)
		assert.Equal(t, "225", s.Groups[1].Total.String())
		assert.Equal(t, 2, s.Groups[1].Count)
	})

	t.Run("khzema income average", func(t *testing.T) {
		s, err := dash.Summary(ctx, admin, model.KindIncome, SummaryQuery{Scope: model.ScopeOf("khzema")}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "225", s.Total.String())
		assert.Equal(t, "112.5", s.Average.String())
		assert.Empty(t, s.Groups)
	})

	t.Run("income filtered by type", func(t *testing.T) {
		s, err := dash.Summary(ctx, admin, model.KindIncome, SummaryQuery{Scope: model.AllStores, Filter: "daily", GroupBy: GroupType}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "350", s.Total.String())
		require.Len(t, s.Groups, 1)
		assert.Equal(t, "Daily Income", s.Groups[0].Label)
	})

	t.Run("sales by category", func(t *testing.T) {
		s, err := dash.Summary(ctx, khzemaVendor, model.KindSale, SummaryQuery{Scope: model.AllStores, GroupBy: GroupCategory}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "77", s.Total.String())
		assert.Equal(t, "62", s.Today.String())
		assert.Equal(t, "khzema", s.Scope)
		keys := make([]string, len(s.Groups))
		for i, g := range s.Groups {
			keys[i] = g.Key
		}
		assert.Equal(t, []string{catalog.CategoryCoil, catalog.CategoryLiquide, catalog.CategoryPuff}, keys)
	})

	t.Run("sales filtered by category", func(t *testing.T) {
		s, err := dash.Summary(ctx, admin, model.KindSale, SummaryQuery{Scope: model.AllStores, Filter: catalog.CategoryPuff}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "80", s.Total.String())
		assert.Equal(t, 2, s.Count)
	})

	t.Run("empty ledger", func(t *testing.T) {
		s, err := dash.Summary(ctx, admin, model.KindCredit, SummaryQuery{Scope: model.AllStores, GroupBy: GroupStore}, fixedNow)
		require.NoError(t, err)
		assert.True(t, s.Total.IsZero())
		assert.True(t, s.Average.IsZero())
		assert.Equal(t, 0, s.Count)
		assert.Empty(t, s.Groups)
	})

	t.Run("quantity measure", func(t *testing.T) {
		_, err := ledgerSvc.Create(ctx, khzemaVendor, model.KindPersonalUse, &EntryRequest{ProductID: intPtr(1), Quantity: intPtr(4)})
		require.NoError(t, err)
		s, err := dash.Summary(ctx, khzemaVendor, model.KindPersonalUse, SummaryQuery{}, fixedNow.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "quantity", s.Measure)
		assert.Equal(t, "4", s.Total.String())
	})

	t.Run("bad grouping", func(t *testing.T) {
		_, err := dash.Summary(ctx, admin, model.KindCredit, SummaryQuery{Scope: model.AllStores, GroupBy: GroupCategory}, fixedNow)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
