package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
)

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func credit(id int64, store model.StoreID, amount int64) model.Entry {
	return model.Credit{
		EntryHeader: model.EntryHeader{ID: id, StoreID: store, Date: day(2024, time.January, 15, 10)},
		Amount:      decimal.NewFromInt(amount),
		Reason:      "test",
	}
}

func scenario() []model.Entry {
	return []model.Entry{
		credit(1, "khzema", 150),
		credit(2, "khzema", 75),
		credit(3, "sahloul", 200),
	}
}

func TestScope(t *testing.T) {
	entries := scenario()

	t.Run("single store keeps order", func(t *testing.T) {
		got := Scope(entries, model.ScopeOf("khzema"))
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].RecordID())
		assert.Equal(t, int64(2), got[1].RecordID())
	})

	t.Run("all stores is identity", func(t *testing.T) {
		assert.Equal(t, entries, Scope(entries, model.AllStores))
	})

	t.Run("unknown store is empty", func(t *testing.T) {
		assert.Empty(t, Scope(entries, model.ScopeOf("downtown")))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Scope([]model.Entry{}, model.ScopeOf("khzema")))
	})
}

func TestAggregates_Scenario(t *testing.T) {
	entries := scenario()
	khzema := Scope(entries, model.ScopeOf("khzema"))

	assert.Equal(t, "225", Sum(khzema, Amount[model.Entry]()).String())
	assert.Equal(t, 2, Count(khzema))
	assert.Equal(t, "112.5", Average(khzema, Amount[model.Entry]()).String())

	groups := GroupBy(entries, StoreKey[model.Entry], Amount[model.Entry]())
	assert.Equal(t, []model.StoreID{"khzema", "sahloul"}, groups.Keys())

	k, ok := groups.Get("khzema")
	require.True(t, ok)
	assert.Equal(t, "225", k.Total.String())
	assert.Equal(t, 2, k.Count())

	s, ok := groups.Get("sahloul")
	require.True(t, ok)
	assert.Equal(t, "200", s.Total.String())
	assert.Equal(t, 1, s.Count())

	_, ok = groups.Get("downtown")
	assert.False(t, ok)
}

func TestAggregates_Empty(t *testing.T) {
	var entries []model.Entry

	assert.True(t, Sum(entries, Amount[model.Entry]()).IsZero())
	assert.Equal(t, 0, Count(entries))
	assert.True(t, Average(entries, Amount[model.Entry]()).IsZero())
	assert.True(t, Average(entries, Quantity[model.Entry]()).IsZero())
	assert.Equal(t, 0, GroupBy(entries, StoreKey[model.Entry], Amount[model.Entry]()).Len())
	assert.Empty(t, GroupBy(entries, StoreKey[model.Entry], Amount[model.Entry]()).Groups())
}

func TestSum_PartitionByStore(t *testing.T) {
	entries := []model.Entry{
		credit(1, "khzema", 10),
		credit(2, "sahloul", 33),
		credit(3, "khzema", 7),
		credit(4, "sahloul", 1),
	}
	amount := Amount[model.Entry]()

	total := Sum(entries, amount)
	split := Sum(Scope(entries, model.ScopeOf("khzema")), amount).
		Add(Sum(Scope(entries, model.ScopeOf("sahloul")), amount))
	assert.True(t, total.Equal(split))
}

func TestSum_NoFloatDrift(t *testing.T) {
	var entries []model.Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, model.Income{
			EntryHeader: model.EntryHeader{ID: int64(i), StoreID: "khzema"},
			Type:        model.IncomeDaily,
			Amount:      decimal.RequireFromString("0.1"),
		})
	}
	assert.Equal(t, "1", Sum(entries, Amount[model.Entry]()).String())
}

func TestQuantityField(t *testing.T) {
	entries := []model.Entry{
		model.Sale{EntryHeader: model.EntryHeader{ID: 1, StoreID: "khzema"}, ProductName: "Vosol 20k", Quantity: 2, Amount: decimal.NewFromInt(50)},
		model.PersonalUse{EntryHeader: model.EntryHeader{ID: 2, StoreID: "khzema"}, ProductID: 1, Quantity: 3},
		credit(3, "khzema", 40),
	}
	assert.Equal(t, "5", Sum(entries, Quantity[model.Entry]()).String())
	assert.Equal(t, "90", Sum(entries, Amount[model.Entry]()).String())
}

func TestOnDay(t *testing.T) {
	entries := []model.Entry{
		model.Credit{EntryHeader: model.EntryHeader{ID: 1, Date: day(2024, time.January, 15, 23)}},
		model.Credit{EntryHeader: model.EntryHeader{ID: 2, Date: day(2024, time.January, 14, 9)}},
		model.Credit{EntryHeader: model.EntryHeader{ID: 3, Date: day(2024, time.January, 15, 0)}},
	}

	got := OnDay(entries, day(2024, time.January, 15, 12))
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].RecordID())
	assert.Equal(t, int64(3), got[1].RecordID())

	// 23:00 UTC on the 15th is already the 16th two hours east
	east := time.FixedZone("east", 2*60*60)
	got = OnDay(entries, time.Date(2024, time.January, 16, 8, 0, 0, 0, east))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].RecordID())
}

func TestByIncomeTypeAndCategory(t *testing.T) {
	c := catalog.Default()
	entries := []model.Entry{
		model.Income{EntryHeader: model.EntryHeader{ID: 1}, Type: model.IncomeDaily, Amount: decimal.NewFromInt(100)},
		model.Income{EntryHeader: model.EntryHeader{ID: 2}, Type: model.IncomeMonthly, Amount: decimal.NewFromInt(900)},
		model.Sale{EntryHeader: model.EntryHeader{ID: 3}, ProductName: "Vosol 6k", Quantity: 1},
		model.Sale{EntryHeader: model.EntryHeader{ID: 4}, ProductName: "Fruité Mango", Quantity: 1},
	}

	assert.Len(t, ByIncomeType(entries, "all"), 2)
	daily := ByIncomeType(entries, "daily")
	require.Len(t, daily, 1)
	assert.Equal(t, int64(1), daily[0].RecordID())

	assert.Len(t, ByCategory(entries, c, "all"), 2)
	liquide := ByCategory(entries, c, catalog.CategoryLiquide)
	require.Len(t, liquide, 1)
	assert.Equal(t, int64(4), liquide[0].RecordID())
	assert.Empty(t, ByCategory(entries, c, catalog.CategoryCoil))
}

func TestRecent(t *testing.T) {
	entries := scenario()
	assert.Len(t, Recent(entries, 2), 2)
	assert.Len(t, Recent(entries, 10), 3)
	assert.Empty(t, Recent(entries, -1))
}
