package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"store-ledger/internal/catalog"
	"store-ledger/internal/ledger"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
	"store-ledger/internal/stock"
)

const recentLimit = 5

// Summary grouping keys
const (
	GroupNone     = ""
	GroupStore    = "store"
	GroupCategory = "category"
	GroupType     = "type"
)

type VendorDashboard struct {
	StoreID           model.StoreID   `json:"store_id"`
	StoreName         string          `json:"store_name"`
	TodaySales        decimal.Decimal `json:"today_sales"`
	ProductsSoldToday int64           `json:"products_sold_today"`
	LowStockCount     int             `json:"low_stock_count"`
	ProductCount      int             `json:"product_count"`
	RecentSales       []model.Entry   `json:"recent_sales"`
}

type AdminDashboard struct {
	ProductCount  int             `json:"product_count"`
	StoreCount    int             `json:"store_count"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	LowStockCount int             `json:"low_stock_count"`
	RecentIncome  []model.Entry   `json:"recent_income"`
}

// SummaryQuery selects and groups one ledger for aggregation.
// Filter narrows sales by category and income by type; "all" keeps everything.
type SummaryQuery struct {
	Scope   model.StoreScope
	GroupBy string
	Filter  string
}

type SummaryGroup struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type Summary struct {
	Kind    model.Kind      `json:"kind"`
	Scope   string          `json:"scope"`
	Measure string          `json:"measure"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Average decimal.Decimal `json:"average"`
	Today   decimal.Decimal `json:"today"`
	Groups  []SummaryGroup  `json:"groups"`
}

type DashboardService interface {
	Vendor(ctx context.Context, session model.Session, now time.Time) (*VendorDashboard, error)
	Admin(ctx context.Context, session model.Session, now time.Time) (*AdminDashboard, error)
	Summary(ctx context.Context, session model.Session, kind model.Kind, q SummaryQuery, now time.Time) (*Summary, error)
}

type dashboardService struct {
	books     map[model.Kind]entryBook
	inventory repository.RecordRepository[model.InventoryItem]
	catalog   *catalog.Catalog
	log       *zap.Logger
}

func NewDashboardService(repos *repository.Repositories, c *catalog.Catalog, log *zap.Logger) DashboardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &dashboardService{
		books:     newBooks(repos),
		inventory: repos.Inventory,
		catalog:   c,
		log:       log.Named("dashboard"),
	}
}

func (s *dashboardService) Vendor(ctx context.Context, session model.Session, now time.Time) (*VendorDashboard, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	if session.Role != model.RoleVendor {
		return nil, forbidden("the vendor dashboard needs a store-bound session")
	}
	scope := session.Scope()

	sales, err := s.books[model.KindSale].list(ctx, scope)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}
	items, err := s.inventory.FindByScope(ctx, scope)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}

	today := ledger.OnDay(sales, now)
	return &VendorDashboard{
		StoreID:           session.StoreID,
		StoreName:         s.catalog.StoreName(session.StoreID),
		TodaySales:        ledger.Sum(today, ledger.Amount[model.Entry]()),
		ProductsSoldToday: ledger.Sum(today, ledger.Quantity[model.Entry]()).IntPart(),
		LowStockCount:     len(stock.Missing(items, scope)),
		ProductCount:      len(items),
		RecentSales:       ledger.Recent(sales, recentLimit),
	}, nil
}

func (s *dashboardService) Admin(ctx context.Context, session model.Session, now time.Time) (*AdminDashboard, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	if session.Role != model.RoleAdmin {
		return nil, forbidden("the admin dashboard is for administrators")
	}

	income, err := s.books[model.KindIncome].list(ctx, model.AllStores)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}
	items, err := s.inventory.FindAll(ctx)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}

	return &AdminDashboard{
		ProductCount:  len(items),
		StoreCount:    len(s.catalog.Stores()),
		TotalIncome:   ledger.Sum(income, ledger.Amount[model.Entry]()),
		LowStockCount: len(stock.Missing(items, model.AllStores)),
		RecentIncome:  ledger.Recent(income, recentLimit),
	}, nil
}

func (s *dashboardService) Summary(ctx context.Context, session model.Session, kind model.Kind, q SummaryQuery, now time.Time) (*Summary, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	b, ok := s.books[kind]
	if !ok {
		return nil, invalid("kind", "oneof", "unknown ledger kind")
	}
	scope := session.Resolve(q.Scope)

	entries, err := b.list(ctx, scope)
	if err != nil {
		return nil, s.loadFailed(ctx, err)
	}

	switch kind {
	case model.KindSale:
		entries = ledger.ByCategory(entries, s.catalog, q.Filter)
	case model.KindIncome:
		entries = ledger.ByIncomeType(entries, q.Filter)
	}

	field, measure := ledger.Amount[model.Entry](), "amount"
	if kind == model.KindPersonalUse || kind == model.KindReceivedStock {
		field, measure = ledger.Quantity[model.Entry](), "quantity"
	}

	groups, err := s.group(kind, entries, q.GroupBy, field)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Kind:    kind,
		Scope:   scope.String(),
		Measure: measure,
		Total:   ledger.Sum(entries, field),
		Count:   ledger.Count(entries),
		Average: ledger.Average(entries, field),
		Today:   ledger.Sum(ledger.OnDay(entries, now), field),
		Groups:  groups,
	}, nil
}

func (s *dashboardService) group(kind model.Kind, entries []model.Entry, by string, field ledger.Field[model.Entry]) ([]SummaryGroup, error) {
	var (
		key   func(model.Entry) string
		label func(string) string
	)

	switch by {
	case GroupNone:
		return []SummaryGroup{}, nil
	case GroupStore:
		key = func(e model.Entry) string { return string(e.StoreRef()) }
		label = func(k string) string { return s.catalog.StoreName(model.StoreID(k)) }
	case GroupCategory:
		if kind != model.KindSale {
			return nil, invalid("group", "oneof", "category grouping applies to sales")
		}
		key = func(e model.Entry) string { return s.catalog.CategoryOf(e.(model.Sale).ProductName) }
		label = func(k string) string {
			if c, ok := s.catalog.Category(k); ok {
				return c.Name
			}
			return k
		}
	case GroupType:
		if kind != model.KindIncome {
			return nil, invalid("group", "oneof", "type grouping applies to income")
		}
		key = func(e model.Entry) string { return string(e.(model.Income).Type) }
		label = func(k string) string { return s.catalog.IncomeTypeName(model.IncomeType(k)) }
	default:
		return nil, invalid("group", "oneof", "must be one of: store category type")
	}

	grouping := ledger.GroupBy(entries, key, field)
	out := make([]SummaryGroup, 0, grouping.Len())
	for _, g := range grouping.Groups() {
		out = append(out, SummaryGroup{Key: g.Key, Label: label(g.Key), Count: g.Count(), Total: g.Total})
	}
	return out, nil
}

func (s *dashboardService) loadFailed(ctx context.Context, err error) error {
	requestLogger(ctx, s.log).Error("failed to load dashboard data", zap.Error(err))
	return storageError(err)
}
