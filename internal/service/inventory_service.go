package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
	"store-ledger/internal/stock"
	"store-ledger/internal/ws"
)

// StockCollection names one of the two stock lists
type StockCollection string

const (
	StockProducts  StockCollection = "products"
	StockMaterials StockCollection = "materials"
)

func ParseStockCollection(value string) (StockCollection, error) {
	switch StockCollection(strings.ToLower(value)) {
	case StockProducts:
		return StockProducts, nil
	case StockMaterials:
		return StockMaterials, nil
	default:
		return "", invalid("collection", "oneof", "must be one of: products materials")
	}
}

type InventoryRequest struct {
	StoreID     model.StoreID    `json:"store_id"`
	ProductID   int              `json:"product_id" validate:"required"`
	Quantity    int              `json:"quantity" validate:"gte=0"`
	MinQuantity int              `json:"min_quantity" validate:"gte=0"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
}

type MaterialRequest struct {
	StoreID     model.StoreID `json:"store_id"`
	MaterialID  int           `json:"material_id" validate:"required"`
	Quantity    int           `json:"quantity" validate:"gte=0"`
	MinQuantity int           `json:"min_quantity" validate:"gte=0"`
}

// StockAdjustment sets quantity and threshold independently; nil leaves a field as is
type StockAdjustment struct {
	Quantity    *int `json:"quantity" validate:"omitempty,gte=0"`
	MinQuantity *int `json:"min_quantity" validate:"omitempty,gte=0"`
}

type InventoryRow struct {
	model.InventoryItem
	ProductName string       `json:"product_name"`
	StoreName   string       `json:"store_name"`
	Status      stock.Status `json:"status"`
	Shortfall   int          `json:"shortfall"`
}

type MaterialRow struct {
	model.MaterialStock
	MaterialName string       `json:"material_name"`
	StoreName    string       `json:"store_name"`
	Status       stock.Status `json:"status"`
	Shortfall    int          `json:"shortfall"`
}

// MissingReport lists what sits at or below its minimum
type MissingReport struct {
	Scope     string         `json:"scope"`
	Products  []InventoryRow `json:"products"`
	Materials []MaterialRow  `json:"materials"`
}

type InventoryService interface {
	ListProducts(ctx context.Context, session model.Session, scope model.StoreScope) ([]InventoryRow, error)
	ListMaterials(ctx context.Context, session model.Session, scope model.StoreScope) ([]MaterialRow, error)
	CreateProduct(ctx context.Context, session model.Session, req *InventoryRequest) (*InventoryRow, error)
	CreateMaterial(ctx context.Context, session model.Session, req *MaterialRequest) (*MaterialRow, error)
	AdjustProduct(ctx context.Context, session model.Session, id int64, req *StockAdjustment) (*InventoryRow, error)
	AdjustMaterial(ctx context.Context, session model.Session, id int64, req *StockAdjustment) (*MaterialRow, error)
	SetQuantity(ctx context.Context, session model.Session, collection StockCollection, id int64, quantity int) error
	SetMinQuantity(ctx context.Context, session model.Session, collection StockCollection, id int64, minQuantity int) error
	Missing(ctx context.Context, session model.Session, scope model.StoreScope) (*MissingReport, error)
}

type inventoryService struct {
	productRepo  repository.RecordRepository[model.InventoryItem]
	materialRepo repository.RecordRepository[model.MaterialStock]
	catalog      *catalog.Catalog
	wsHub        EventPublisher
	log          *zap.Logger
}

func NewInventoryService(repos *repository.Repositories, c *catalog.Catalog, hub EventPublisher, log *zap.Logger) InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &inventoryService{
		productRepo:  repos.Inventory,
		materialRepo: repos.Materials,
		catalog:      c,
		wsHub:        hub,
		log:          log.Named("inventory"),
	}
}

func (s *inventoryService) productRow(item model.InventoryItem) InventoryRow {
	return s.describeProduct(stock.Inspect(item))
}

func (s *inventoryService) describeProduct(r stock.Report[model.InventoryItem]) InventoryRow {
	return InventoryRow{
		InventoryItem: r.Item,
		ProductName:   s.catalog.ProductTypeName(r.Item.ProductID),
		StoreName:     s.catalog.StoreName(r.Item.StoreID),
		Status:        r.Status,
		Shortfall:     r.Shortfall,
	}
}

func (s *inventoryService) materialRow(m model.MaterialStock) MaterialRow {
	return s.describeMaterial(stock.Inspect(m))
}

func (s *inventoryService) describeMaterial(r stock.Report[model.MaterialStock]) MaterialRow {
	return MaterialRow{
		MaterialStock: r.Item,
		MaterialName:  s.catalog.MaterialName(r.Item.MaterialID),
		StoreName:     s.catalog.StoreName(r.Item.StoreID),
		Status:        r.Status,
		Shortfall:     r.Shortfall,
	}
}

func (s *inventoryService) ListProducts(ctx context.Context, session model.Session, scope model.StoreScope) ([]InventoryRow, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	items, err := s.productRepo.FindByScope(ctx, session.Resolve(scope))
	if err != nil {
		return nil, storageError(err)
	}
	rows := make([]InventoryRow, len(items))
	for i, it := range items {
		rows[i] = s.productRow(it)
	}
	return rows, nil
}

func (s *inventoryService) ListMaterials(ctx context.Context, session model.Session, scope model.StoreScope) ([]MaterialRow, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	items, err := s.materialRepo.FindByScope(ctx, session.Resolve(scope))
	if err != nil {
		return nil, storageError(err)
	}
	rows := make([]MaterialRow, len(items))
	for i, m := range items {
		rows[i] = s.materialRow(m)
	}
	return rows, nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, session model.Session, req *InventoryRequest) (*InventoryRow, error) {
	store, err := writableStore(session, req.StoreID, s.catalog)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !s.catalog.HasProductType(req.ProductID) {
		return nil, invalid("product_id", "catalog", "does not reference a product type")
	}

	// one row per product and store
	existing, err := s.productRepo.FindByScope(ctx, model.ScopeOf(store))
	if err != nil {
		return nil, storageError(err)
	}
	for _, it := range existing {
		if it.ProductID == req.ProductID {
			return nil, invalid("product_id", "unique", "is already tracked for this store")
		}
	}

	price := decimal.Zero
	if req.Price != nil {
		price = *req.Price
	}
	item, err := s.productRepo.Create(ctx, func(id int64) model.InventoryItem {
		return model.InventoryItem{
			ID:          id,
			ProductID:   req.ProductID,
			StoreID:     store,
			Quantity:    req.Quantity,
			MinQuantity: req.MinQuantity,
			Price:       price,
		}
	})
	if err != nil {
		requestLogger(ctx, s.log).Error("failed to create inventory item", zap.String("store", string(store)), zap.Error(err))
		return nil, storageError(err)
	}

	row := s.productRow(item)
	requestLogger(ctx, s.log).Info("inventory item created", zap.String("store", string(store)), zap.Int64("id", item.ID))
	s.publish(string(StockProducts), store, item.ID, fmt.Sprintf("%s added to %s", row.ProductName, row.StoreName))
	return &row, nil
}

func (s *inventoryService) CreateMaterial(ctx context.Context, session model.Session, req *MaterialRequest) (*MaterialRow, error) {
	store, err := writableStore(session, req.StoreID, s.catalog)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if !s.catalog.HasMaterial(req.MaterialID) {
		return nil, invalid("material_id", "catalog", "does not reference a material")
	}

	existing, err := s.materialRepo.FindByScope(ctx, model.ScopeOf(store))
	if err != nil {
		return nil, storageError(err)
	}
	for _, m := range existing {
		if m.MaterialID == req.MaterialID {
			return nil, invalid("material_id", "unique", "is already tracked for this store")
		}
	}

	m, err := s.materialRepo.Create(ctx, func(id int64) model.MaterialStock {
		return model.MaterialStock{
			ID:          id,
			MaterialID:  req.MaterialID,
			StoreID:     store,
			Quantity:    req.Quantity,
			MinQuantity: req.MinQuantity,
		}
	})
	if err != nil {
		requestLogger(ctx, s.log).Error("failed to create material stock", zap.String("store", string(store)), zap.Error(err))
		return nil, storageError(err)
	}

	row := s.materialRow(m)
	requestLogger(ctx, s.log).Info("material stock created", zap.String("store", string(store)), zap.Int64("id", m.ID))
	s.publish(string(StockMaterials), store, m.ID, fmt.Sprintf("%s added to %s", row.MaterialName, row.StoreName))
	return &row, nil
}

func (s *inventoryService) AdjustProduct(ctx context.Context, session model.Session, id int64, req *StockAdjustment) (*InventoryRow, error) {
	store, err := s.checkAdjustment(session, req)
	if err != nil {
		return nil, err
	}

	item, err := s.productRepo.Update(ctx, store, id, func(cur model.InventoryItem) (model.InventoryItem, error) {
		cur.Quantity, cur.MinQuantity = applyAdjustment(cur.Quantity, cur.MinQuantity, req)
		return cur, nil
	})
	if err != nil {
		return nil, s.adjustFailed(ctx, id, err)
	}

	row := s.productRow(item)
	requestLogger(ctx, s.log).Info("inventory item adjusted",
		zap.Int64("id", id),
		zap.Int("quantity", item.Quantity),
		zap.Int("min_quantity", item.MinQuantity),
	)
	s.publish(string(StockProducts), store, id, fmt.Sprintf("%s stock is %s", row.ProductName, row.Status.Label()))
	return &row, nil
}

func (s *inventoryService) AdjustMaterial(ctx context.Context, session model.Session, id int64, req *StockAdjustment) (*MaterialRow, error) {
	store, err := s.checkAdjustment(session, req)
	if err != nil {
		return nil, err
	}

	m, err := s.materialRepo.Update(ctx, store, id, func(cur model.MaterialStock) (model.MaterialStock, error) {
		cur.Quantity, cur.MinQuantity = applyAdjustment(cur.Quantity, cur.MinQuantity, req)
		return cur, nil
	})
	if err != nil {
		return nil, s.adjustFailed(ctx, id, err)
	}

	row := s.materialRow(m)
	requestLogger(ctx, s.log).Info("material stock adjusted",
		zap.Int64("id", id),
		zap.Int("quantity", m.Quantity),
		zap.Int("min_quantity", m.MinQuantity),
	)
	s.publish(string(StockMaterials), store, id, fmt.Sprintf("%s stock is %s", row.MaterialName, row.Status.Label()))
	return &row, nil
}

func (s *inventoryService) SetQuantity(ctx context.Context, session model.Session, collection StockCollection, id int64, quantity int) error {
	return s.adjust(ctx, session, collection, id, &StockAdjustment{Quantity: &quantity})
}

func (s *inventoryService) SetMinQuantity(ctx context.Context, session model.Session, collection StockCollection, id int64, minQuantity int) error {
	return s.adjust(ctx, session, collection, id, &StockAdjustment{MinQuantity: &minQuantity})
}

func (s *inventoryService) adjust(ctx context.Context, session model.Session, collection StockCollection, id int64, req *StockAdjustment) error {
	var err error
	switch collection {
	case StockProducts:
		_, err = s.AdjustProduct(ctx, session, id, req)
	case StockMaterials:
		_, err = s.AdjustMaterial(ctx, session, id, req)
	default:
		_, err = ParseStockCollection(string(collection))
	}
	return err
}

func (s *inventoryService) Missing(ctx context.Context, session model.Session, scope model.StoreScope) (*MissingReport, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	scope = session.Resolve(scope)

	items, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}
	materials, err := s.materialRepo.FindAll(ctx)
	if err != nil {
		return nil, storageError(err)
	}

	report := &MissingReport{
		Scope:     scope.String(),
		Products:  make([]InventoryRow, 0),
		Materials: make([]MaterialRow, 0),
	}
	for _, r := range stock.Assess(items, scope) {
		report.Products = append(report.Products, s.describeProduct(r))
	}
	for _, r := range stock.Assess(materials, scope) {
		report.Materials = append(report.Materials, s.describeMaterial(r))
	}
	return report, nil
}

func (s *inventoryService) checkAdjustment(session model.Session, req *StockAdjustment) (model.StoreID, error) {
	store, err := writableStore(session, "", s.catalog)
	if err != nil {
		return "", err
	}
	if err := validateRequest(req); err != nil {
		return "", err
	}
	if req.Quantity == nil && req.MinQuantity == nil {
		return "", invalid("quantity", "required", "quantity or min_quantity is required")
	}
	return store, nil
}

func (s *inventoryService) adjustFailed(ctx context.Context, id int64, err error) error {
	err = storageError(err)
	if !errors.Is(err, ErrEntryNotFound) {
		requestLogger(ctx, s.log).Error("failed to adjust stock", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func (s *inventoryService) publish(kind string, store model.StoreID, id int64, message string) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Publish(ws.NewEvent(ws.EventStockUpdated, kind, store, id, message))
}

func applyAdjustment(quantity, minQuantity int, req *StockAdjustment) (int, int) {
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.MinQuantity != nil {
		minQuantity = *req.MinQuantity
	}
	return quantity, minQuantity
}
