package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
	"store-ledger/internal/ws"
)

// Defaults applied to omitted optional fields
const (
	DefaultPersonalUseReason = "Personal use"
	DefaultSupplier          = "Unknown Supplier"
	DefaultReceivedNotes     = "Received product"
	DefaultIncomeDescription = "Daily sales revenue"
)

const dateLayout = "2006-01-02"

// EntryRequest carries the fields of every ledger variant; each kind reads its own
type EntryRequest struct {
	StoreID model.StoreID `json:"store_id"`
	Date    string        `json:"date"`

	// Sale: either a product name or catalog keys resolving to one
	ProductName string `json:"product_name" validate:"max=200"`
	Category    string `json:"category"`
	Product     string `json:"product"`
	Model       string `json:"model"`

	Quantity    *int             `json:"quantity" validate:"omitempty,gte=1"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Type        string           `json:"type" validate:"omitempty,oneof=daily monthly 10days"`
	Description string           `json:"description" validate:"max=500"`
	Reason      string           `json:"reason" validate:"max=500"`
	ProductID   *int             `json:"product_id"`
	Supplier    string           `json:"supplier" validate:"max=200"`
	Notes       string           `json:"notes" validate:"max=500"`
}

// EventPublisher receives change notifications after successful saves
type EventPublisher interface {
	Publish(event ws.Event)
}

type LedgerService interface {
	List(ctx context.Context, session model.Session, kind model.Kind, scope model.StoreScope) ([]model.Entry, error)
	Get(ctx context.Context, session model.Session, kind model.Kind, id int64) (model.Entry, error)
	Create(ctx context.Context, session model.Session, kind model.Kind, req *EntryRequest) (model.Entry, error)
	Update(ctx context.Context, session model.Session, kind model.Kind, id int64, req *EntryRequest) (model.Entry, error)
	Delete(ctx context.Context, session model.Session, kind model.Kind, id int64) error
}

type ledgerService struct {
	books   map[model.Kind]entryBook
	catalog *catalog.Catalog
	wsHub   EventPublisher
	log     *zap.Logger
	now     func() time.Time
}

func NewLedgerService(repos *repository.Repositories, c *catalog.Catalog, hub EventPublisher, log *zap.Logger) LedgerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ledgerService{
		books:   newBooks(repos),
		catalog: c,
		wsHub:   hub,
		log:     log.Named("ledger"),
		now:     time.Now,
	}
}

func (s *ledgerService) book(kind model.Kind) (entryBook, error) {
	b, ok := s.books[kind]
	if !ok {
		return nil, invalid("kind", "oneof", fmt.Sprintf("unknown ledger kind %q", kind))
	}
	return b, nil
}

func (s *ledgerService) List(ctx context.Context, session model.Session, kind model.Kind, scope model.StoreScope) ([]model.Entry, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	b, err := s.book(kind)
	if err != nil {
		return nil, err
	}

	entries, err := b.list(ctx, session.Resolve(scope))
	if err != nil {
		requestLogger(ctx, s.log).Error("failed to load entries", zap.String("kind", string(kind)), zap.Error(err))
		return nil, storageError(err)
	}
	return entries, nil
}

func (s *ledgerService) Get(ctx context.Context, session model.Session, kind model.Kind, id int64) (model.Entry, error) {
	if err := checkSession(session); err != nil {
		return nil, err
	}
	b, err := s.book(kind)
	if err != nil {
		return nil, err
	}

	entry, err := b.get(ctx, session.Scope(), id)
	if err != nil {
		return nil, storageError(err)
	}
	return entry, nil
}

func (s *ledgerService) Create(ctx context.Context, session model.Session, kind model.Kind, req *EntryRequest) (model.Entry, error) {
	b, err := s.book(kind)
	if err != nil {
		return nil, err
	}
	store, err := writableStore(session, req.StoreID, s.catalog)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date, s.now())
	if err != nil {
		return nil, err
	}
	entry, err := s.buildEntry(kind, req, model.EntryHeader{StoreID: store, Date: date})
	if err != nil {
		return nil, err
	}

	created, err := b.create(ctx, entry)
	if err != nil {
		requestLogger(ctx, s.log).Error("failed to save entry",
			zap.String("kind", string(kind)),
			zap.String("store", string(store)),
			zap.Error(err),
		)
		return nil, storageError(err)
	}

	requestLogger(ctx, s.log).Info("entry created",
		zap.String("kind", string(kind)),
		zap.String("store", string(store)),
		zap.Int64("id", created.RecordID()),
	)
	s.publish(ws.EventEntryCreated, created, fmt.Sprintf("%s added at %s", kind.Label(), s.catalog.StoreName(store)))
	return created, nil
}

func (s *ledgerService) Update(ctx context.Context, session model.Session, kind model.Kind, id int64, req *EntryRequest) (model.Entry, error) {
	b, err := s.book(kind)
	if err != nil {
		return nil, err
	}
	store, err := writableStore(session, req.StoreID, s.catalog)
	if err != nil {
		return nil, err
	}

	var date time.Time
	if req.Date != "" {
		if date, err = parseDate(req.Date, s.now()); err != nil {
			return nil, err
		}
	}
	entry, err := s.buildEntry(kind, req, model.EntryHeader{StoreID: store, Date: date})
	if err != nil {
		return nil, err
	}

	updated, err := b.update(ctx, store, id, func(current model.Entry) (model.Entry, error) {
		h := model.EntryHeader{ID: current.RecordID(), StoreID: current.StoreRef(), Date: current.EntryDate()}
		if !date.IsZero() {
			h.Date = date
		}
		return model.WithHeader(entry, h), nil
	})
	if err != nil {
		if err = storageError(err); !errors.Is(err, ErrEntryNotFound) {
			requestLogger(ctx, s.log).Error("failed to update entry", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	requestLogger(ctx, s.log).Info("entry updated", zap.String("kind", string(kind)), zap.Int64("id", id))
	s.publish(ws.EventEntryUpdated, updated, fmt.Sprintf("%s updated at %s", kind.Label(), s.catalog.StoreName(store)))
	return updated, nil
}

func (s *ledgerService) Delete(ctx context.Context, session model.Session, kind model.Kind, id int64) error {
	b, err := s.book(kind)
	if err != nil {
		return err
	}
	store, err := writableStore(session, "", s.catalog)
	if err != nil {
		return err
	}

	if err := b.delete(ctx, store, id); err != nil {
		if err = storageError(err); !errors.Is(err, ErrEntryNotFound) {
			requestLogger(ctx, s.log).Error("failed to delete entry", zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	requestLogger(ctx, s.log).Info("entry deleted", zap.String("kind", string(kind)), zap.Int64("id", id))
	if s.wsHub != nil {
		s.wsHub.Publish(ws.NewEvent(ws.EventEntryDeleted, string(kind), store, id,
			fmt.Sprintf("%s removed at %s", kind.Label(), s.catalog.StoreName(store))))
	}
	return nil
}

func (s *ledgerService) publish(eventType string, e model.Entry, message string) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.Publish(ws.NewEvent(eventType, string(e.Kind()), e.StoreRef(), e.RecordID(), message))
}

// buildEntry validates req for kind and fills defaults. No I/O happens here.
func (s *ledgerService) buildEntry(kind model.Kind, req *EntryRequest, h model.EntryHeader) (model.Entry, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	switch kind {
	case model.KindSale:
		name, err := s.productName(req)
		if err != nil {
			return nil, err
		}
		if req.Quantity == nil {
			return nil, invalid("quantity", "required", "is required")
		}
		amount := s.catalog.PriceOf(name).Mul(decimal.NewFromInt(int64(*req.Quantity)))
		if req.Amount != nil {
			amount = *req.Amount
		}
		return model.Sale{EntryHeader: h, ProductName: name, Quantity: *req.Quantity, Amount: amount}, nil

	case model.KindIncome:
		incomeType := model.IncomeDaily
		if req.Type != "" {
			incomeType = model.IncomeType(req.Type)
		}
		if req.Amount == nil {
			return nil, invalid("amount", "required", "is required")
		}
		if !req.Amount.IsPositive() {
			return nil, invalid("amount", "gt", "must be greater than 0")
		}
		return model.Income{
			EntryHeader: h,
			Type:        incomeType,
			Amount:      *req.Amount,
			Description: orDefault(req.Description, DefaultIncomeDescription),
		}, nil

	case model.KindCredit:
		if req.Amount == nil {
			return nil, invalid("amount", "required", "is required")
		}
		if strings.TrimSpace(req.Reason) == "" {
			return nil, invalid("reason", "required", "is required")
		}
		return model.Credit{EntryHeader: h, Amount: *req.Amount, Reason: strings.TrimSpace(req.Reason)}, nil

	case model.KindPersonalUse:
		productID, qty, err := s.stockFields(req)
		if err != nil {
			return nil, err
		}
		return model.PersonalUse{
			EntryHeader: h,
			ProductID:   productID,
			Quantity:    qty,
			Reason:      orDefault(req.Reason, DefaultPersonalUseReason),
		}, nil

	case model.KindReceivedStock:
		productID, qty, err := s.stockFields(req)
		if err != nil {
			return nil, err
		}
		return model.ReceivedStock{
			EntryHeader: h,
			ProductID:   productID,
			Quantity:    qty,
			Supplier:    orDefault(req.Supplier, DefaultSupplier),
			Notes:       orDefault(req.Notes, DefaultReceivedNotes),
		}, nil

	default:
		return nil, invalid("kind", "oneof", fmt.Sprintf("unknown ledger kind %q", kind))
	}
}

// productName takes the explicit name or resolves it from catalog keys
func (s *ledgerService) productName(req *EntryRequest) (string, error) {
	name := strings.TrimSpace(req.ProductName)
	if name == "" && req.Category != "" {
		name = s.catalog.ResolveProductName(req.Category, req.Product, req.Model)
		if name == catalog.UnknownProduct {
			return "", invalid("product", "catalog", "does not match a catalog product")
		}
	}
	if name == "" {
		return "", invalid("product_name", "required", "is required")
	}
	if _, ok := s.catalog.Lookup(name); !ok {
		return "", invalid("product_name", "catalog", fmt.Sprintf("%q is not in the catalog", name))
	}
	return name, nil
}

func (s *ledgerService) stockFields(req *EntryRequest) (int, int, error) {
	if req.ProductID == nil {
		return 0, 0, invalid("product_id", "required", "is required")
	}
	if !s.catalog.HasProductType(*req.ProductID) {
		return 0, 0, invalid("product_id", "catalog", "does not reference a product type")
	}
	if req.Quantity == nil {
		return 0, 0, invalid("quantity", "required", "is required")
	}
	return *req.ProductID, *req.Quantity, nil
}

// parseDate accepts a calendar day or an RFC 3339 timestamp; empty means now
func parseDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, invalid("date", "date", "must be YYYY-MM-DD or an RFC 3339 timestamp")
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
