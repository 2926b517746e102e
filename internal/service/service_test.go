package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
	"store-ledger/internal/ws"
)

var (
	khzemaVendor  = model.Session{Subject: "vendor-1", Role: model.RoleVendor, StoreID: "khzema"}
	sahloulVendor = model.Session{Subject: "vendor-2", Role: model.RoleVendor, StoreID: "sahloul"}
	admin         = model.Session{Subject: "admin", Role: model.RoleAdmin}

	fixedNow = time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC)
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []ws.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ws.Event(nil), p.events...)
}

// failingStore counts calls and fails every one of them
type failingStore struct {
	calls int
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Load(ctx context.Context, key string) (model.Collection, error) {
	s.calls++
	return model.Collection{}, errDiskFull
}

func (s *failingStore) Save(ctx context.Context, key string, data []byte, expected uint64) (uint64, error) {
	s.calls++
	return 0, errDiskFull
}

func (s *failingStore) Close() error { return nil }

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	store, err := repository.NewBoltCollectionStore(filepath.Join(t.TempDir(), "ledger.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return repository.NewRepositories(store, repository.DefaultMaxRetries)
}

func newTestLedger(t *testing.T, repos *repository.Repositories) (*ledgerService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewLedgerService(repos, catalog.Default(), pub, nil).(*ledgerService)
	svc.now = func() time.Time { return fixedNow }
	return svc, pub
}

func intPtr(v int) *int { return &v }
