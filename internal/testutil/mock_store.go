// mock_store.go - Route store with injectable failures for handler tests
package testutil

import (
	"context"

	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/storage"
)

// MockStore wraps a MemoryStore and returns the configured error from the
// matching method when it is set.
type MockStore struct {
	*storage.MemoryStore

	SaveErr   error
	GetErr    error
	ListErr   error
	DeleteErr error
	FindErr   error

	SaveCalls int
}

var _ storage.RouteStore = (*MockStore)(nil)

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{MemoryStore: storage.NewMemoryStore()}
}

func (m *MockStore) Save(ctx context.Context, input string, result *models.DecodeResult) (*models.RouteSummary, error) {
	m.SaveCalls++
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	return m.MemoryStore.Save(ctx, input, result)
}

func (m *MockStore) Get(ctx context.Context, id string) (*models.StoredRoute, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.MemoryStore.Get(ctx, id)
}

func (m *MockStore) List(ctx context.Context, limit int) ([]*models.RouteSummary, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.MemoryStore.List(ctx, limit)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	return m.MemoryStore.Delete(ctx, id)
}

func (m *MockStore) FindByNPC(ctx context.Context, npcID int, limit int) ([]*models.RouteSummary, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.MemoryStore.FindByNPC(ctx, npcID, limit)
}
