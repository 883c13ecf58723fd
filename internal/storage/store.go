package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mdt-route/backend/internal/models"
)

// ErrNotFound is returned when a route ID is unknown.
var ErrNotFound = errors.New("route not found")

// RouteStore persists decoded routes.
type RouteStore interface {
	Save(ctx context.Context, input string, result *models.DecodeResult) (*models.RouteSummary, error)
	Get(ctx context.Context, id string) (*models.StoredRoute, error)
	List(ctx context.Context, limit int) ([]*models.RouteSummary, error)
	Delete(ctx context.Context, id string) error
	FindByNPC(ctx context.Context, npcID int, limit int) ([]*models.RouteSummary, error)
	Close() error
}

// MemoryStore implements RouteStore in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	routes map[string]*models.StoredRoute
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		routes: make(map[string]*models.StoredRoute),
	}
}

// Save stores a decode result under a new ID.
func (s *MemoryStore) Save(_ context.Context, input string, result *models.DecodeResult) (*models.RouteSummary, error) {
	if result == nil {
		return nil, fmt.Errorf("saving route: nil result")
	}
	summary := models.NewRouteSummary(uuid.New().String(), time.Now(), result)
	stored := &models.StoredRoute{
		RouteSummary: summary,
		Input:        input,
		Result:       result,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[summary.ID] = stored

	return &summary, nil
}

// Get retrieves a stored route by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*models.StoredRoute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.routes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return stored, nil
}

// List returns the most recent routes.
func (s *MemoryStore) List(_ context.Context, limit int) ([]*models.RouteSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*models.RouteSummary, 0, len(s.routes))
	for _, r := range s.routes {
		summary := r.RouteSummary
		list = append(list, &summary)
	}
	return newestFirst(list, limit), nil
}

// Delete removes a route.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.routes, id)
	return nil
}

// FindByNPC returns routes that pull at least one enemy with the given NPC ID.
func (s *MemoryStore) FindByNPC(_ context.Context, npcID int, limit int) ([]*models.RouteSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*models.RouteSummary
	for _, r := range s.routes {
		if containsNPC(r.Result, npcID) {
			summary := r.RouteSummary
			list = append(list, &summary)
		}
	}
	return newestFirst(list, limit), nil
}

// Close is a no-op for MemoryStore.
func (s *MemoryStore) Close() error {
	return nil
}

func containsNPC(result *models.DecodeResult, npcID int) bool {
	if result == nil || result.Resolved == nil {
		return false
	}
	for _, p := range result.Resolved.Pulls {
		for _, e := range p.Enemies {
			if e.NPCID == npcID {
				return true
			}
		}
	}
	return false
}

func newestFirst(list []*models.RouteSummary, limit int) []*models.RouteSummary {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
