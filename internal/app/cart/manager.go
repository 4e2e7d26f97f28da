package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/Atash03/maestro-delivery-app-sub002/internal/adapter/logger"
	"github.com/Atash03/maestro-delivery-app-sub002/internal/interfaces"
)

// Manager hands out one Engine per session id. With a CartStore configured,
// a session's first access restores the persisted snapshot and Persist
// writes the current state back, so carts survive a process restart.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine
	store   interfaces.CartStore
	logger  logger.Logger
}

// NewManager creates a manager. store may be nil for purely in-process carts.
func NewManager(store interfaces.CartStore, log logger.Logger) *Manager {
	return &Manager{
		engines: make(map[string]*Engine),
		store:   store,
		logger:  log,
	}
}

// Engine returns the session's cart engine, creating it on first use. A
// stored snapshot, if any, is restored into the fresh engine.
func (m *Manager) Engine(ctx context.Context, sessionID string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eng, ok := m.engines[sessionID]; ok {
		return eng, nil
	}

	eng := NewEngine(m.logger)
	if m.store != nil {
		snap, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
		}
		if snap != nil {
			eng.Restore(*snap)
			m.logger.Debug("cart_restored", "Cart snapshot restored", "", map[string]any{
				"session_id": sessionID,
				"items":      len(snap.Items),
			})
		}
	}

	m.engines[sessionID] = eng
	return eng, nil
}

// Persist writes the session's current cart to the snapshot store. An empty
// cart deletes the snapshot instead of storing a hollow one.
func (m *Manager) Persist(ctx context.Context, sessionID string) error {
	if m.store == nil {
		return nil
	}

	m.mu.Lock()
	eng, ok := m.engines[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	snap := eng.Snapshot()
	if snap.IsEmpty() {
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to delete cart snapshot: %w", err)
		}
		return nil
	}
	if err := m.store.Save(ctx, sessionID, snap); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}
