// Package store is the inventory state-mutation engine. A Store owns the
// authoritative in-memory collections (equipment, transactions, maintenance
// records) for the lifetime of the process, enforces the invariants linking
// them, and writes each collection as a whole JSON blob to the key/value
// persistence substrate after every mutation. The persistence layer only
// ever holds serialized copies, never live references.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adhyoctora11-coder/HMTH/internal/kv"
	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// Stable persistence keys.
const (
	keyEquipments   = "equipments"
	keyTransactions = "transactions"
	keyMaintenances = "maintenances"
	keyLastSync     = "last_sync"
	keySession      = "session"
)

// ErrEquipmentNotFound is returned by operations whose contract requires an
// existing equipment record.
var ErrEquipmentNotFound = errors.New("equipment not found")

// Store owns the three collections plus the current session identity.
// A mutex serializes mutations; every operation runs to completion within
// one critical section, so the collections are never observed half-mutated.
type Store struct {
	db *kv.DB

	mu           sync.Mutex
	equipments   []model.Equipment
	transactions []model.Transaction
	maintenances []model.Maintenance
	session      *model.User
	lastSync     string

	syncing atomic.Bool
}

// Open loads the persisted collections and session identity into a new Store.
// Absent keys load as empty collections.
func Open(ctx context.Context, db *kv.DB) (*Store, error) {
	s := &Store{db: db}

	if err := loadJSON(ctx, db, keyEquipments, &s.equipments); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, db, keyTransactions, &s.transactions); err != nil {
		return nil, err
	}
	if err := loadJSON(ctx, db, keyMaintenances, &s.maintenances); err != nil {
		return nil, err
	}

	if data, err := db.Get(ctx, keySession); err != nil {
		return nil, err
	} else if data != nil {
		var user model.User
		if err := json.Unmarshal(data, &user); err != nil {
			// A corrupt session is not fatal, just a logged-out state.
			slog.Warn("discarding unreadable session record", "error", err)
		} else {
			s.session = &user
		}
	}

	if stamp, err := db.Get(ctx, keyLastSync); err != nil {
		return nil, err
	} else if stamp != nil {
		s.lastSync = string(stamp)
	}

	return s, nil
}

func loadJSON(ctx context.Context, db *kv.DB, key string, target any) error {
	data, err := db.Get(ctx, key)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding %s collection: %w", key, err)
	}
	return nil
}

// persist writes all three collections and stamps the sync time. Callers
// must hold the mutex. A failed write is not retried; the error propagates
// to the caller of the mutating operation.
func (s *Store) persist(ctx context.Context) error {
	for _, c := range []struct {
		key   string
		value any
	}{
		{keyEquipments, s.equipments},
		{keyTransactions, s.transactions},
		{keyMaintenances, s.maintenances},
	} {
		data, err := json.Marshal(c.value)
		if err != nil {
			return fmt.Errorf("encoding %s collection: %w", c.key, err)
		}
		if err := s.db.Put(ctx, c.key, data); err != nil {
			return err
		}
	}

	s.lastSync = time.Now().Format(time.RFC3339)
	return s.db.Put(ctx, keyLastSync, []byte(s.lastSync))
}

// SetSession records the logged-in identity and persists it so the session
// survives a restart.
func (s *Store) SetSession(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.db.Put(ctx, keySession, data); err != nil {
		return err
	}
	s.session = &user
	return nil
}

// Session returns the current session identity, or nil when logged out.
func (s *Store) Session() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	user := *s.session
	return &user
}

// ClearSession logs out and removes the persisted session record.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Delete(ctx, keySession); err != nil {
		return err
	}
	s.session = nil
	return nil
}

// syncDelay is the artificial delay of the fire-and-forget sync touch.
var syncDelay = 800 * time.Millisecond

// Sync touches the last-sync timestamp asynchronously. If a sync is already
// in flight the request is dropped rather than queued; the return value
// reports whether this request was accepted. There is no cancellation: an
// accepted sync always runs to completion or failure.
func (s *Store) Sync() bool {
	if !s.syncing.CompareAndSwap(false, true) {
		return false
	}

	go func() {
		defer s.syncing.Store(false)
		time.Sleep(syncDelay)

		stamp := time.Now().Format(time.RFC3339)
		s.mu.Lock()
		s.lastSync = stamp
		s.mu.Unlock()

		if err := s.db.Put(context.Background(), keyLastSync, []byte(stamp)); err != nil {
			slog.Error("sync touch failed", "error", err)
		}
	}()
	return true
}

// LastSync returns the last persisted sync timestamp, empty if never synced.
func (s *Store) LastSync() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}
