// Package drafts persists the free-text dashboard note each user keeps.
//
// Writes arrive on every keystroke, so the store coalesces them with a
// trailing-edge debounce: at most one write per window of continued typing,
// and the last value wins once input pauses. A companion timestamp key
// records the last write for display.
package drafts

import (
	"context"
	"sync"
	"time"
)

const (
	noteKeyPrefix   = "secretariat_dashboard_notes"
	updatedAtSuffix = "updated_at"
)

// KV is the narrow slice of the key-value store the drafts need.
type KV interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, keys ...string) error
}

type pendingWrite struct {
	timer *time.Timer
	value string
}

type Store struct {
	kv     KV
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

// NewStore returns a draft store debouncing writes over window. A zero
// window disables debouncing and writes through immediately.
func NewStore(kv KV, window time.Duration) *Store {
	return &Store{
		kv:      kv,
		window:  window,
		now:     time.Now,
		pending: make(map[string]*pendingWrite),
	}
}

func noteKey(userID string) string {
	return noteKeyPrefix + ":" + userID
}

func timestampKey(userID string) string {
	return noteKey(userID) + ":" + updatedAtSuffix
}

// Save schedules value for persistence. Repeated calls within the debounce
// window replace the pending value and push the flush out; only the last
// value is ever written.
func (s *Store) Save(userID, value string) {
	if s.window <= 0 {
		_ = s.flush(userID, value)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[userID]; ok {
		p.value = value
		p.timer.Reset(s.window)
		return
	}

	p := &pendingWrite{value: value}
	p.timer = time.AfterFunc(s.window, func() {
		s.mu.Lock()
		value := p.value
		delete(s.pending, userID)
		s.mu.Unlock()
		_ = s.flush(userID, value)
	})
	s.pending[userID] = p
}

func (s *Store) flush(userID, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.kv.Set(ctx, noteKey(userID), value); err != nil {
		return err
	}
	return s.kv.Set(ctx, timestampKey(userID), s.now().UTC().Format(time.RFC3339))
}

// Load reads the note and its last-write timestamp. Missing keys come back
// as empty values, not errors.
func (s *Store) Load(ctx context.Context, userID string) (value string, updatedAt string, err error) {
	value, _, err = s.kv.Get(ctx, noteKey(userID))
	if err != nil {
		return "", "", err
	}
	updatedAt, _, err = s.kv.Get(ctx, timestampKey(userID))
	if err != nil {
		return "", "", err
	}
	return value, updatedAt, nil
}

// Clear drops any pending write and removes both keys.
func (s *Store) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	if p, ok := s.pending[userID]; ok {
		p.timer.Stop()
		delete(s.pending, userID)
	}
	s.mu.Unlock()

	return s.kv.Del(ctx, noteKey(userID), timestampKey(userID))
}
