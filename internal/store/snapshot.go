package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const DefaultDebounce = 300 * time.Millisecond

// SnapshotStore debounces snapshot writes so a burst of edits produces a
// single save. The very first Schedule call after startup is skipped; it
// is the echo of loading the state, not a user edit. Save failures are
// logged and swallowed, losing a snapshot must never take the service
// down.
type SnapshotStore struct {
	backend  Backend
	debounce time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
	primed  bool
}

func NewSnapshotStore(backend Backend, debounce time.Duration, log zerolog.Logger) *SnapshotStore {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &SnapshotStore{backend: backend, debounce: debounce, log: log}
}

// Load restores the snapshot, or returns defaults when none exists or it
// cannot be read. Fields that fail validation individually fall back to
// their defaults and are logged.
func (s *SnapshotStore) Load(ctx context.Context, defaults SchedulerState) SchedulerState {
	data, ok, err := s.backend.Load(ctx, StateKey)
	if err != nil {
		s.log.Error().Err(err).Msg("snapshot load failed, using defaults")
		return defaults
	}
	if !ok {
		return defaults
	}

	state, fallbacks := DecodeState(data, defaults)
	if len(fallbacks) > 0 {
		s.log.Warn().Strs("fields", fallbacks).Msg("snapshot fields failed validation, defaults used")
	}
	return state
}

// Schedule queues the state for saving after the debounce window. Later
// calls within the window replace the pending snapshot and reset the
// timer.
func (s *SnapshotStore) Schedule(state SchedulerState) {
	data, err := state.Encode()
	if err != nil {
		s.log.Error().Err(err).Msg("snapshot encode failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		s.primed = true
		return
	}

	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flushPending)
}

func (s *SnapshotStore) flushPending() {
	s.mu.Lock()
	data := s.pending
	s.pending = nil
	s.mu.Unlock()

	if data == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.backend.Save(ctx, StateKey, data); err != nil {
		s.log.Error().Err(err).Msg("snapshot save failed")
		return
	}
	s.log.Debug().Int("bytes", len(data)).Msg("snapshot saved")
}

// Flush writes any pending snapshot immediately. Called on shutdown so a
// save sitting in the debounce window is not lost.
func (s *SnapshotStore) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.flushPending()
}

// Clear drops the stored snapshot and re-arms the first-save skip so the
// defaults that replace it are not immediately written back.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.primed = false
	s.mu.Unlock()
	return s.backend.Clear(ctx, StateKey)
}
