package tracker

import (
	"io"
	"log/slog"

	"github.com/kk-code-lab/rhist/internal/history"
)

// Manager keeps one tracker per open panel and drives them each frame.
type Manager struct {
	registry    *history.Registry
	folders     FolderChecker
	opts        []Option
	logger      *slog.Logger
	trackers    map[string]*Tracker
	initialized bool
}

// NewManager creates a manager whose ledgers live in registry.
func NewManager(registry *history.Registry, folders FolderChecker, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		registry: registry,
		folders:  folders,
		opts:     opts,
		logger:   logger,
		trackers: make(map[string]*Tracker),
	}
}

// Registry returns the ledger registry.
func (m *Manager) Registry() *history.Registry {
	return m.registry
}

// Sync runs one frame. The first call polls every open panel; later calls
// drop trackers of closed panels and poll only active, the panel the user
// last interacted with. active may be nil.
func (m *Manager) Sync(open []Panel, active Panel) {
	if !m.initialized {
		for _, p := range open {
			m.Ensure(p).Poll()
		}
		m.initialized = true
	}

	live := make(map[string]struct{}, len(open))
	for _, p := range open {
		live[p.ID()] = struct{}{}
	}
	for id := range m.trackers {
		if _, ok := live[id]; !ok {
			m.Forget(id)
		}
	}

	if active == nil {
		return
	}
	m.Ensure(active).Poll()
}

// Ensure returns the tracker for p, creating it and its ledger on first use.
func (m *Manager) Ensure(p Panel) *Tracker {
	id := p.ID()
	if t, ok := m.trackers[id]; ok {
		return t
	}

	ledger, created := m.registry.GetOrCreate(id)
	logger := m.logger.With("panel", id)
	opts := append([]Option{WithLogger(logger)}, m.opts...)
	t := New(p, ledger, m.folders, opts...)
	m.trackers[id] = t
	logger.Debug("panel tracked", "new_ledger", created)
	return t
}

// Tracker returns the tracker of a panel, if it is tracked.
func (m *Manager) Tracker(id string) (*Tracker, bool) {
	t, ok := m.trackers[id]
	return t, ok
}

// Forget discards the tracker and ledger of a closed panel.
func (m *Manager) Forget(id string) {
	if _, ok := m.trackers[id]; !ok {
		return
	}
	delete(m.trackers, id)
	m.registry.Remove(id)
	m.logger.Debug("panel closed", "panel", id)
}

// Len returns the number of tracked panels.
func (m *Manager) Len() int {
	return len(m.trackers)
}
