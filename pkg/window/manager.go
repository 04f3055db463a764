package window

import (
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"sync"

	"github.com/go-mclib/invui/pkg/title"
	"github.com/google/uuid"
)

// Config wires a Manager to its host.
type Config struct {
	// Host presents windows. Required.
	Host Host
	// Renderer defaults to StackRenderer.
	Renderer Renderer
	// Formatter defaults to title.PlainFormatter.
	Formatter title.Formatter
	// Logger receives failures that have no caller to return to, such as a
	// redraw triggered by a Gui refresh. Defaults to stderr.
	Logger *log.Logger
}

// Validate checks that the Config is usable.
func (c Config) Validate() error {
	if c.Host == nil {
		return ErrNoHost
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Renderer == nil {
		c.Renderer = StackRenderer{}
	}
	if c.Formatter == nil {
		c.Formatter = title.PlainFormatter{}
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return c
}

// Manager creates window builders and tracks which window each viewer is
// looking at. At most one window is active per viewer: showing a window
// closes the viewer's previous one.
type Manager struct {
	cfg Config

	mu      sync.RWMutex
	active  map[uuid.UUID]Window
	windows []Window // shown at least once and not removed
}

// NewManager creates a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		cfg:    cfg.withDefaults(),
		active: make(map[uuid.UUID]Window),
	}, nil
}

// Logger returns the configured logger.
func (m *Manager) Logger() *log.Logger { return m.cfg.Logger }

// ActiveWindow returns the window currently shown to viewer, or nil.
func (m *Manager) ActiveWindow(viewer uuid.UUID) Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[viewer]
}

// Windows returns every window that has been shown and not yet removed.
func (m *Manager) Windows() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.windows)
}

// RemoveAll removes every tracked window.
func (m *Manager) RemoveAll() error {
	var errs []error
	for _, w := range m.Windows() {
		if err := w.Remove(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// activate makes w the viewer's active window, closing the previous one.
// Errors from that close, including close handler failures, are returned.
func (m *Manager) activate(w Window) error {
	viewer := w.ViewerUUID()

	m.mu.RLock()
	prev := m.active[viewer]
	m.mu.RUnlock()

	var err error
	if prev != nil && prev != w {
		m.cfg.Logger.Printf("window manager: closing previous window of %s", viewer)
		if err = prev.Close(); errors.Is(err, ErrNotShown) {
			err = nil
		}
		if err != nil {
			err = fmt.Errorf("close previous window of %s: %w", viewer, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[viewer] = w
	if !slices.Contains(m.windows, w) {
		m.windows = append(m.windows, w)
	}
	return err
}

func (m *Manager) deactivate(w Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[w.ViewerUUID()] == w {
		delete(m.active, w.ViewerUUID())
	}
}

func (m *Manager) forget(w Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active[w.ViewerUUID()] == w {
		delete(m.active, w.ViewerUUID())
	}
	m.windows = slices.DeleteFunc(m.windows, func(x Window) bool { return x == w })
}

// Single returns a builder for a normal single window.
func (m *Manager) Single() *SingleBuilder { return newSingleBuilder(m) }

// Split returns a builder for a normal split window.
func (m *Manager) Split() *SplitBuilder { return newSplitBuilder(m) }

// Merged returns a builder for a normal merged window.
func (m *Manager) Merged() *MergedBuilder { return newMergedBuilder(m) }

// AnvilSingle returns a builder for an anvil window with one Gui.
func (m *Manager) AnvilSingle() *AnvilSingleBuilder { return newAnvilSingleBuilder(m) }

// AnvilSplit returns a builder for an anvil window with upper and lower Guis.
func (m *Manager) AnvilSplit() *AnvilSplitBuilder { return newAnvilSplitBuilder(m) }

// BuildSingle configures a fresh SingleBuilder with fn and builds it.
func (m *Manager) BuildSingle(fn func(b *SingleBuilder)) (Window, error) {
	b := m.Single()
	fn(b)
	return b.Build()
}

// BuildSplit configures a fresh SplitBuilder with fn and builds it.
func (m *Manager) BuildSplit(fn func(b *SplitBuilder)) (Window, error) {
	b := m.Split()
	fn(b)
	return b.Build()
}

// BuildMerged configures a fresh MergedBuilder with fn and builds it.
func (m *Manager) BuildMerged(fn func(b *MergedBuilder)) (Window, error) {
	b := m.Merged()
	fn(b)
	return b.Build()
}
