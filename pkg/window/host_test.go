package window

import (
	"io"
	"log"
	"sync"
	"testing"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// recordingHost remembers what it was asked to present.
type recordingHost struct {
	mu      sync.Mutex
	views   map[uuid.UUID]View
	slots   map[uuid.UUID]map[int]any
	titles  map[uuid.UUID]any
	opens   map[uuid.UUID]int
	closes  map[uuid.UUID]int
	openErr error
}

func newRecordingHost() *recordingHost {
	return &recordingHost{
		views:  make(map[uuid.UUID]View),
		slots:  make(map[uuid.UUID]map[int]any),
		titles: make(map[uuid.UUID]any),
		opens:  make(map[uuid.UUID]int),
		closes: make(map[uuid.UUID]int),
	}
}

func (h *recordingHost) Open(v View) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.openErr != nil {
		return h.openErr
	}
	h.views[v.Viewer] = v
	h.titles[v.Viewer] = v.Title
	h.slots[v.Viewer] = make(map[int]any)
	h.opens[v.Viewer]++
	return nil
}

func (h *recordingHost) Close(viewer uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.views, viewer)
	h.closes[viewer]++
	return nil
}

func (h *recordingHost) SetTitle(viewer uuid.UUID, t any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.titles[viewer] = t
	return nil
}

func (h *recordingHost) SetSlot(viewer uuid.UUID, slot int, rendered any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.slots[viewer] == nil {
		h.slots[viewer] = make(map[int]any)
	}
	h.slots[viewer][slot] = rendered
	return nil
}

func (h *recordingHost) slot(viewer uuid.UUID, slot int) *items.ItemStack {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, _ := h.slots[viewer][slot].(*items.ItemStack)
	return s
}

func (h *recordingHost) isOpen(viewer uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.views[viewer]
	return ok
}

func (h *recordingHost) view(viewer uuid.UUID) View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.views[viewer]
}

type testPlayer struct {
	id     uuid.UUID
	name   string
	online bool
}

func newPlayer(name string) *testPlayer {
	return &testPlayer{id: uuid.New(), name: name, online: true}
}

func (p *testPlayer) UUID() uuid.UUID { return p.id }
func (p *testPlayer) Name() string    { return p.name }
func (p *testPlayer) Online() bool    { return p.online }

func newTestManager(t *testing.T) (*Manager, *recordingHost) {
	t.Helper()
	host := newRecordingHost()
	m, err := NewManager(Config{Host: host, Logger: log.New(io.Discard, "", 0)})
	require.NoError(t, err)
	return m, host
}

func stack(name string) *items.ItemStack {
	return &items.ItemStack{ID: items.ItemID("minecraft:" + name), Count: 1}
}
