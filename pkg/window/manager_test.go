package window

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/invui/pkg/gui"
	"github.com/go-mclib/invui/pkg/item"
	"github.com/go-mclib/invui/pkg/title"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerRequiresHost(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrNoHost)

	m, err := NewManager(Config{Host: newRecordingHost()})
	require.NoError(t, err)
	assert.NotNil(t, m.Logger())
}

func TestOneActiveWindowPerViewer(t *testing.T) {
	m, host := newTestManager(t)
	viewer, other := uuid.New(), uuid.New()

	first := buildChest(t, m, viewer, true)
	second := buildChest(t, m, viewer, true)
	elsewhere := buildChest(t, m, other, true)

	require.NoError(t, first.Show())
	require.NoError(t, elsewhere.Show())
	require.NoError(t, second.Show())

	assert.Equal(t, StateClosed, first.State())
	assert.Equal(t, StateShown, second.State())
	assert.Equal(t, StateShown, elsewhere.State())
	assert.Same(t, second, m.ActiveWindow(viewer))
	assert.Same(t, elsewhere, m.ActiveWindow(other))
	assert.Equal(t, 1, host.closes[viewer])
	assert.Len(t, m.Windows(), 3)
}

func TestReplacedWindowHandlerErrorsAreReturned(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	boom := errors.New("boom")

	first := buildChest(t, m, viewer, true)
	first.AddCloseHandler(func() error { return boom })
	second := buildChest(t, m, viewer, true)

	require.NoError(t, first.Show())
	err := second.Show()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var he *HandlerError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 0, he.Index)

	// the new window is shown regardless
	assert.Equal(t, StateClosed, first.State())
	assert.Equal(t, StateShown, second.State())
	assert.Same(t, second, m.ActiveWindow(viewer))
	assert.True(t, host.isOpen(viewer))
}

func TestCustomRendererAndFormatter(t *testing.T) {
	host := newRecordingHost()
	m, err := NewManager(Config{
		Host: host,
		Renderer: RendererFunc(func(p item.Provider) any {
			if p.Get().IsEmpty() {
				return "empty"
			}
			return items.ItemName(p.Get().ID)
		}),
		Formatter: title.FormatterFunc(func(t title.Title) (any, error) {
			return "[" + title.Text(t) + "]", nil
		}),
		Logger: log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)

	viewer := uuid.New()
	g := gui.NewGrid(9, 1)
	require.NoError(t, g.SetItem(0, item.Stack{S: stack("diamond")}, nil))
	w, err := m.Single().SetViewer(viewer).SetTitle(title.Plain("Vault")).SetGui(g).Build()
	require.NoError(t, err)
	require.NoError(t, w.Show())

	assert.Equal(t, "[Vault]", host.titles[viewer])
	assert.Equal(t, "minecraft:diamond", host.slots[viewer][0])
	assert.Equal(t, "empty", host.slots[viewer][1])
}

func TestShowingAgainKeepsWindowActive(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	w := buildChest(t, m, viewer, true)

	require.NoError(t, w.Show())
	require.NoError(t, w.Show())
	assert.Equal(t, 1, host.opens[viewer])
	assert.Equal(t, 0, host.closes[viewer])
}

func TestRemoveAll(t *testing.T) {
	m, host := newTestManager(t)
	boom := errors.New("boom")

	a, b := uuid.New(), uuid.New()
	wa := buildChest(t, m, a, true)
	wb, err := m.Single().
		SetViewer(b).
		SetTitle(title.Plain("Failing")).
		SetGui(gui.NewGrid(9, 1)).
		AddCloseHandler(func() error { return boom }).
		Build()
	require.NoError(t, err)
	unshown := buildChest(t, m, a, true)

	require.NoError(t, wa.Show())
	require.NoError(t, wb.Show())

	err = m.RemoveAll()
	assert.ErrorIs(t, err, boom)
	assert.True(t, wa.IsRemoved())
	assert.True(t, wb.IsRemoved())
	assert.False(t, unshown.IsRemoved(), "never shown windows are not tracked")
	assert.Empty(t, m.Windows())
	assert.False(t, host.isOpen(a))
	assert.False(t, host.isOpen(b))
}
