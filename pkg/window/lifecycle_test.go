package window

import (
	"errors"
	"testing"

	"github.com/go-mclib/invui/pkg/gui"
	"github.com/go-mclib/invui/pkg/title"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChest(t *testing.T, m *Manager, viewer uuid.UUID, retain bool) Window {
	t.Helper()
	w, err := m.Single().
		SetViewer(viewer).
		SetTitle(title.Plain("Chest")).
		SetRetain(retain).
		SetGui(gui.NewGrid(9, 3)).
		Build()
	require.NoError(t, err)
	return w
}

func TestCloseWithoutRetainRemoves(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	w := buildChest(t, m, viewer, false)
	assert.Equal(t, StateUnshown, w.State())

	require.NoError(t, w.Show())
	assert.Equal(t, StateShown, w.State())
	assert.True(t, host.isOpen(viewer))
	assert.Equal(t, "Chest", host.view(viewer).Title)
	assert.Equal(t, MenuGeneric9x3, host.view(viewer).Menu)

	require.NoError(t, w.Close())
	assert.Equal(t, StateRemoved, w.State())
	assert.True(t, w.IsRemoved())
	assert.False(t, host.isOpen(viewer))

	require.NoError(t, w.Show())
	assert.Equal(t, StateRemoved, w.State())
	assert.False(t, host.isOpen(viewer))
}

func TestCloseWithRetainCanShowAgain(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	w := buildChest(t, m, viewer, true)

	require.NoError(t, w.Show())
	require.NoError(t, w.Close())
	assert.Equal(t, StateClosed, w.State())
	assert.Nil(t, m.ActiveWindow(viewer))

	require.NoError(t, w.Show())
	assert.Equal(t, StateShown, w.State())
	assert.Equal(t, 2, host.opens[viewer])
	assert.Same(t, w, m.ActiveWindow(viewer))

	require.NoError(t, w.Remove())
	assert.Equal(t, StateRemoved, w.State())
	assert.Empty(t, m.Windows())
}

func TestRemovedNeverShownAgain(t *testing.T) {
	sequences := map[string]func(w Window) error{
		"remove unshown": func(w Window) error { return w.Remove() },
		"remove shown": func(w Window) error {
			return errors.Join(w.Show(), w.Remove())
		},
		"remove closed": func(w Window) error {
			return errors.Join(w.Show(), w.Close(), w.Remove())
		},
		"remove twice": func(w Window) error {
			return errors.Join(w.Show(), w.Remove(), w.Remove())
		},
	}

	for name, seq := range sequences {
		t.Run(name, func(t *testing.T) {
			m, host := newTestManager(t)
			viewer := uuid.New()
			w := buildChest(t, m, viewer, true)

			require.NoError(t, seq(w))
			assert.True(t, w.IsRemoved())

			for range 3 {
				require.NoError(t, w.Show())
				assert.Equal(t, StateRemoved, w.State())
			}
			assert.False(t, host.isOpen(viewer))
			assert.ErrorIs(t, w.Close(), ErrNotShown)
		})
	}
}

func TestCloseRequiresShown(t *testing.T) {
	m, _ := newTestManager(t)
	w := buildChest(t, m, uuid.New(), true)
	assert.ErrorIs(t, w.Close(), ErrNotShown)

	require.NoError(t, w.Show())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrNotShown)
}

func TestChangeTitle(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	w := buildChest(t, m, viewer, true)

	assert.ErrorIs(t, w.ChangeTitle(title.Plain("Early")), ErrNotShown)
	assert.Equal(t, title.Plain("Chest"), w.Title())

	require.NoError(t, w.Show())
	require.NoError(t, w.ChangeTitle(title.Legacy("§aLoot")))
	assert.Equal(t, "Loot", host.titles[viewer])
	assert.Equal(t, title.Legacy("§aLoot"), w.Title())

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.ChangeTitle(title.Plain("Late")), ErrNotShown)
}

func TestCloseHandlersAllRunAndFailuresAreReported(t *testing.T) {
	m, _ := newTestManager(t)
	boom := errors.New("boom")

	var ran []string
	w, err := m.Single().
		SetViewer(uuid.New()).
		SetGui(gui.NewGrid(9, 1)).
		AddCloseHandler(func() error { ran = append(ran, "first"); return nil }).
		AddCloseHandler(func() error { ran = append(ran, "second"); return boom }).
		AddCloseHandler(func() error { ran = append(ran, "third"); return nil }).
		Build()
	require.NoError(t, err)

	require.NoError(t, w.Show())
	err = w.Close()

	assert.Equal(t, []string{"first", "second", "third"}, ran)
	require.ErrorIs(t, err, boom)
	var he *HandlerError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 1, he.Index)
	assert.True(t, w.IsRemoved())
}

func TestCloseHandlerPanicIsReported(t *testing.T) {
	m, _ := newTestManager(t)
	w := buildChest(t, m, uuid.New(), false)

	ran := false
	w.AddCloseHandler(func() error { panic("kaput") })
	w.AddCloseHandler(func() error { ran = true; return nil })

	require.NoError(t, w.Show())
	err := w.Close()
	assert.True(t, ran)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaput")
}

func TestRemoveCloseHandler(t *testing.T) {
	m, _ := newTestManager(t)
	w := buildChest(t, m, uuid.New(), true)

	calls := 0
	id := w.AddCloseHandler(func() error { calls++; return nil })
	assert.True(t, w.RemoveCloseHandler(id))
	assert.False(t, w.RemoveCloseHandler(id))

	w.SetCloseHandlers([]CloseHandler{func() error { calls += 10; return nil }})

	require.NoError(t, w.Show())
	require.NoError(t, w.Close())
	assert.Equal(t, 10, calls)
}

func TestReentrantTransitionsAreRejected(t *testing.T) {
	m, _ := newTestManager(t)
	w := buildChest(t, m, uuid.New(), true)

	var showErr, closeErr, removeErr error
	w.AddCloseHandler(func() error {
		showErr = w.Show()
		closeErr = w.Close()
		removeErr = w.Remove()
		return nil
	})

	require.NoError(t, w.Show())
	require.NoError(t, w.Close())

	assert.ErrorIs(t, showErr, ErrReentrantTransition)
	assert.ErrorIs(t, closeErr, ErrReentrantTransition)
	assert.ErrorIs(t, removeErr, ErrReentrantTransition)
	assert.Equal(t, StateClosed, w.State())

	// once the transition is over the window works normally
	require.NoError(t, w.Show())
	assert.Equal(t, StateShown, w.State())
}

func TestCloseableOnlyGatesViewerClose(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	w := buildChest(t, m, viewer, true)
	w.SetCloseable(false)
	assert.False(t, w.IsCloseable())

	require.NoError(t, w.Show())
	require.NoError(t, w.HandleViewerClose())
	assert.Equal(t, StateShown, w.State())
	assert.Equal(t, 2, host.opens[viewer])

	require.NoError(t, w.Close())
	assert.Equal(t, StateClosed, w.State())

	w.SetCloseable(true)
	require.NoError(t, w.Show())
	require.NoError(t, w.HandleViewerClose())
	assert.Equal(t, StateClosed, w.State())
	assert.ErrorIs(t, w.HandleViewerClose(), ErrNotShown)
}

func TestRemoveShownRunsCloseHandlers(t *testing.T) {
	m, host := newTestManager(t)
	viewer := uuid.New()
	w := buildChest(t, m, viewer, true)
	calls := 0
	w.AddCloseHandler(func() error { calls++; return nil })

	require.NoError(t, w.Show())
	require.NoError(t, w.Remove())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, host.closes[viewer])

	// removing an unshown window runs nothing
	w2 := buildChest(t, m, viewer, true)
	w2.AddCloseHandler(func() error { calls++; return nil })
	require.NoError(t, w2.Remove())
	assert.Equal(t, 1, calls)
}

func TestShowFailureLeavesWindowUnshown(t *testing.T) {
	m, host := newTestManager(t)
	host.openErr = errors.New("no session")
	viewer := uuid.New()
	w := buildChest(t, m, viewer, false)

	assert.ErrorIs(t, w.Show(), host.openErr)
	assert.Equal(t, StateUnshown, w.State())
	assert.Nil(t, m.ActiveWindow(viewer))
	assert.Empty(t, m.Windows(), "a window that never opened is not tracked")

	// a retained window that was shown before stays tracked
	host.openErr = nil
	r := buildChest(t, m, viewer, true)
	require.NoError(t, r.Show())
	require.NoError(t, r.Close())
	host.openErr = errors.New("session lost")
	assert.Error(t, r.Show())
	assert.Equal(t, StateClosed, r.State())
	assert.Equal(t, []Window{r}, m.Windows())
	assert.Nil(t, m.ActiveWindow(viewer))
}

func TestCurrentViewer(t *testing.T) {
	m, _ := newTestManager(t)
	p := newPlayer("alice")
	w, err := m.Single().SetPlayer(p).SetGui(gui.NewGrid(9, 1)).Build()
	require.NoError(t, err)

	assert.Same(t, p, w.Viewer())
	assert.Nil(t, w.CurrentViewer())
	require.NoError(t, w.Show())
	assert.Same(t, p, w.CurrentViewer())
	assert.Equal(t, p.UUID(), w.ViewerUUID())
}
