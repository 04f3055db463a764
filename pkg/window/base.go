package window

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-mclib/invui/pkg/gui"
	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/go-mclib/invui/pkg/item"
	"github.com/go-mclib/invui/pkg/title"
	"github.com/google/uuid"
)

// pane is a Gui placed at a viewer slot offset.
type pane struct {
	gui    gui.Gui
	offset int
}

type handlerEntry struct {
	id HandlerID
	fn CloseHandler
}

type subscription struct {
	inv *inventory.Inventory
	id  inventory.ListenerID
}

// base implements the lifecycle shared by every concrete window type.
type base struct {
	self    Window
	manager *Manager

	viewer uuid.UUID
	player Player
	kind   Kind
	layout Layout
	menu   MenuType
	panes  []pane
	upper  int
	lower  int

	mu            sync.Mutex
	state         State
	transitioning bool
	title         title.Title
	closeable     bool
	retain        bool
	handlers      []handlerEntry
	nextHandler   HandlerID

	// set while shown
	attached bool
	subs     []subscription
	watches  map[any]func()
}

func (w *base) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *base) IsRemoved() bool { return w.State() == StateRemoved }

func (w *base) IsCloseable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeable
}

func (w *base) SetCloseable(closeable bool) {
	w.mu.Lock()
	w.closeable = closeable
	w.mu.Unlock()
}

func (w *base) Title() title.Title {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *base) ViewerUUID() uuid.UUID { return w.viewer }
func (w *base) Viewer() Player        { return w.player }
func (w *base) Kind() Kind            { return w.kind }
func (w *base) Layout() Layout        { return w.layout }

func (w *base) CurrentViewer() Player {
	if w.State() != StateShown {
		return nil
	}
	return w.player
}

func (w *base) Guis() []gui.Gui {
	out := make([]gui.Gui, len(w.panes))
	for i, p := range w.panes {
		out[i] = p.gui
	}
	return out
}

func (w *base) SetCloseHandlers(handlers []CloseHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = nil
	for _, h := range handlers {
		w.nextHandler++
		w.handlers = append(w.handlers, handlerEntry{id: w.nextHandler, fn: h})
	}
}

func (w *base) AddCloseHandler(h CloseHandler) HandlerID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextHandler++
	w.handlers = append(w.handlers, handlerEntry{id: w.nextHandler, fn: h})
	return w.nextHandler
}

func (w *base) RemoveCloseHandler(id HandlerID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.handlers)
	w.handlers = slices.DeleteFunc(w.handlers, func(h handlerEntry) bool { return h.id == id })
	return len(w.handlers) != n
}

func (w *base) view(formattedTitle any) View {
	return View{
		Viewer:    w.viewer,
		Kind:      w.kind,
		Layout:    w.layout,
		Menu:      w.menu,
		Title:     formattedTitle,
		UpperSize: w.upper,
		LowerSize: w.lower,
	}
}

func (w *base) endTransition() {
	w.mu.Lock()
	w.transitioning = false
	w.mu.Unlock()
}

func (w *base) Show() error {
	w.mu.Lock()
	switch {
	case w.state == StateRemoved, w.state == StateShown:
		w.mu.Unlock()
		return nil
	case w.transitioning:
		w.mu.Unlock()
		return ErrReentrantTransition
	case w.layout != LayoutSingle && w.player != nil && !w.player.Online():
		w.mu.Unlock()
		return ErrViewerOffline
	}
	w.transitioning = true
	t := w.title
	firstShow := w.state == StateUnshown
	w.mu.Unlock()
	defer w.endTransition()

	formatted, err := w.manager.cfg.Formatter.Format(t)
	if err != nil {
		return fmt.Errorf("format title: %w", err)
	}

	// the previous window of this viewer is closed before ours opens
	prevErr := w.manager.activate(w.self)

	host := w.manager.cfg.Host
	if err := host.Open(w.view(formatted)); err != nil {
		if firstShow {
			w.manager.forget(w.self)
		} else {
			w.manager.deactivate(w.self)
		}
		return errors.Join(prevErr, fmt.Errorf("open window for %s: %w", w.viewer, err))
	}

	w.attach()
	redrawErr := w.redrawAll()

	w.mu.Lock()
	w.state = StateShown
	w.mu.Unlock()
	return errors.Join(prevErr, redrawErr)
}

func (w *base) Close() error {
	w.mu.Lock()
	switch {
	case w.transitioning:
		w.mu.Unlock()
		return ErrReentrantTransition
	case w.state != StateShown:
		w.mu.Unlock()
		return ErrNotShown
	}
	w.transitioning = true
	w.mu.Unlock()
	defer w.endTransition()

	return w.closeShown(false)
}

func (w *base) Remove() error {
	w.mu.Lock()
	switch {
	case w.state == StateRemoved:
		w.mu.Unlock()
		return nil
	case w.transitioning:
		w.mu.Unlock()
		return ErrReentrantTransition
	}
	shown := w.state == StateShown
	w.transitioning = true
	w.mu.Unlock()
	defer w.endTransition()

	if shown {
		return w.closeShown(true)
	}
	w.manager.forget(w.self)
	w.setState(StateRemoved)
	return nil
}

// closeShown tears down a shown window, moves it to its next state and then
// runs the close handlers. Must be called inside a transition.
func (w *base) closeShown(remove bool) error {
	w.detach()

	var errs []error
	if err := w.manager.cfg.Host.Close(w.viewer); err != nil {
		errs = append(errs, fmt.Errorf("close window for %s: %w", w.viewer, err))
	}
	w.manager.deactivate(w.self)

	w.mu.Lock()
	next := StateClosed
	if remove || !w.retain {
		next = StateRemoved
	}
	w.state = next
	handlers := slices.Clone(w.handlers)
	w.mu.Unlock()

	if next == StateRemoved {
		w.manager.forget(w.self)
	}

	for i, h := range handlers {
		if err := callHandler(h.fn); err != nil {
			errs = append(errs, &HandlerError{Index: i, Err: err})
		}
	}
	return errors.Join(errs...)
}

func callHandler(fn CloseHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return fn()
}

func (w *base) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

func (w *base) ChangeTitle(t title.Title) error {
	if w.State() != StateShown {
		return ErrNotShown
	}
	formatted, err := w.manager.cfg.Formatter.Format(t)
	if err != nil {
		return fmt.Errorf("format title: %w", err)
	}
	if err := w.manager.cfg.Host.SetTitle(w.viewer, formatted); err != nil {
		return fmt.Errorf("set title for %s: %w", w.viewer, err)
	}
	w.mu.Lock()
	w.title = t
	w.mu.Unlock()
	return nil
}

func (w *base) HandleClick(slot int, c item.Click) error {
	if w.State() != StateShown {
		return ErrNotShown
	}
	for _, p := range w.panes {
		if slot >= p.offset && slot < p.offset+p.gui.Size() {
			return p.gui.Click(slot-p.offset, c)
		}
	}
	return &inventory.OutOfRangeError{Index: slot, Size: w.upper + w.lower}
}

func (w *base) HandleViewerClose() error {
	if w.State() != StateShown {
		return ErrNotShown
	}
	if w.IsCloseable() {
		return w.Close()
	}
	// the host already closed it on the viewer's side
	formatted, err := w.manager.cfg.Formatter.Format(w.Title())
	if err != nil {
		return fmt.Errorf("format title: %w", err)
	}
	if err := w.manager.cfg.Host.Open(w.view(formatted)); err != nil {
		return fmt.Errorf("reopen window for %s: %w", w.viewer, err)
	}
	return w.redrawAll()
}

// attach starts watching everything the panes display.
func (w *base) attach() {
	w.mu.Lock()
	w.attached = true
	w.mu.Unlock()
	w.rewire()
}

// rewire watches every Gui and ItemElement the panes reach, including through
// links, and subscribes to every bound inventory. Already watched sources are
// kept.
func (w *base) rewire() {
	for _, p := range w.panes {
		w.watchGui(p.gui)
		for i := range p.gui.Size() {
			e, err := p.gui.SlotElement(i)
			if err != nil {
				continue
			}
			target, path, _ := gui.ResolvePath(e)
			for _, l := range path {
				w.watchGui(l.Gui)
			}
			switch t := target.(type) {
			case *gui.ItemElement:
				w.watchItem(t)
			case *gui.VISlotElement:
				if inv := t.Inventory(); inv != nil {
					w.subscribe(inv)
				}
			}
		}
	}
}

func (w *base) watch(key any, start func() (cancel func())) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.attached {
		return
	}
	if _, ok := w.watches[key]; ok {
		return
	}
	if w.watches == nil {
		w.watches = make(map[any]func())
	}
	w.watches[key] = start()
}

func (w *base) watchGui(g gui.Gui) {
	w.watch(g, func() func() {
		return g.Observe(func(index int) { w.onGuiRefresh(g, index) })
	})
}

func (w *base) watchItem(e *gui.ItemElement) {
	w.watch(e, func() func() {
		return e.Observe(func() { w.onItemChanged(e) })
	})
}

// onGuiRefresh redraws the pane cells that are, or link through, slot index
// of g.
func (w *base) onGuiRefresh(g gui.Gui, index int) {
	w.rewire()
	err := w.redrawMatching(func(p pane, i int, _ gui.SlotElement, path []*gui.LinkElement) bool {
		return (p.gui == g && i == index) || gui.Passes(path, g, index)
	})
	if err != nil {
		w.manager.cfg.Logger.Printf("window %s: redraw after refresh of slot %d: %v", w.viewer, index, err)
	}
}

func (w *base) onItemChanged(e *gui.ItemElement) {
	err := w.redrawMatching(func(_ pane, _ int, target gui.SlotElement, _ []*gui.LinkElement) bool {
		return target == e
	})
	if err != nil {
		w.manager.cfg.Logger.Printf("window %s: redraw changed item: %v", w.viewer, err)
	}
}

func (w *base) subscribe(inv *inventory.Inventory) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.attached {
		return
	}
	for _, s := range w.subs {
		if s.inv == inv {
			return
		}
	}
	id := inv.AddListener(w.onInventoryEvent)
	w.subs = append(w.subs, subscription{inv: inv, id: id})
}

func (w *base) detach() {
	w.mu.Lock()
	subs, watches := w.subs, w.watches
	w.subs, w.watches = nil, nil
	w.attached = false
	w.mu.Unlock()

	for _, s := range subs {
		s.inv.RemoveListener(s.id)
	}
	for _, cancel := range watches {
		cancel()
	}
}

// subscribed reports how many inventories the window currently listens to.
func (w *base) subscribed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// watched reports how many Guis and ItemElements the window currently observes.
func (w *base) watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watches)
}

func (w *base) onInventoryEvent(ev inventory.Event) error {
	return w.redrawMatching(func(_ pane, _ int, target gui.SlotElement, _ []*gui.LinkElement) bool {
		vi, ok := target.(*gui.VISlotElement)
		if !ok || vi.Inventory() != ev.Inventory {
			return false
		}
		return ev.Kind != inventory.SlotChanged || vi.Slot == ev.Slot
	})
}

// redrawMatching redraws every pane cell accepted by match. target is nil
// when the cell's links cannot be resolved.
func (w *base) redrawMatching(match func(p pane, index int, target gui.SlotElement, path []*gui.LinkElement) bool) error {
	var errs []error
	for _, p := range w.panes {
		for i := range p.gui.Size() {
			e, err := p.gui.SlotElement(i)
			if err != nil {
				continue
			}
			target, path, _ := gui.ResolvePath(e)
			if !match(p, i, target, path) {
				continue
			}
			if err := w.redraw(p, i); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (w *base) redraw(p pane, index int) error {
	e, err := p.gui.SlotElement(index)
	if err != nil {
		return err
	}
	provider, err := gui.ItemProvider(e)
	if err != nil {
		provider = item.Empty
	}
	rendered := w.manager.cfg.Renderer.Render(provider)
	if hostErr := w.manager.cfg.Host.SetSlot(w.viewer, p.offset+index, rendered); hostErr != nil {
		return errors.Join(err, hostErr)
	}
	return err
}

func (w *base) redrawAll() error {
	var errs []error
	for _, p := range w.panes {
		for i := range p.gui.Size() {
			if err := w.redraw(p, i); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
