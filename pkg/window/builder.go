package window

import (
	"slices"

	"github.com/go-mclib/invui/pkg/gui"
	"github.com/go-mclib/invui/pkg/title"
)

// Builder is the configuration shared by every window builder. S is the
// concrete builder type, returned by every setter for chaining.
type Builder[S any] interface {
	SetTitle(t title.Title) S
	SetCloseable(closeable bool) S
	SetRetain(retain bool) S
	SetCloseHandlers(handlers []CloseHandler) S
	AddCloseHandler(h CloseHandler) S
	SetModifiers(modifiers []Modifier) S
	AddModifier(m Modifier) S
	// Clone returns a copy whose handler and modifier lists are independent.
	Clone() S
}

// WindowBuilder is a Builder that produces windows of type W. Build never
// changes the builder, so it can be called repeatedly.
type WindowBuilder[W Window, S any] interface {
	Builder[S]
	Build() (W, error)
}

// SinglePane is the facet of builders with one Gui.
type SinglePane[S any] interface {
	// SetGui uses g in every built window.
	SetGui(g gui.Gui) S
	// SetGuiBuilder builds a new Gui for every built window.
	SetGuiBuilder(b GuiBuilder) S
	// SetGuiSupplier calls fn for every built window.
	SetGuiSupplier(fn func() (gui.Gui, error)) S
}

// DoublePane is the facet of builders with an upper and a lower Gui.
type DoublePane[S any] interface {
	SetUpperGui(g gui.Gui) S
	SetUpperGuiBuilder(b GuiBuilder) S
	SetUpperGuiSupplier(fn func() (gui.Gui, error)) S
	SetLowerGui(g gui.Gui) S
	SetLowerGuiBuilder(b GuiBuilder) S
	SetLowerGuiSupplier(fn func() (gui.Gui, error)) S
}

// ViewerOf is the facet fixing the accepted viewer type V.
type ViewerOf[V, S any] interface {
	SetViewer(v V) S
}

// GuiBuilder creates a new Gui on every call; *gui.Builder implements it.
type GuiBuilder interface {
	Build() (gui.Gui, error)
}

// guiSource is one configured Gui: a fixed instance or a factory.
type guiSource struct {
	instance gui.Gui
	factory  func() (gui.Gui, error)
}

func (s guiSource) resolve() (gui.Gui, error) {
	switch {
	case s.instance != nil:
		return s.instance, nil
	case s.factory != nil:
		g, err := s.factory()
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrNoGui
		}
		return g, nil
	default:
		return nil, ErrNoGui
	}
}

// common holds the Builder facet. self is the outer builder.
type common[S any] struct {
	self      S
	manager   *Manager
	title     title.Title
	closeable bool
	retain    bool
	handlers  []CloseHandler
	modifiers []Modifier
}

func newCommon[S any](m *Manager, self S) common[S] {
	return common[S]{self: self, manager: m, closeable: true}
}

func (c *common[S]) SetTitle(t title.Title) S {
	c.title = t
	return c.self
}

func (c *common[S]) SetCloseable(closeable bool) S {
	c.closeable = closeable
	return c.self
}

func (c *common[S]) SetRetain(retain bool) S {
	c.retain = retain
	return c.self
}

func (c *common[S]) SetCloseHandlers(handlers []CloseHandler) S {
	c.handlers = slices.Clone(handlers)
	return c.self
}

func (c *common[S]) AddCloseHandler(h CloseHandler) S {
	c.handlers = append(c.handlers, h)
	return c.self
}

func (c *common[S]) SetModifiers(modifiers []Modifier) S {
	c.modifiers = slices.Clone(modifiers)
	return c.self
}

func (c *common[S]) AddModifier(m Modifier) S {
	c.modifiers = append(c.modifiers, m)
	return c.self
}

func (c *common[S]) cloneFor(self S) common[S] {
	cp := *c
	cp.self = self
	cp.handlers = slices.Clone(c.handlers)
	cp.modifiers = slices.Clone(c.modifiers)
	return cp
}

// newBase creates the lifecycle core of a window from the shared settings.
func (c *common[S]) newBase() *base {
	w := &base{
		manager:   c.manager,
		title:     c.title,
		closeable: c.closeable,
		retain:    c.retain,
	}
	for _, h := range c.handlers {
		w.nextHandler++
		w.handlers = append(w.handlers, handlerEntry{id: w.nextHandler, fn: h})
	}
	return w
}

func (c *common[S]) applyModifiers(w Window) {
	for _, m := range c.modifiers {
		m(w)
	}
}

// singlePane holds the SinglePane facet.
type singlePane[S any] struct {
	self S
	src  guiSource
}

func (p *singlePane[S]) SetGui(g gui.Gui) S {
	p.src = guiSource{instance: g}
	return p.self
}

func (p *singlePane[S]) SetGuiBuilder(b GuiBuilder) S {
	p.src = guiSource{factory: b.Build}
	return p.self
}

func (p *singlePane[S]) SetGuiSupplier(fn func() (gui.Gui, error)) S {
	p.src = guiSource{factory: fn}
	return p.self
}

// doublePane holds the DoublePane facet.
type doublePane[S any] struct {
	self         S
	upper, lower guiSource
}

func (p *doublePane[S]) SetUpperGui(g gui.Gui) S {
	p.upper = guiSource{instance: g}
	return p.self
}

func (p *doublePane[S]) SetUpperGuiBuilder(b GuiBuilder) S {
	p.upper = guiSource{factory: b.Build}
	return p.self
}

func (p *doublePane[S]) SetUpperGuiSupplier(fn func() (gui.Gui, error)) S {
	p.upper = guiSource{factory: fn}
	return p.self
}

func (p *doublePane[S]) SetLowerGui(g gui.Gui) S {
	p.lower = guiSource{instance: g}
	return p.self
}

func (p *doublePane[S]) SetLowerGuiBuilder(b GuiBuilder) S {
	p.lower = guiSource{factory: b.Build}
	return p.self
}

func (p *doublePane[S]) SetLowerGuiSupplier(fn func() (gui.Gui, error)) S {
	p.lower = guiSource{factory: fn}
	return p.self
}

func (p *doublePane[S]) resolve() (upper, lower gui.Gui, err error) {
	if upper, err = p.upper.resolve(); err != nil {
		return nil, nil, err
	}
	if lower, err = p.lower.resolve(); err != nil {
		return nil, nil, err
	}
	return upper, lower, nil
}

// playerViewer holds the viewer facet of builders that need a Player.
type playerViewer[S any] struct {
	self   S
	player Player
}

func (v *playerViewer[S]) SetViewer(p Player) S {
	v.player = p
	return v.self
}

func (v *playerViewer[S]) viewer() (Player, error) {
	if v.player == nil {
		return nil, ErrNoViewer
	}
	return v.player, nil
}
