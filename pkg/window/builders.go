package window

import (
	"github.com/google/uuid"
)

var (
	_ WindowBuilder[Window, *SingleBuilder] = (*SingleBuilder)(nil)
	_ SinglePane[*SingleBuilder]            = (*SingleBuilder)(nil)
	_ ViewerOf[uuid.UUID, *SingleBuilder]   = (*SingleBuilder)(nil)

	_ WindowBuilder[Window, *SplitBuilder] = (*SplitBuilder)(nil)
	_ DoublePane[*SplitBuilder]            = (*SplitBuilder)(nil)
	_ ViewerOf[Player, *SplitBuilder]      = (*SplitBuilder)(nil)

	_ WindowBuilder[Window, *MergedBuilder] = (*MergedBuilder)(nil)
	_ SinglePane[*MergedBuilder]            = (*MergedBuilder)(nil)
	_ ViewerOf[Player, *MergedBuilder]      = (*MergedBuilder)(nil)

	_ WindowBuilder[AnvilWindow, *AnvilSingleBuilder] = (*AnvilSingleBuilder)(nil)
	_ SinglePane[*AnvilSingleBuilder]                 = (*AnvilSingleBuilder)(nil)
	_ ViewerOf[Player, *AnvilSingleBuilder]           = (*AnvilSingleBuilder)(nil)

	_ WindowBuilder[AnvilWindow, *AnvilSplitBuilder] = (*AnvilSplitBuilder)(nil)
	_ DoublePane[*AnvilSplitBuilder]                 = (*AnvilSplitBuilder)(nil)
	_ ViewerOf[Player, *AnvilSplitBuilder]           = (*AnvilSplitBuilder)(nil)
)

// SingleBuilder builds normal windows with one Gui in the container area.
// The viewer only needs an identity; it does not have to be online.
type SingleBuilder struct {
	common[*SingleBuilder]
	singlePane[*SingleBuilder]

	viewer uuid.UUID
	player Player
}

func newSingleBuilder(m *Manager) *SingleBuilder {
	b := &SingleBuilder{}
	b.common = newCommon(m, b)
	b.singlePane.self = b
	return b
}

// SetViewer sets the viewer by identity.
func (b *SingleBuilder) SetViewer(id uuid.UUID) *SingleBuilder {
	b.viewer, b.player = id, nil
	return b
}

// SetPlayer sets the viewer from a Player.
func (b *SingleBuilder) SetPlayer(p Player) *SingleBuilder {
	b.viewer, b.player = p.UUID(), p
	return b
}

func (b *SingleBuilder) Clone() *SingleBuilder {
	cp := &SingleBuilder{viewer: b.viewer, player: b.player}
	cp.common = b.common.cloneFor(cp)
	cp.singlePane = singlePane[*SingleBuilder]{self: cp, src: b.singlePane.src}
	return cp
}

func (b *SingleBuilder) Build() (Window, error) {
	if b.viewer == uuid.Nil {
		return nil, ErrNoViewer
	}
	g, err := b.src.resolve()
	if err != nil {
		return nil, err
	}
	menu, err := normalMenu(g.Width(), g.Height())
	if err != nil {
		return nil, err
	}

	w := &singleWindow{base: b.newBase()}
	w.self = w
	w.viewer, w.player = b.viewer, b.player
	w.kind, w.layout, w.menu = KindNormal, LayoutSingle, menu
	w.panes = []pane{{gui: g}}
	w.upper = g.Size()

	b.applyModifiers(w)
	return w, nil
}

// SplitBuilder builds normal windows whose lower Gui covers the viewer's
// own inventory. The viewer must be a Player.
type SplitBuilder struct {
	common[*SplitBuilder]
	doublePane[*SplitBuilder]
	playerViewer[*SplitBuilder]
}

func newSplitBuilder(m *Manager) *SplitBuilder {
	b := &SplitBuilder{}
	b.common = newCommon(m, b)
	b.doublePane.self = b
	b.playerViewer.self = b
	return b
}

func (b *SplitBuilder) Clone() *SplitBuilder {
	cp := &SplitBuilder{}
	cp.common = b.common.cloneFor(cp)
	cp.doublePane = doublePane[*SplitBuilder]{self: cp, upper: b.upper, lower: b.lower}
	cp.playerViewer = playerViewer[*SplitBuilder]{self: cp, player: b.player}
	return cp
}

func (b *SplitBuilder) Build() (Window, error) {
	p, err := b.viewer()
	if err != nil {
		return nil, err
	}
	upper, lower, err := b.doublePane.resolve()
	if err != nil {
		return nil, err
	}
	menu, err := normalMenu(upper.Width(), upper.Height())
	if err != nil {
		return nil, err
	}
	if err := checkLower(lower); err != nil {
		return nil, err
	}

	w := &splitWindow{base: b.newBase()}
	w.self = w
	w.viewer, w.player = p.UUID(), p
	w.kind, w.layout, w.menu = KindNormal, LayoutSplit, menu
	w.panes = []pane{{gui: upper}, {gui: lower, offset: upper.Size()}}
	w.upper, w.lower = upper.Size(), lower.Size()

	b.applyModifiers(w)
	return w, nil
}

// MergedBuilder builds normal windows whose single Gui spans the container
// area and the viewer's own inventory. The viewer must be a Player.
type MergedBuilder struct {
	common[*MergedBuilder]
	singlePane[*MergedBuilder]
	playerViewer[*MergedBuilder]
}

func newMergedBuilder(m *Manager) *MergedBuilder {
	b := &MergedBuilder{}
	b.common = newCommon(m, b)
	b.singlePane.self = b
	b.playerViewer.self = b
	return b
}

func (b *MergedBuilder) Clone() *MergedBuilder {
	cp := &MergedBuilder{}
	cp.common = b.common.cloneFor(cp)
	cp.singlePane = singlePane[*MergedBuilder]{self: cp, src: b.src}
	cp.playerViewer = playerViewer[*MergedBuilder]{self: cp, player: b.player}
	return cp
}

func (b *MergedBuilder) Build() (Window, error) {
	p, err := b.viewer()
	if err != nil {
		return nil, err
	}
	g, err := b.src.resolve()
	if err != nil {
		return nil, err
	}
	upper, menu, err := mergedMenu(g)
	if err != nil {
		return nil, err
	}

	w := &mergedWindow{base: b.newBase()}
	w.self = w
	w.viewer, w.player = p.UUID(), p
	w.kind, w.layout, w.menu = KindNormal, LayoutMerged, menu
	w.panes = []pane{{gui: g}}
	w.upper, w.lower = upper, PlayerInventorySlots

	b.applyModifiers(w)
	return w, nil
}

// renameHandlers holds the rename handlers of the anvil builders.
type renameHandlers[S any] struct {
	self     S
	handlers []RenameHandler
}

// AddRenameHandler registers fn to receive the text typed by the viewer.
func (r *renameHandlers[S]) AddRenameHandler(fn RenameHandler) S {
	r.handlers = append(r.handlers, fn)
	return r.self
}

// SetRenameHandlers replaces the rename handlers.
func (r *renameHandlers[S]) SetRenameHandlers(fns []RenameHandler) S {
	r.handlers = append([]RenameHandler(nil), fns...)
	return r.self
}

// AnvilSingleBuilder builds anvil windows with one three-slot Gui.
type AnvilSingleBuilder struct {
	common[*AnvilSingleBuilder]
	singlePane[*AnvilSingleBuilder]
	playerViewer[*AnvilSingleBuilder]
	renameHandlers[*AnvilSingleBuilder]
}

func newAnvilSingleBuilder(m *Manager) *AnvilSingleBuilder {
	b := &AnvilSingleBuilder{}
	b.common = newCommon(m, b)
	b.singlePane.self = b
	b.playerViewer.self = b
	b.renameHandlers.self = b
	return b
}

func (b *AnvilSingleBuilder) Clone() *AnvilSingleBuilder {
	cp := &AnvilSingleBuilder{}
	cp.common = b.common.cloneFor(cp)
	cp.singlePane = singlePane[*AnvilSingleBuilder]{self: cp, src: b.src}
	cp.playerViewer = playerViewer[*AnvilSingleBuilder]{self: cp, player: b.player}
	cp.renameHandlers = renameHandlers[*AnvilSingleBuilder]{self: cp}
	cp.SetRenameHandlers(b.renameHandlers.handlers)
	return cp
}

func (b *AnvilSingleBuilder) Build() (AnvilWindow, error) {
	p, err := b.viewer()
	if err != nil {
		return nil, err
	}
	g, err := b.src.resolve()
	if err != nil {
		return nil, err
	}
	if err := checkAnvil(g); err != nil {
		return nil, err
	}

	w := newAnvilWindow(b.newBase(), b.renameHandlers.handlers)
	w.viewer, w.player = p.UUID(), p
	w.layout = LayoutSingle
	w.panes = []pane{{gui: g}}
	w.upper = anvilSlots

	b.applyModifiers(w)
	return w, nil
}

// AnvilSplitBuilder builds anvil windows with a three-slot upper Gui and a
// lower Gui over the viewer's own inventory.
type AnvilSplitBuilder struct {
	common[*AnvilSplitBuilder]
	doublePane[*AnvilSplitBuilder]
	playerViewer[*AnvilSplitBuilder]
	renameHandlers[*AnvilSplitBuilder]
}

func newAnvilSplitBuilder(m *Manager) *AnvilSplitBuilder {
	b := &AnvilSplitBuilder{}
	b.common = newCommon(m, b)
	b.doublePane.self = b
	b.playerViewer.self = b
	b.renameHandlers.self = b
	return b
}

func (b *AnvilSplitBuilder) Clone() *AnvilSplitBuilder {
	cp := &AnvilSplitBuilder{}
	cp.common = b.common.cloneFor(cp)
	cp.doublePane = doublePane[*AnvilSplitBuilder]{self: cp, upper: b.upper, lower: b.lower}
	cp.playerViewer = playerViewer[*AnvilSplitBuilder]{self: cp, player: b.player}
	cp.renameHandlers = renameHandlers[*AnvilSplitBuilder]{self: cp}
	cp.SetRenameHandlers(b.renameHandlers.handlers)
	return cp
}

func (b *AnvilSplitBuilder) Build() (AnvilWindow, error) {
	p, err := b.viewer()
	if err != nil {
		return nil, err
	}
	upper, lower, err := b.doublePane.resolve()
	if err != nil {
		return nil, err
	}
	if err := checkAnvil(upper); err != nil {
		return nil, err
	}
	if err := checkLower(lower); err != nil {
		return nil, err
	}

	w := newAnvilWindow(b.newBase(), b.renameHandlers.handlers)
	w.viewer, w.player = p.UUID(), p
	w.layout = LayoutSplit
	w.panes = []pane{{gui: upper}, {gui: lower, offset: anvilSlots}}
	w.upper, w.lower = anvilSlots, PlayerInventorySlots

	b.applyModifiers(w)
	return w, nil
}
