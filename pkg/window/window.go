// Package window binds Guis to a single viewer and drives the lifecycle of
// that binding. Windows are configured with builders obtained from a
// Manager:
//
//	w, err := m.Single().
//		SetViewer(id).
//		SetTitle(title.Plain("Backpack")).
//		SetGuiBuilder(gui.NewBuilder(9, 3).Fill(inv, nil)).
//		Build()
package window

import (
	"fmt"

	"github.com/go-mclib/invui/pkg/gui"
	"github.com/go-mclib/invui/pkg/item"
	"github.com/go-mclib/invui/pkg/title"
	"github.com/google/uuid"
)

// State is the lifecycle state of a Window.
type State int

const (
	StateUnshown State = iota
	StateShown
	StateClosed
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateUnshown:
		return "unshown"
	case StateShown:
		return "shown"
	case StateClosed:
		return "closed"
	case StateRemoved:
		return "removed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Kind is the container kind of a Window.
type Kind int

const (
	KindNormal Kind = iota
	KindAnvil
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindAnvil:
		return "anvil"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layout tells how a Window's Guis map onto the viewer's screen.
type Layout int

const (
	// LayoutSingle shows one Gui in the container area only.
	LayoutSingle Layout = iota
	// LayoutSplit shows an upper Gui in the container area and a lower Gui
	// over the viewer's own inventory.
	LayoutSplit
	// LayoutMerged shows one Gui spanning the container area and the
	// viewer's own inventory.
	LayoutMerged
)

func (l Layout) String() string {
	switch l {
	case LayoutSingle:
		return "single"
	case LayoutSplit:
		return "split"
	case LayoutMerged:
		return "merged"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// PlayerInventorySlots is the number of viewer inventory slots (27 main +
// 9 hotbar) appended below every container.
const PlayerInventorySlots = 36

// Player is a connected, interactive viewer.
type Player interface {
	UUID() uuid.UUID
	Name() string
	Online() bool
}

// CloseHandler runs when a Window is closed. Errors and panics are
// collected and returned from Close; they never stop later handlers.
type CloseHandler func() error

// HandlerID identifies a close handler added to a Window.
type HandlerID uint64

// Modifier is applied to every freshly built Window before Build returns.
type Modifier func(w Window)

// Window shows one or two Guis to exactly one viewer.
type Window interface {
	// Show presents the window. It is a no-op on a shown or removed window.
	Show() error
	// Close closes a shown window and runs the close handlers. A retained
	// window can be shown again, others become removed.
	Close() error
	// Remove permanently retires the window, closing it first if shown.
	Remove() error

	State() State
	IsRemoved() bool

	// IsCloseable reports whether the viewer may close the window; it does
	// not gate Close or Remove.
	IsCloseable() bool
	SetCloseable(closeable bool)

	// ChangeTitle updates the title of a shown window. It returns
	// ErrNotShown otherwise and leaves the title unchanged.
	ChangeTitle(t title.Title) error
	Title() title.Title

	ViewerUUID() uuid.UUID
	// Viewer returns the viewer if it was given as a Player.
	Viewer() Player
	// CurrentViewer returns the viewer while the window is shown.
	CurrentViewer() Player

	Kind() Kind
	Layout() Layout
	Guis() []gui.Gui

	SetCloseHandlers(handlers []CloseHandler)
	AddCloseHandler(h CloseHandler) HandlerID
	RemoveCloseHandler(id HandlerID) bool

	// HandleClick routes a click on a viewer slot to the Gui cell under it.
	HandleClick(slot int, c item.Click) error
	// HandleViewerClose is called by the host when the viewer closes the
	// window. Non-closeable windows are opened again.
	HandleViewerClose() error
}

// AnvilWindow is a Window whose upper Gui is the three anvil slots.
type AnvilWindow interface {
	Window
	// RenameText returns the last text typed by the viewer.
	RenameText() string
	// HandleRename is called by the host when the viewer edits the text.
	HandleRename(text string) error
}

// View describes what a Host has to open for a viewer. Slots
// [0, UpperSize) are the container area, [UpperSize, UpperSize+LowerSize)
// the viewer's own inventory.
type View struct {
	Viewer    uuid.UUID
	Kind      Kind
	Layout    Layout
	Menu      MenuType
	Title     any
	UpperSize int
	LowerSize int
}

// Host is the presentation side: it opens and paints windows for viewers.
type Host interface {
	Open(v View) error
	Close(viewer uuid.UUID) error
	SetTitle(viewer uuid.UUID, title any) error
	SetSlot(viewer uuid.UUID, slot int, rendered any) error
}

// Renderer turns an item provider into the host's item representation.
type Renderer interface {
	Render(p item.Provider) any
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(p item.Provider) any

func (f RendererFunc) Render(p item.Provider) any { return f(p) }

// StackRenderer renders to the provided *items.ItemStack.
type StackRenderer struct{}

func (StackRenderer) Render(p item.Provider) any { return p.Get() }
