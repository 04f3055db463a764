package gui

import (
	"fmt"
	"slices"
	"sync"
	"weak"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/go-mclib/invui/pkg/item"
)

// SlotElement is the content of one Gui cell. The set of variants is closed:
// *ItemElement, *LinkElement and *VISlotElement. A nil SlotElement is an
// empty cell.
type SlotElement interface {
	slotElement()
}

// ClickHandler reacts to a click on an ItemElement. A non-nil Provider
// replaces what the element shows.
type ClickHandler func(c item.Click) (item.Provider, error)

// ItemElement shows a literal item and owns its click behaviour.
type ItemElement struct {
	mu       sync.RWMutex
	provider item.Provider
	onClick  ClickHandler
	watchers []watcher
	nextID   uint64
}

type watcher struct {
	id uint64
	fn func()
}

// NewItemElement creates an ItemElement. onClick may be nil.
func NewItemElement(p item.Provider, onClick ClickHandler) *ItemElement {
	if p == nil {
		p = item.Empty
	}
	return &ItemElement{provider: p, onClick: onClick}
}

// Provider returns the current provider.
func (e *ItemElement) Provider() item.Provider {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.provider
}

// SetProvider replaces the displayed item and notifies every observer, so
// each window showing the element redraws it.
func (e *ItemElement) SetProvider(p item.Provider) {
	if p == nil {
		p = item.Empty
	}
	e.mu.Lock()
	e.provider = p
	watchers := slices.Clone(e.watchers)
	e.mu.Unlock()

	for _, w := range watchers {
		w.fn()
	}
}

// Observe registers fn to be called after every SetProvider.
func (e *ItemElement) Observe(fn func()) (cancel func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.watchers = append(e.watchers, watcher{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.watchers = slices.DeleteFunc(e.watchers, func(w watcher) bool { return w.id == id })
	}
}

func (e *ItemElement) clone() *ItemElement {
	return NewItemElement(e.Provider(), e.onClick)
}

// LinkElement aliases the element at Slot of another Gui.
type LinkElement struct {
	Gui  Gui
	Slot int
}

// NewLinkElement creates a LinkElement.
func NewLinkElement(g Gui, slot int) *LinkElement {
	return &LinkElement{Gui: g, Slot: slot}
}

// VISlotElement shows one slot of an Inventory. It only holds a weak
// reference, so it never keeps the inventory alive.
type VISlotElement struct {
	inv        weak.Pointer[inventory.Inventory]
	Slot       int
	Background item.Provider
}

// NewVISlotElement binds slot of inv. background is shown while the slot is
// empty and may be nil.
func NewVISlotElement(inv *inventory.Inventory, slot int, background item.Provider) *VISlotElement {
	return &VISlotElement{inv: weak.Make(inv), Slot: slot, Background: background}
}

// Inventory returns the bound inventory, or nil once it has been collected.
func (e *VISlotElement) Inventory() *inventory.Inventory {
	return e.inv.Value()
}

// Valid reports whether the bound inventory is alive and the slot is in range.
func (e *VISlotElement) Valid() bool {
	inv := e.Inventory()
	return inv != nil && e.Slot >= 0 && e.Slot < inv.Size()
}

func (e *VISlotElement) background() item.Provider {
	if e.Background == nil {
		return item.Empty
	}
	return e.Background
}

func (*ItemElement) slotElement()   {}
func (*LinkElement) slotElement()   {}
func (*VISlotElement) slotElement() {}

// Resolve follows LinkElements from e to the element that holds the data.
// It returns that element and the last link followed (nil if e is not a link).
func Resolve(e SlotElement) (SlotElement, *LinkElement, error) {
	target, path, err := ResolvePath(e)
	var last *LinkElement
	if len(path) > 0 {
		last = path[len(path)-1]
	}
	return target, last, err
}

// ResolvePath is like Resolve but returns every link followed, in order.
// On error the path holds the links followed so far.
func ResolvePath(e SlotElement) (SlotElement, []*LinkElement, error) {
	var (
		path    []*LinkElement
		chain   []int
		visited map[linkKey]struct{}
	)
	for {
		link, ok := e.(*LinkElement)
		if !ok || link == nil {
			return e, path, nil
		}
		if link.Gui == nil {
			return nil, path, fmt.Errorf("link to slot %d has no gui", link.Slot)
		}
		key := linkKey{gui: link.Gui, slot: link.Slot}
		chain = append(chain, link.Slot)
		if _, seen := visited[key]; seen {
			return nil, path, &CyclicLinkError{Chain: chain}
		}
		if visited == nil {
			visited = make(map[linkKey]struct{})
		}
		visited[key] = struct{}{}

		next, err := link.Gui.SlotElement(link.Slot)
		if err != nil {
			return nil, path, err
		}
		path = append(path, link)
		e = next
	}
}

// Passes reports whether path goes through slot of g.
func Passes(path []*LinkElement, g Gui, slot int) bool {
	for _, l := range path {
		if l.Gui == g && l.Slot == slot {
			return true
		}
	}
	return false
}

type linkKey struct {
	gui  Gui
	slot int
}

// ItemProvider returns what e currently displays, resolving links and
// inventory lookups. An empty or out-of-range inventory slot shows the
// element's background.
func ItemProvider(e SlotElement) (item.Provider, error) {
	target, _, err := Resolve(e)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case nil:
		return item.Empty, nil
	case *ItemElement:
		return t.Provider(), nil
	case *VISlotElement:
		inv := t.Inventory()
		if inv == nil {
			return t.background(), nil
		}
		s, err := inv.Get(t.Slot)
		if err != nil || s.IsEmpty() {
			return t.background(), nil
		}
		return item.Stack{S: s}, nil
	case *LinkElement:
		// Resolve never returns a link
		return nil, fmt.Errorf("unresolved link to slot %d", t.Slot)
	default:
		panic(fmt.Sprintf("gui: unknown slot element %T", target))
	}
}

// ClickElement routes a click to the element that owns the data: an
// ItemElement's handler, or a Set on the bound inventory slot. If an
// ItemElement reached through links changes, every Gui cell on the link path
// is refreshed. changed reports whether e's own cell should be redrawn.
func ClickElement(e SlotElement, c item.Click) (changed bool, err error) {
	target, path, err := ResolvePath(e)
	if err != nil {
		return false, err
	}
	switch t := target.(type) {
	case nil:
		return false, nil
	case *ItemElement:
		if t.onClick == nil {
			return false, nil
		}
		p, err := t.onClick(c)
		if err != nil {
			return false, err
		}
		if p == nil {
			return false, nil
		}
		t.SetProvider(p)
		for _, l := range path {
			l.Gui.Refresh(l.Slot)
		}
		return true, nil
	case *VISlotElement:
		inv := t.Inventory()
		if inv == nil {
			return false, ErrInventoryGone
		}
		// inventory listeners redraw every bound cell, including this one
		return false, inv.Set(t.Slot, c.Result)
	default:
		panic(fmt.Sprintf("gui: unknown slot element %T", target))
	}
}

// Stack is a shortcut for ItemProvider(e).Get().
func Stack(e SlotElement) (*items.ItemStack, error) {
	p, err := ItemProvider(e)
	if err != nil {
		return nil, err
	}
	return p.Get(), nil
}

func copyElement(e SlotElement) SlotElement {
	if ie, ok := e.(*ItemElement); ok {
		return ie.clone()
	}
	return e
}
