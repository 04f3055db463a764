// Package gui holds viewer-independent slot layouts and the elements they
// are made of.
package gui

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/go-mclib/invui/pkg/item"
)

// Gui is a grid of SlotElements that one or more Windows display.
type Gui interface {
	Width() int
	Height() int
	Size() int

	// SlotElement returns the element at index (nil for an empty cell).
	SlotElement(index int) (SlotElement, error)
	// SetSlotElement replaces the element at index and refreshes it.
	SetSlotElement(index int, e SlotElement) error
	// Populate fills every empty cell, in index order, from s.
	Populate(s Supplier) error
	// Refresh tells observers that the cell at index must be redrawn.
	Refresh(index int)
	// Observe registers fn to be called on every Refresh.
	Observe(fn func(index int)) (cancel func())
	// Click routes a viewer click to the element at index.
	Click(index int, c item.Click) error
}

type observer struct {
	id uint64
	fn func(index int)
}

// Grid is the standard Gui: width*height cells addressed row by row.
type Grid struct {
	width, height int

	mu        sync.RWMutex
	elements  []SlotElement
	observers []observer
	nextID    uint64
}

// NewGrid creates an empty Grid. Panics on non-positive dimensions.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("gui: invalid dimensions %dx%d", width, height))
	}
	return &Grid{
		width:    width,
		height:   height,
		elements: make([]SlotElement, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Size() int   { return g.width * g.height }

// Index converts grid coordinates to a slot index.
func (g *Grid) Index(x, y int) int { return y*g.width + x }

func (g *Grid) SlotElement(index int) (SlotElement, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if index < 0 || index >= len(g.elements) {
		return nil, &inventory.OutOfRangeError{Index: index, Size: len(g.elements)}
	}
	return g.elements[index], nil
}

func (g *Grid) SetSlotElement(index int, e SlotElement) error {
	g.mu.Lock()
	if index < 0 || index >= len(g.elements) {
		g.mu.Unlock()
		return &inventory.OutOfRangeError{Index: index, Size: len(g.elements)}
	}
	g.elements[index] = e
	g.mu.Unlock()

	g.Refresh(index)
	return nil
}

// SetItem places an ItemElement at index.
func (g *Grid) SetItem(index int, p item.Provider, onClick ClickHandler) error {
	return g.SetSlotElement(index, NewItemElement(p, onClick))
}

// Elements returns a copy of all cells.
func (g *Grid) Elements() []SlotElement {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.elements)
}

func (g *Grid) Populate(s Supplier) error {
	g.mu.RLock()
	var empty []int
	for i, e := range g.elements {
		if e == nil {
			empty = append(empty, i)
		}
	}
	g.mu.RUnlock()
	return g.PopulateSlots(s, empty...)
}

// PopulateSlots assigns the next element of s to each of the given indices.
func (g *Grid) PopulateSlots(s Supplier, indices ...int) error {
	for _, idx := range indices {
		e, err := s.Next()
		if err != nil {
			return fmt.Errorf("populate slot %d: %w", idx, err)
		}
		if err := g.SetSlotElement(idx, e); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) Refresh(index int) {
	g.mu.RLock()
	observers := slices.Clone(g.observers)
	g.mu.RUnlock()
	for _, o := range observers {
		o.fn(index)
	}
}

func (g *Grid) Observe(fn func(index int)) (cancel func()) {
	g.mu.Lock()
	g.nextID++
	id := g.nextID
	g.observers = append(g.observers, observer{id: id, fn: fn})
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.observers = slices.DeleteFunc(g.observers, func(o observer) bool { return o.id == id })
	}
}

func (g *Grid) Click(index int, c item.Click) error {
	e, err := g.SlotElement(index)
	if err != nil {
		return err
	}
	changed, err := ClickElement(e, c)
	if changed {
		g.Refresh(index)
	}
	return err
}

// BoundInventories returns the distinct inventories referenced by the
// VISlotElements displayed by g (directly or through links), in slot order.
func BoundInventories(g Gui) []*inventory.Inventory {
	var out []*inventory.Inventory
	for i := range g.Size() {
		e, err := g.SlotElement(i)
		if err != nil {
			continue
		}
		target, _, err := Resolve(e)
		if err != nil {
			continue
		}
		vi, ok := target.(*VISlotElement)
		if !ok {
			continue
		}
		if inv := vi.Inventory(); inv != nil && !slices.Contains(out, inv) {
			out = append(out, inv)
		}
	}
	return out
}
