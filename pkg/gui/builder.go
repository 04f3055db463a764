package gui

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/go-mclib/invui/pkg/item"
)

type inventoryFill struct {
	inv        *inventory.Inventory
	background item.Provider
	all        bool // every cell still empty, otherwise only slots
	slots      []int
}

// Builder produces a fresh Grid on every Build. ItemElements placed on the
// builder are copied per build, so built Guis never share click state;
// inventory fills get a new VISupplier per build.
type Builder struct {
	width, height int
	elements      map[int]SlotElement
	fills         []inventoryFill
}

// NewBuilder creates a Builder for width*height Grids.
func NewBuilder(width, height int) *Builder {
	return &Builder{width: width, height: height, elements: make(map[int]SlotElement)}
}

// SetSlotElement places e at index in every built Gui.
func (b *Builder) SetSlotElement(index int, e SlotElement) *Builder {
	b.elements[index] = e
	return b
}

// SetItem places an ItemElement at index.
func (b *Builder) SetItem(index int, p item.Provider, onClick ClickHandler) *Builder {
	return b.SetSlotElement(index, NewItemElement(p, onClick))
}

// Fill binds every cell still empty after the explicit elements to inv,
// slot after slot.
func (b *Builder) Fill(inv *inventory.Inventory, background item.Provider) *Builder {
	b.fills = append(b.fills, inventoryFill{inv: inv, background: background, all: true})
	return b
}

// FillSlots binds the given cells to inv, slot after slot. Without slots it
// binds nothing.
func (b *Builder) FillSlots(inv *inventory.Inventory, background item.Provider, slots ...int) *Builder {
	b.fills = append(b.fills, inventoryFill{inv: inv, background: background, slots: slices.Clone(slots)})
	return b
}

// Clone returns an independent copy of b.
func (b *Builder) Clone() *Builder {
	return &Builder{
		width:    b.width,
		height:   b.height,
		elements: maps.Clone(b.elements),
		fills:    slices.Clone(b.fills),
	}
}

// Build creates a new Grid.
func (b *Builder) Build() (Gui, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("gui: invalid dimensions %dx%d", b.width, b.height)
	}
	g := NewGrid(b.width, b.height)
	for idx, e := range b.elements {
		if err := g.SetSlotElement(idx, copyElement(e)); err != nil {
			return nil, err
		}
	}
	for _, f := range b.fills {
		s := NewVISupplier(f.inv, f.background)
		var err error
		if f.all {
			err = g.Populate(s)
		} else {
			err = g.PopulateSlots(s, f.slots...)
		}
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}
