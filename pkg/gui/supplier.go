package gui

import (
	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/go-mclib/invui/pkg/item"
)

// Supplier produces SlotElements for Populate.
type Supplier interface {
	Next() (SlotElement, error)
}

// SupplierFunc adapts a function to a Supplier.
type SupplierFunc func() (SlotElement, error)

func (f SupplierFunc) Next() (SlotElement, error) { return f() }

// VISupplier hands out VISlotElements bound to consecutive slots of one
// inventory, wrapping back to slot 0 after the last one. A VISupplier is
// meant for a single population pass and is not safe for concurrent use.
type VISupplier struct {
	inv        *inventory.Inventory
	background item.Provider
	slot       int
}

// NewVISupplier creates a supplier whose first element is bound to slot 0.
// background may be nil.
func NewVISupplier(inv *inventory.Inventory, background item.Provider) *VISupplier {
	return &VISupplier{inv: inv, background: background, slot: -1}
}

// NextVI returns an element bound to the slot after the previous one.
func (s *VISupplier) NextVI() (*VISlotElement, error) {
	size := s.inv.Size()
	if size == 0 {
		return nil, ErrEmptyInventory
	}
	s.slot++
	// >= rather than == so a shrunk inventory still wraps
	if s.slot >= size {
		s.slot = 0
	}
	return NewVISlotElement(s.inv, s.slot, s.background), nil
}

func (s *VISupplier) Next() (SlotElement, error) {
	e, err := s.NextVI()
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Cursor returns the slot of the last element handed out, or -1.
func (s *VISupplier) Cursor() int { return s.slot }

// Reset makes the next element start at slot 0 again.
func (s *VISupplier) Reset() { s.slot = -1 }
