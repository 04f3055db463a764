// Package item describes what a Gui slot shows and how viewer clicks on it
// are delivered.
package item

import (
	"fmt"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/google/uuid"
)

// Provider yields the stack to display. A nil stack means an empty slot.
type Provider interface {
	Get() *items.ItemStack
}

// Stack is a Provider for a fixed stack.
type Stack struct {
	S *items.ItemStack
}

func (p Stack) Get() *items.ItemStack { return p.S }

// Func adapts a function to a Provider.
type Func func() *items.ItemStack

func (f Func) Get() *items.ItemStack { return f() }

// Named returns a Provider for a single item of the given registry name
// (e.g. "minecraft:gray_stained_glass_pane").
func Named(name string) (Provider, error) {
	id := items.ItemID(name)
	if id < 0 {
		return nil, fmt.Errorf("unknown item %q", name)
	}
	return Stack{S: &items.ItemStack{ID: id, Count: 1}}, nil
}

// MustNamed is like Named but panics on an unknown name.
func MustNamed(name string) Provider {
	p, err := Named(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Empty is a Provider for an empty slot.
var Empty Provider = Stack{}

// ClickType mirrors the container click modes a viewer can perform.
type ClickType int

const (
	LeftClick ClickType = iota
	RightClick
	ShiftClick
	DropClick
)

func (t ClickType) String() string {
	switch t {
	case LeftClick:
		return "left"
	case RightClick:
		return "right"
	case ShiftClick:
		return "shift"
	case DropClick:
		return "drop"
	default:
		return fmt.Sprintf("ClickType(%d)", int(t))
	}
}

// Click is a viewer interaction, already translated by the host.
// Result is the stack the host expects the clicked slot to hold afterwards
// (e.g. the cursor stack being placed, or nil when picking up).
type Click struct {
	Viewer uuid.UUID
	Type   ClickType
	Result *items.ItemStack
}
