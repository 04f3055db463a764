package inventory

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/google/uuid"
)

// EventKind tells listeners what changed.
type EventKind int

const (
	SlotChanged EventKind = iota
	Resized
)

func (k EventKind) String() string {
	switch k {
	case SlotChanged:
		return "slot_changed"
	case Resized:
		return "resized"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to every listener of an Inventory after a mutation.
// Slot, Previous and Current are set for SlotChanged; OldSize and Size for Resized.
type Event struct {
	Inventory *Inventory
	Kind      EventKind

	Slot     int
	Previous *items.ItemStack
	Current  *items.ItemStack

	OldSize int
	Size    int
}

// Listener observes inventory mutations. A returned error (or a panic) is
// reported to the caller of the mutating method and does not stop the
// remaining listeners.
type Listener func(ev Event) error

// ListenerID identifies a registered listener for RemoveListener.
type ListenerID uint64

type listenerEntry struct {
	id ListenerID
	fn Listener
}

// Inventory is a fixed-size, shared, observable collection of item stacks.
// Stacks are stored by pointer and must not be mutated after being placed.
//
// Mutations are serialised and every listener registered before a mutation
// has seen it by the time the mutating call returns. Listeners may read the
// inventory but must not mutate it synchronously.
type Inventory struct {
	id uuid.UUID

	// held across a mutation and its notification pass
	notifyMu sync.Mutex

	mu        sync.RWMutex
	slots     []*items.ItemStack
	listeners []listenerEntry
	nextID    ListenerID
}

// New creates an empty inventory with the given number of slots.
// Panics on a negative size.
func New(size int) *Inventory {
	if size < 0 {
		panic(fmt.Sprintf("inventory: negative size %d", size))
	}
	return &Inventory{
		id:    uuid.New(),
		slots: make([]*items.ItemStack, size),
	}
}

// FromItems creates an inventory sized and filled from stacks.
func FromItems(stacks ...*items.ItemStack) *Inventory {
	inv := New(len(stacks))
	copy(inv.slots, stacks)
	return inv
}

// ID returns a random identifier assigned at creation. Listener errors carry it.
func (inv *Inventory) ID() uuid.UUID { return inv.id }

// Size returns the current number of slots.
func (inv *Inventory) Size() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.slots)
}

// Get returns the item at index, or nil if the slot is empty.
func (inv *Inventory) Get(index int) (*items.ItemStack, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	if index < 0 || index >= len(inv.slots) {
		return nil, &OutOfRangeError{Index: index, Size: len(inv.slots)}
	}
	return inv.slots[index], nil
}

// Items returns a copy of all slots.
func (inv *Inventory) Items() []*items.ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.slots)
}

// Set replaces the content of a slot and notifies all listeners.
// The returned error is either an *OutOfRangeError or the joined
// *ListenerError values of the listeners that failed.
func (inv *Inventory) Set(index int, item *items.ItemStack) error {
	inv.notifyMu.Lock()
	defer inv.notifyMu.Unlock()

	inv.mu.Lock()
	if index < 0 || index >= len(inv.slots) {
		size := len(inv.slots)
		inv.mu.Unlock()
		return &OutOfRangeError{Index: index, Size: size}
	}
	prev := inv.slots[index]
	inv.slots[index] = item
	listeners := slices.Clone(inv.listeners)
	inv.mu.Unlock()

	return notify(listeners, Event{
		Inventory: inv,
		Kind:      SlotChanged,
		Slot:      index,
		Previous:  prev,
		Current:   item,
	})
}

// Swap exchanges the contents of two slots, notifying one event per slot.
func (inv *Inventory) Swap(a, b int) error {
	inv.notifyMu.Lock()
	defer inv.notifyMu.Unlock()

	inv.mu.Lock()
	size := len(inv.slots)
	for _, idx := range []int{a, b} {
		if idx < 0 || idx >= size {
			inv.mu.Unlock()
			return &OutOfRangeError{Index: idx, Size: size}
		}
	}
	if a == b {
		inv.mu.Unlock()
		return nil
	}
	srcItem, dstItem := inv.slots[a], inv.slots[b]
	inv.slots[a], inv.slots[b] = dstItem, srcItem
	listeners := slices.Clone(inv.listeners)
	inv.mu.Unlock()

	return errors.Join(
		notify(listeners, Event{Inventory: inv, Kind: SlotChanged, Slot: a, Previous: srcItem, Current: dstItem}),
		notify(listeners, Event{Inventory: inv, Kind: SlotChanged, Slot: b, Previous: dstItem, Current: srcItem}),
	)
}

// Resize changes the number of slots. Content past the new size is dropped.
func (inv *Inventory) Resize(size int) error {
	if size < 0 {
		return fmt.Errorf("inventory: negative size %d", size)
	}

	inv.notifyMu.Lock()
	defer inv.notifyMu.Unlock()

	inv.mu.Lock()
	old := len(inv.slots)
	if old == size {
		inv.mu.Unlock()
		return nil
	}
	resized := make([]*items.ItemStack, size)
	copy(resized, inv.slots)
	inv.slots = resized
	listeners := slices.Clone(inv.listeners)
	inv.mu.Unlock()

	return notify(listeners, Event{Inventory: inv, Kind: Resized, OldSize: old, Size: size})
}

// AddListener registers fn. Listeners are called in registration order.
func (inv *Inventory) AddListener(fn Listener) ListenerID {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.nextID++
	inv.listeners = append(inv.listeners, listenerEntry{id: inv.nextID, fn: fn})
	return inv.nextID
}

// RemoveListener unregisters a listener. It reports whether it was registered.
func (inv *Inventory) RemoveListener(id ListenerID) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	for i, l := range inv.listeners {
		if l.id == id {
			inv.listeners = slices.Delete(inv.listeners, i, i+1)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered listeners.
func (inv *Inventory) ListenerCount() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.listeners)
}

func notify(listeners []listenerEntry, ev Event) error {
	var errs []error
	for _, l := range listeners {
		if err := callListener(l.fn, ev); err != nil {
			errs = append(errs, &ListenerError{Inventory: ev.Inventory.ID(), ID: l.id, Err: err})
		}
	}
	return errors.Join(errs...)
}

func callListener(fn Listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return fn(ev)
}
