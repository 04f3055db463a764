package inventory

import "github.com/go-mclib/data/pkg/data/items"

// FindItem returns the first slot index containing the given item ID,
// or -1 if not found.
func (inv *Inventory) FindItem(itemID int32) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	for i, s := range inv.slots {
		if !s.IsEmpty() && s.ID == itemID {
			return i
		}
	}
	return -1
}

// FindItemByName returns the first slot index containing an item with
// the given name (e.g. "minecraft:diamond_sword"). Returns -1 if not found.
func (inv *Inventory) FindItemByName(name string) int {
	id := items.ItemID(name)
	if id < 0 {
		return -1
	}
	return inv.FindItem(id)
}

// FindItems returns all slot indices containing the given item ID.
func (inv *Inventory) FindItems(itemID int32) []int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	var result []int
	for i, s := range inv.slots {
		if !s.IsEmpty() && s.ID == itemID {
			result = append(result, i)
		}
	}
	return result
}

// FirstEmpty returns the index of the first empty slot, or -1 if full.
func (inv *Inventory) FirstEmpty() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	for i, s := range inv.slots {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}
