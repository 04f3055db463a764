package window

import (
	"fmt"

	"github.com/go-mclib/invui/pkg/gui"
)

// MenuType is the container menu a host opens, as in the minecraft:menu registry.
type MenuType int32

const (
	MenuGeneric9x1 MenuType = 0
	MenuGeneric9x2 MenuType = 1
	MenuGeneric9x3 MenuType = 2 // single chest, barrel
	MenuGeneric9x4 MenuType = 3
	MenuGeneric9x5 MenuType = 4
	MenuGeneric9x6 MenuType = 5 // double chest
	MenuGeneric3x3 MenuType = 6 // dispenser, dropper
	MenuAnvil      MenuType = 8
	MenuHopper     MenuType = 16
)

const anvilSlots = 3

// normalMenu picks the generic menu able to show an upper area of w x h.
func normalMenu(w, h int) (MenuType, error) {
	switch {
	case w == 9 && h >= 1 && h <= 6:
		return MenuGeneric9x1 + MenuType(h-1), nil
	case w == 3 && h == 3:
		return MenuGeneric3x3, nil
	case w == 5 && h == 1:
		return MenuHopper, nil
	default:
		return 0, fmt.Errorf("%w: no container is %dx%d", ErrGuiSize, w, h)
	}
}

// mergedMenu picks the menu for a Gui spanning container and viewer inventory.
func mergedMenu(g gui.Gui) (upper int, menu MenuType, err error) {
	upper = g.Size() - PlayerInventorySlots
	if g.Width() != 9 || upper <= 0 {
		return 0, 0, fmt.Errorf("%w: merged gui is %dx%d", ErrGuiSize, g.Width(), g.Height())
	}
	menu, err = normalMenu(9, upper/9)
	return upper, menu, err
}

func checkLower(g gui.Gui) error {
	if g.Size() != PlayerInventorySlots {
		return fmt.Errorf("%w: lower gui has %d slots, want %d", ErrGuiSize, g.Size(), PlayerInventorySlots)
	}
	return nil
}

func checkAnvil(g gui.Gui) error {
	if g.Size() != anvilSlots {
		return fmt.Errorf("%w: anvil gui has %d slots, want %d", ErrGuiSize, g.Size(), anvilSlots)
	}
	return nil
}
