package window

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-mclib/invui/pkg/gui"
)

type singleWindow struct {
	*base
}

// Gui returns the window's only Gui.
func (w *singleWindow) Gui() gui.Gui { return w.panes[0].gui }

type splitWindow struct {
	*base
}

// UpperGui returns the Gui shown in the container area.
func (w *splitWindow) UpperGui() gui.Gui { return w.panes[0].gui }

// LowerGui returns the Gui shown over the viewer's inventory.
func (w *splitWindow) LowerGui() gui.Gui { return w.panes[1].gui }

type mergedWindow struct {
	*base
}

func (w *mergedWindow) Gui() gui.Gui { return w.panes[0].gui }

// RenameHandler receives the text typed into an anvil.
type RenameHandler func(text string) error

type anvilWindow struct {
	*base

	renameMu sync.Mutex
	text     string
	onRename []RenameHandler
}

func newAnvilWindow(b *base, handlers []RenameHandler) *anvilWindow {
	w := &anvilWindow{base: b, onRename: append([]RenameHandler(nil), handlers...)}
	w.self = w
	w.kind, w.menu = KindAnvil, MenuAnvil
	return w
}

func (w *anvilWindow) RenameText() string {
	w.renameMu.Lock()
	defer w.renameMu.Unlock()
	return w.text
}

func (w *anvilWindow) HandleRename(text string) error {
	if w.State() != StateShown {
		return ErrNotShown
	}
	w.renameMu.Lock()
	w.text = text
	handlers := w.onRename
	w.renameMu.Unlock()

	var errs []error
	for i, h := range handlers {
		if err := callRename(h, text); err != nil {
			errs = append(errs, fmt.Errorf("rename handler %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func callRename(fn RenameHandler, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return fn(text)
}
