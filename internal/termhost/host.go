// Package termhost presents windows in a terminal. Host keeps what each
// viewer is looking at and paints it with lipgloss; Model is a bubbletea
// program that drives windows through typed commands.
package termhost

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-mclib/invui/pkg/window"
	"github.com/google/uuid"
)

const cellWidth = 8

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	closedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	emptyCellStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// screen is the state of one viewer's terminal window.
type screen struct {
	view  window.View
	title string
	cells map[int]Cell
	open  bool
}

// Host is a window.Host that keeps every viewer's screen in memory.
type Host struct {
	mu       sync.Mutex
	screens  map[uuid.UUID]*screen
	names    map[uuid.UUID]string
	order    []uuid.UUID
	onChange func(viewer uuid.UUID)
}

var _ window.Host = (*Host)(nil)

// NewHost creates an empty Host.
func NewHost() *Host {
	return &Host{
		screens: make(map[uuid.UUID]*screen),
		names:   make(map[uuid.UUID]string),
	}
}

// AddViewer registers a display name for viewer.
func (h *Host) AddViewer(viewer uuid.UUID, name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.names[viewer]; !ok {
		h.order = append(h.order, viewer)
	}
	h.names[viewer] = name
}

// Viewers returns the registered viewers in registration order.
func (h *Host) Viewers() []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.order)
}

// Name returns the display name of viewer, or its UUID.
func (h *Host) Name(viewer uuid.UUID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.nameLocked(viewer)
}

func (h *Host) nameLocked(viewer uuid.UUID) string {
	if n, ok := h.names[viewer]; ok {
		return n
	}
	return viewer.String()
}

// OnChange sets a callback invoked after any screen changes. It is called
// without the host lock held.
func (h *Host) OnChange(fn func(viewer uuid.UUID)) {
	h.mu.Lock()
	h.onChange = fn
	h.mu.Unlock()
}

func (h *Host) changed(viewer uuid.UUID) {
	h.mu.Lock()
	fn := h.onChange
	h.mu.Unlock()
	if fn != nil {
		fn(viewer)
	}
}

func (h *Host) Open(v window.View) error {
	h.mu.Lock()
	h.screens[v.Viewer] = &screen{
		view:  v,
		title: fmt.Sprint(v.Title),
		cells: make(map[int]Cell),
		open:  true,
	}
	h.mu.Unlock()
	h.changed(v.Viewer)
	return nil
}

func (h *Host) Close(viewer uuid.UUID) error {
	h.mu.Lock()
	s, ok := h.screens[viewer]
	if ok {
		s.open = false
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("termhost: no window open for %s", viewer)
	}
	h.changed(viewer)
	return nil
}

func (h *Host) SetTitle(viewer uuid.UUID, t any) error {
	h.mu.Lock()
	s, ok := h.screens[viewer]
	if ok {
		s.title = fmt.Sprint(t)
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("termhost: no window open for %s", viewer)
	}
	h.changed(viewer)
	return nil
}

func (h *Host) SetSlot(viewer uuid.UUID, slot int, rendered any) error {
	cell, ok := rendered.(Cell)
	if !ok {
		return fmt.Errorf("termhost: cannot display %T", rendered)
	}
	h.mu.Lock()
	s, ok := h.screens[viewer]
	if ok {
		s.cells[slot] = cell
	}
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("termhost: no window open for %s", viewer)
	}
	h.changed(viewer)
	return nil
}

// IsOpen reports whether viewer currently has a window open.
func (h *Host) IsOpen(viewer uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.screens[viewer]
	return ok && s.open
}

// Cell returns what viewer sees in slot.
func (h *Host) Cell(viewer uuid.UUID, slot int) (Cell, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.screens[viewer]
	if !ok || !s.open {
		return Cell{}, false
	}
	c, ok := s.cells[slot]
	return c, ok
}

// Title returns the formatted title viewer sees.
func (h *Host) Title(viewer uuid.UUID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.screens[viewer]; ok && s.open {
		return s.title
	}
	return ""
}

// Render paints viewer's screen.
func (h *Host) Render(viewer uuid.UUID) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := h.nameLocked(viewer)
	s, ok := h.screens[viewer]
	if !ok || !s.open {
		return frameStyle.Render(closedStyle.Render(name + ": no window open"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", s.title, indexStyle.Render("("+name+", "+s.view.Layout.String()+")"))
	b.WriteString(renderGrid(s.cells, 0, s.view.UpperSize, rowWidth(s.view)))
	if s.view.LowerSize > 0 {
		b.WriteString("\n")
		b.WriteString(indexStyle.Render(strings.Repeat("─", cellWidth*9)))
		b.WriteString("\n")
		b.WriteString(renderGrid(s.cells, s.view.UpperSize, s.view.LowerSize, 9))
	}
	return frameStyle.Render(b.String())
}

// rowWidth returns the number of columns of the upper area.
func rowWidth(v window.View) int {
	switch v.Menu {
	case window.MenuGeneric3x3, window.MenuAnvil:
		return 3
	case window.MenuHopper:
		return 5
	default:
		return 9
	}
}

func renderGrid(cells map[int]Cell, offset, size, width int) string {
	var rows []string
	for start := 0; start < size; start += width {
		var row []string
		for i := start; i < min(start+width, size); i++ {
			c := cells[offset+i]
			if c.Empty() {
				row = append(row, emptyCellStyle.Render(fmt.Sprintf("%d", offset+i)))
				continue
			}
			row = append(row, cellStyle.Render(c.Label(cellWidth-1)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
