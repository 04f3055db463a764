package termhost

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/invui/pkg/item"
	"github.com/go-mclib/invui/pkg/title"
)

// Cell is what a terminal slot shows.
type Cell struct {
	ID    int32
	Name  string // registry name without the minecraft: namespace
	Count int    // 0 for an empty slot
}

// Empty reports whether the cell shows nothing.
func (c Cell) Empty() bool { return c.Count <= 0 }

// Label returns a short text for a slot of the given width.
func (c Cell) Label(width int) string {
	if c.Empty() {
		return "·"
	}
	full := c.Name
	if full == "" {
		full = fmt.Sprintf("#%d", c.ID)
	}
	name := abbreviate(full, width)
	if c.Count > 1 {
		suffix := fmt.Sprintf("x%d", c.Count)
		if len(name)+len(suffix) > width {
			name = abbreviate(full, max(width-len(suffix), 1))
		}
		return name + suffix
	}
	return name
}

// abbreviate shortens snake_case item names to fit width, keeping the
// first letters of each word before truncating.
func abbreviate(name string, width int) string {
	if len(name) <= width {
		return name
	}
	words := strings.Split(name, "_")
	if len(words) > 1 {
		var b strings.Builder
		for i, w := range words {
			if i == len(words)-1 {
				b.WriteString(w)
			} else if w != "" {
				b.WriteByte(w[0])
			}
		}
		name = b.String()
	}
	if len(name) > width {
		name = name[:width]
	}
	return name
}

// Renderer renders item providers into Cells.
type Renderer struct{}

func (Renderer) Render(p item.Provider) any {
	if p == nil {
		return Cell{}
	}
	s := p.Get()
	if s.IsEmpty() {
		return Cell{}
	}
	return Cell{
		ID:    s.ID,
		Name:  strings.TrimPrefix(items.ItemName(s.ID), "minecraft:"),
		Count: int(s.Count),
	}
}

// legacyColors maps legacy colour codes to terminal colours.
var legacyColors = map[rune]lipgloss.Color{
	'0': "#000000",
	'1': "#0000AA",
	'2': "#00AA00",
	'3': "#00AAAA",
	'4': "#AA0000",
	'5': "#AA00AA",
	'6': "#FFAA00",
	'7': "#AAAAAA",
	'8': "#555555",
	'9': "#5555FF",
	'a': "#55FF55",
	'b': "#55FFFF",
	'c': "#FF5555",
	'd': "#FF55FF",
	'e': "#FFFF55",
	'f': "#FFFFFF",
}

// Formatter formats titles as lipgloss-styled strings.
type Formatter struct{}

func (Formatter) Format(t title.Title) (any, error) {
	switch v := t.(type) {
	case nil:
		return "", nil
	case title.Legacy:
		var b strings.Builder
		for _, seg := range title.Segments(v) {
			b.WriteString(segmentStyle(seg).Render(seg.Text))
		}
		return b.String(), nil
	case title.Rich:
		return lipgloss.NewStyle().Bold(true).Render(title.Text(v)), nil
	default:
		return title.Text(t), nil
	}
}

func segmentStyle(seg title.Segment) lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(seg.Bold).
		Italic(seg.Italic).
		Underline(seg.Underline).
		Strikethrough(seg.Strike)
	if c, ok := legacyColors[seg.Color]; ok {
		st = st.Foreground(c)
	}
	return st
}
