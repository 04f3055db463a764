// Package title holds the three forms a window title can take and the
// formatter contract that turns them into something a host can display.
package title

import (
	"strings"

	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
)

// Title is one of Rich, Legacy or Plain.
type Title interface {
	title()
}

// Rich is a structured chat component title.
type Rich struct {
	Component ns.TextComponent
}

// Legacy is a title using '§' formatting codes (e.g. "§6Shared §lChest").
type Legacy string

// Plain is an unformatted title.
type Plain string

func (Rich) title()   {}
func (Legacy) title() {}
func (Plain) title()  {}

// Text returns the unformatted text of t.
func Text(t Title) string {
	switch v := t.(type) {
	case nil:
		return ""
	case Rich:
		return v.Component.String()
	case Legacy:
		return StripLegacy(string(v))
	case Plain:
		return string(v)
	default:
		return ""
	}
}

// Formatter converts a Title into the host's native title handle.
type Formatter interface {
	Format(t Title) (any, error)
}

// FormatterFunc adapts a function to a Formatter.
type FormatterFunc func(t Title) (any, error)

func (f FormatterFunc) Format(t Title) (any, error) { return f(t) }

// PlainFormatter formats every title as its unformatted string.
type PlainFormatter struct{}

func (PlainFormatter) Format(t Title) (any, error) { return Text(t), nil }

const legacyPrefix = '§'

// StripLegacy removes '§x' formatting codes.
func StripLegacy(s string) string {
	if !strings.ContainsRune(s, legacyPrefix) {
		return s
	}
	var b strings.Builder
	skip := false
	for _, r := range s {
		switch {
		case skip:
			skip = false
		case r == legacyPrefix:
			skip = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Segment is a run of legacy-formatted text sharing one style.
// Color is the legacy colour code ('0'-'9', 'a'-'f') or 0 for the default.
type Segment struct {
	Text      string
	Color     rune
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
}

// Segments splits a legacy string into styled runs. Colour codes and '§r'
// reset the decorations, as in the vanilla client.
func Segments(s Legacy) []Segment {
	var (
		out  []Segment
		cur  Segment
		text strings.Builder
		code bool
	)
	flush := func() {
		if text.Len() > 0 {
			cur.Text = text.String()
			out = append(out, cur)
			text.Reset()
		}
	}
	for _, r := range string(s) {
		if !code {
			if r == legacyPrefix {
				code = true
			} else {
				text.WriteRune(r)
			}
			continue
		}
		code = false
		r = toLower(r)
		flush()
		switch {
		case (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'):
			cur = Segment{Color: r}
		case r == 'l':
			cur.Bold = true
		case r == 'o':
			cur.Italic = true
		case r == 'n':
			cur.Underline = true
		case r == 'm':
			cur.Strike = true
		case r == 'r':
			cur = Segment{}
		}
	}
	flush()
	return out
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
