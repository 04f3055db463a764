package title

import (
	"testing"

	ns "github.com/go-mclib/protocol/java_protocol/net_structures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripLegacy(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Chest", "Chest"},
		{"§6Shared §lChest", "Shared Chest"},
		{"§", ""},
		{"a§", "a"},
		{"§§x", "x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripLegacy(tt.in), "StripLegacy(%q)", tt.in)
	}
}

func TestSegments(t *testing.T) {
	got := Segments("plain§6gold §lbold§rreset")
	want := []Segment{
		{Text: "plain"},
		{Text: "gold ", Color: '6'},
		{Text: "bold", Color: '6', Bold: true},
		{Text: "reset"},
	}
	assert.Equal(t, want, got)

	// colour codes clear decorations
	got = Segments("§l§oa§cb")
	assert.Equal(t, []Segment{{Text: "a", Bold: true, Italic: true}, {Text: "b", Color: 'c'}}, got)
}

func TestPlainFormatter(t *testing.T) {
	var f Formatter = PlainFormatter{}

	tests := []struct {
		name string
		in   Title
		want string
	}{
		{"nil", nil, ""},
		{"plain", Plain("Backpack"), "Backpack"},
		{"legacy", Legacy("§aBackpack"), "Backpack"},
		{"rich", Rich{Component: ns.TextComponent{Text: "Backpack"}}, "Backpack"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
