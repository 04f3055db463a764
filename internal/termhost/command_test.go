package termhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Command
	}{
		{"help", Command{Name: "help", Args: []string{}}},
		{"  set 4 diamond 3 ", Command{Name: "set", Args: []string{"4", "diamond", "3"}}},
		{"/show alice", Command{Name: "show", Args: []string{"alice"}}},
		{"OPEN bob", Command{Name: "show", Args: []string{"bob"}}},
		{"title alice §6Gold chest", Command{Name: "title", Args: []string{"alice", "§6Gold", "chest"}}},
		{"q", Command{Name: "quit", Args: []string{}}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = Parse("shw alice")
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), `did you mean "show"`)

	_, err = Parse("teleport alice")
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.NotContains(t, err.Error(), "did you mean")

	_, err = Parse("set 4")
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "set", ue.Def.Name)
	assert.Equal(t, "usage: set <slot> <item> [count]", err.Error())

	_, err = Parse("close alice bob")
	assert.ErrorAs(t, err, &ue)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"diamond", "dirt", "diorite", "stone"}

	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{"diamond", "diamond", true},
		{"diamnod", "diamond", true},
		{"dirtt", "dirt", true},
		{"stnoe", "stone", true},
		{"netherite", "", false},
	}
	for _, tt := range tests {
		got, ok := Suggest(tt.word, candidates)
		assert.Equal(t, tt.ok, ok, tt.word)
		assert.Equal(t, tt.want, got, tt.word)
	}
}

func TestHelpTextListsEveryCommand(t *testing.T) {
	help := HelpText()
	for _, def := range Commands {
		assert.Contains(t, help, def.Usage)
	}
}
