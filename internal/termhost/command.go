package termhost

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownCommand is returned by Parse for input that names no command.
var ErrUnknownCommand = errors.New("unknown command")

// CommandDef describes one command accepted by the terminal.
type CommandDef struct {
	Name    string
	Aliases []string
	Usage   string
	MinArgs int
	MaxArgs int // -1 for unbounded
}

// Command is a parsed input line.
type Command struct {
	Name string
	Args []string
}

// Commands are the commands understood by Model.
var Commands = []CommandDef{
	{Name: "help", Aliases: []string{"h", "?"}, Usage: "help"},
	{Name: "show", Aliases: []string{"open"}, Usage: "show <viewer>", MinArgs: 1, MaxArgs: 1},
	{Name: "close", Usage: "close <viewer>", MinArgs: 1, MaxArgs: 1},
	{Name: "esc", Usage: "esc <viewer>  (viewer presses escape)", MinArgs: 1, MaxArgs: 1},
	{Name: "remove", Aliases: []string{"rm"}, Usage: "remove <viewer>", MinArgs: 1, MaxArgs: 1},
	{Name: "set", Usage: "set <slot> <item> [count]", MinArgs: 2, MaxArgs: 3},
	{Name: "clear", Usage: "clear <slot>", MinArgs: 1, MaxArgs: 1},
	{Name: "swap", Usage: "swap <slot> <slot>", MinArgs: 2, MaxArgs: 2},
	{Name: "find", Usage: "find <item>", MinArgs: 1, MaxArgs: 1},
	{Name: "resize", Usage: "resize <size>", MinArgs: 1, MaxArgs: 1},
	{Name: "click", Usage: "click <viewer> <slot> [item]", MinArgs: 2, MaxArgs: 3},
	{Name: "title", Usage: "title <viewer> <text...>", MinArgs: 2, MaxArgs: -1},
	{Name: "view", Aliases: []string{"tab"}, Usage: "view <viewer>", MinArgs: 1, MaxArgs: 1},
	{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit"},
}

// UsageError reports a known command used with the wrong arguments.
type UsageError struct {
	Def CommandDef
}

func (e *UsageError) Error() string { return "usage: " + e.Def.Usage }

// Parse splits line into a command and its arguments. Unknown commands
// get a "did you mean" hint when a close match exists.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	args := fields[1:]

	def, ok := lookup(name)
	if !ok {
		if s, found := Suggest(name, commandWords()); found {
			return Command{}, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownCommand, name, s)
		}
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if len(args) < def.MinArgs || (def.MaxArgs >= 0 && len(args) > def.MaxArgs) {
		return Command{}, &UsageError{Def: def}
	}
	return Command{Name: def.Name, Args: args}, nil
}

func lookup(name string) (CommandDef, bool) {
	for _, def := range Commands {
		if def.Name == name {
			return def, true
		}
		for _, a := range def.Aliases {
			if a == name {
				return def, true
			}
		}
	}
	return CommandDef{}, false
}

func commandWords() []string {
	words := make([]string, 0, len(Commands))
	for _, def := range Commands {
		words = append(words, def.Name)
	}
	return words
}

// levenshteinLimit is the largest edit distance accepted for a word of the
// given length.
func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Suggest returns the candidate closest to word, if any is close enough.
// Ties go to the alphabetically first candidate.
func Suggest(word string, candidates []string) (string, bool) {
	type scored struct {
		val  string
		dist int
	}
	var results []scored
	for _, cand := range candidates {
		if cand == word {
			return cand, true
		}
		dist := levenshtein.ComputeDistance(word, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		results = append(results, scored{val: cand, dist: dist})
	}
	if len(results) == 0 {
		return "", false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})
	return results[0].val, true
}

// HelpText lists every command's usage.
func HelpText() string {
	lines := make([]string, 0, len(Commands))
	for _, def := range Commands {
		lines = append(lines, "  "+def.Usage)
	}
	return "commands:\n" + strings.Join(lines, "\n")
}
