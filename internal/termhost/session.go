package termhost

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/go-mclib/invui/pkg/gui"
	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/go-mclib/invui/pkg/item"
	"github.com/go-mclib/invui/pkg/title"
	"github.com/go-mclib/invui/pkg/window"
	"github.com/google/uuid"
)

const (
	// maxSlots is the largest inventory a single normal window can show.
	maxSlots = 54
	// maxStackCount is the largest stack size an item can be given.
	maxStackCount = 99
)

var (
	ErrUnknownViewer = errors.New("unknown viewer")
	ErrUnknownItem   = errors.New("unknown item")
)

// SessionConfig describes a shared inventory and the viewers looking at it.
type SessionConfig struct {
	Size       int
	Fill       []string // item names placed in slots 0..n
	Background string   // item shown in empty slots, may be empty
	Viewers    []string
	Title      string // legacy formatted
	Retain     bool
	Closeable  bool
	Logger     *log.Logger
}

// Validate checks that the configuration describes a usable session.
func (c SessionConfig) Validate() error {
	if c.Size <= 0 || c.Size > maxSlots {
		return fmt.Errorf("inventory size must be between 1 and %d, got %d", maxSlots, c.Size)
	}
	if len(c.Fill) > c.Size {
		return fmt.Errorf("%d fill items do not fit in %d slots", len(c.Fill), c.Size)
	}
	if len(c.Viewers) == 0 {
		return errors.New("at least one viewer is required")
	}
	seen := make(map[string]bool, len(c.Viewers))
	for _, v := range c.Viewers {
		if v == "" || seen[v] {
			return fmt.Errorf("viewer names must be unique and non-empty: %q", v)
		}
		seen[v] = true
	}
	return nil
}

// Session is one shared inventory shown to several terminal viewers, each
// through a window of their own.
type Session struct {
	Host      *Host
	Manager   *window.Manager
	Inventory *inventory.Inventory

	builder *window.SingleBuilder
	names   []string
	viewers map[string]uuid.UUID
	windows map[string]window.Window
	known   []string
	logger  *log.Logger
}

// NewSession builds the inventory and one window per viewer. Nothing is
// shown yet.
func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		Host:      NewHost(),
		Inventory: inventory.New(cfg.Size),
		names:     slices.Clone(cfg.Viewers),
		viewers:   make(map[string]uuid.UUID),
		windows:   make(map[string]window.Window),
		logger:    cfg.Logger,
	}

	for i, name := range cfg.Fill {
		st, err := s.parseItem(name, 1)
		if err != nil {
			return nil, err
		}
		if err := s.Inventory.Set(i, st); err != nil {
			return nil, err
		}
	}

	var background item.Provider
	if cfg.Background != "" {
		p, err := item.Named(normalizeItem(cfg.Background))
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		background = p
		s.remember(cfg.Background)
	}

	m, err := window.NewManager(window.Config{
		Host:      s.Host,
		Renderer:  Renderer{},
		Formatter: Formatter{},
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.Manager = m

	rows := (cfg.Size + 8) / 9
	s.builder = m.Single().
		SetTitle(title.Legacy(cfg.Title)).
		SetRetain(cfg.Retain).
		SetCloseable(cfg.Closeable).
		SetGuiBuilder(gui.NewBuilder(9, rows).Fill(s.Inventory, background))

	for _, name := range cfg.Viewers {
		id := uuid.New()
		s.viewers[name] = id
		s.Host.AddViewer(id, name)
		w, err := s.build(name)
		if err != nil {
			return nil, err
		}
		s.windows[name] = w
	}
	return s, nil
}

func (s *Session) build(name string) (window.Window, error) {
	id := s.viewers[name]
	return s.builder.Clone().
		SetViewer(id).
		AddCloseHandler(func() error {
			s.logf("%s closed their window", name)
			return nil
		}).
		Build()
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Viewers returns the viewer names in configuration order.
func (s *Session) Viewers() []string { return slices.Clone(s.names) }

// ViewerID returns the identity of the named viewer.
func (s *Session) ViewerID(name string) (uuid.UUID, bool) {
	id, ok := s.viewers[name]
	return id, ok
}

// Window returns the named viewer's current window.
func (s *Session) Window(name string) (window.Window, error) {
	w, ok := s.windows[name]
	if !ok {
		if sug, found := Suggest(name, s.names); found {
			return nil, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownViewer, name, sug)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownViewer, name)
	}
	return w, nil
}

// ShowAll shows every viewer's window.
func (s *Session) ShowAll() error {
	var errs []error
	for _, name := range s.names {
		if _, err := s.Exec(Command{Name: "show", Args: []string{name}}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close removes every window.
func (s *Session) Close() error {
	return s.Manager.RemoveAll()
}

// Render paints the named viewer's screen.
func (s *Session) Render(name string) string {
	return s.Host.Render(s.viewers[name])
}

// Exec runs a parsed command and returns a line describing the outcome.
// Commands handled by Model (view, quit) are rejected.
func (s *Session) Exec(c Command) (string, error) {
	switch c.Name {
	case "help":
		return HelpText(), nil

	case "show":
		w, err := s.Window(c.Args[0])
		if err != nil {
			return "", err
		}
		if w.IsRemoved() {
			if w, err = s.build(c.Args[0]); err != nil {
				return "", err
			}
			s.windows[c.Args[0]] = w
		}
		if err := w.Show(); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", c.Args[0], w.State()), nil

	case "close", "esc", "remove":
		w, err := s.Window(c.Args[0])
		if err != nil {
			return "", err
		}
		switch c.Name {
		case "close":
			err = w.Close()
		case "esc":
			err = w.HandleViewerClose()
		default:
			err = w.Remove()
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", c.Args[0], w.State()), nil

	case "set":
		slot, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return "", fmt.Errorf("slot: %w", err)
		}
		count := 1
		if len(c.Args) == 3 {
			if count, err = strconv.Atoi(c.Args[2]); err != nil || count <= 0 || count > maxStackCount {
				return "", fmt.Errorf("count must be between 1 and %d: %q", maxStackCount, c.Args[2])
			}
		}
		st, err := s.parseItem(c.Args[1], count)
		if err != nil {
			return "", err
		}
		if err := s.Inventory.Set(slot, st); err != nil {
			return "", err
		}
		return fmt.Sprintf("slot %d = %s x%d", slot, c.Args[1], count), nil

	case "clear":
		slot, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return "", fmt.Errorf("slot: %w", err)
		}
		if err := s.Inventory.Set(slot, nil); err != nil {
			return "", err
		}
		return fmt.Sprintf("slot %d cleared", slot), nil

	case "swap":
		a, errA := strconv.Atoi(c.Args[0])
		b, errB := strconv.Atoi(c.Args[1])
		if err := errors.Join(errA, errB); err != nil {
			return "", fmt.Errorf("slot: %w", err)
		}
		if err := s.Inventory.Swap(a, b); err != nil {
			return "", err
		}
		return fmt.Sprintf("swapped %d and %d", a, b), nil

	case "find":
		name := normalizeItem(c.Args[0])
		if items.ItemID(name) < 0 {
			return "", s.unknownItem(c.Args[0])
		}
		slot := s.Inventory.FindItemByName(name)
		if slot < 0 {
			return fmt.Sprintf("%s not found, first empty slot is %d", c.Args[0], s.Inventory.FirstEmpty()), nil
		}
		return fmt.Sprintf("%s is in slot %d", c.Args[0], slot), nil

	case "resize":
		size, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return "", fmt.Errorf("size: %w", err)
		}
		if err := s.Inventory.Resize(size); err != nil {
			return "", err
		}
		return fmt.Sprintf("inventory resized to %d", size), nil

	case "click":
		w, err := s.Window(c.Args[0])
		if err != nil {
			return "", err
		}
		slot, err := strconv.Atoi(c.Args[1])
		if err != nil {
			return "", fmt.Errorf("slot: %w", err)
		}
		click := item.Click{Viewer: s.viewers[c.Args[0]], Type: item.LeftClick}
		if len(c.Args) == 3 {
			if click.Result, err = s.parseItem(c.Args[2], 1); err != nil {
				return "", err
			}
		}
		if err := w.HandleClick(slot, click); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s clicked slot %d", c.Args[0], slot), nil

	case "title":
		w, err := s.Window(c.Args[0])
		if err != nil {
			return "", err
		}
		if err := w.ChangeTitle(title.Legacy(strings.Join(c.Args[1:], " "))); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: title changed", c.Args[0]), nil

	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, c.Name)
	}
}

// normalizeItem adds the minecraft: namespace when missing.
func normalizeItem(name string) string {
	name = strings.ToLower(name)
	if !strings.Contains(name, ":") {
		name = "minecraft:" + name
	}
	return name
}

func (s *Session) remember(name string) {
	short := strings.TrimPrefix(normalizeItem(name), "minecraft:")
	if !slices.Contains(s.known, short) {
		s.known = append(s.known, short)
	}
}

func (s *Session) parseItem(name string, count int) (*items.ItemStack, error) {
	if count < 1 || count > maxStackCount {
		return nil, fmt.Errorf("count %d out of range [1, %d]", count, maxStackCount)
	}
	id := items.ItemID(normalizeItem(name))
	if id < 0 {
		return nil, s.unknownItem(name)
	}
	s.remember(name)
	st := &items.ItemStack{ID: id}
	setCount(&st.Count, count)
	return st, nil
}

// setCount stores n, already checked against maxStackCount, into a stack
// count of any integer width.
func setCount[T ~int8 | ~int16 | ~int32 | ~int64 | ~int](dst *T, n int) { *dst = T(n) }

func (s *Session) unknownItem(name string) error {
	short := strings.TrimPrefix(normalizeItem(name), "minecraft:")
	if sug, found := Suggest(short, s.known); found {
		return fmt.Errorf("%w %q, did you mean %q?", ErrUnknownItem, name, sug)
	}
	return fmt.Errorf("%w %q", ErrUnknownItem, name)
}
