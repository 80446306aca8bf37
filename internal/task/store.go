package task

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"aitodo/internal/storage"
	"aitodo/internal/theme"
)

// Storage keys. ItemsKey holds the serialized task array, ThemeKey the
// theme preference string.
const (
	ItemsKey = "ai-todo-items-v1"
	ThemeKey = "ai-todo-theme"
)

// Store owns the ordered task collection and the theme preference for
// the lifetime of the session. It is the sole writer of its keys; every
// mutation overwrites the full persisted value.
//
// A persistence failure never surfaces to the caller: the in-memory
// effect completes and a warning is logged.
type Store struct {
	kv      storage.KV
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
	ambient func() theme.Theme

	tasks   []Task
	filter  Filter
	mode    theme.Theme
	onTheme func(theme.Theme)
}

// Option configures a Store at construction.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDFunc overrides id generation, for tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithAmbient overrides the ambient theme signal consulted when no
// valid theme is persisted.
func WithAmbient(fn func() theme.Theme) Option {
	return func(s *Store) {
		s.ambient = fn
	}
}

// New constructs a store and rehydrates it from kv. Malformed or absent
// persisted state falls back to safe defaults; New never fails.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		logger:  log.New(io.Discard),
		now:     time.Now,
		newID:   uuid.NewString,
		ambient: theme.Detect,
		filter:  FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	s.tasks = []Task{}
	raw, ok, err := s.kv.Get(ItemsKey)
	if err != nil {
		s.logger.Warn("read stored tasks", "key", ItemsKey, "err", err)
	} else if ok {
		var tasks []Task
		if uerr := json.Unmarshal([]byte(raw), &tasks); uerr != nil {
			s.logger.Debug("stored tasks are not a task array, starting empty", "key", ItemsKey, "err", uerr)
		} else if tasks != nil {
			s.tasks = tasks
		}
	}

	if raw, ok, err := s.kv.Get(ThemeKey); err == nil && ok {
		if t, valid := theme.Parse(raw); valid {
			s.mode = t
			return
		}
		s.logger.Debug("stored theme is invalid, using ambient preference", "value", raw)
	} else if err != nil {
		s.logger.Warn("read stored theme", "key", ThemeKey, "err", err)
	}
	s.mode = s.ambient()
}

// Add creates a task from text and prepends it to the collection
// (newest-first). Whitespace-only text is rejected without error.
// Returns the created task and whether anything was added.
func (s *Store) Add(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}
	t := Task{
		ID:        s.newID(),
		Text:      text,
		CreatedAt: s.now().UnixMilli(),
	}
	s.tasks = append([]Task{t}, s.tasks...)
	s.persistItems()
	return t, true
}

// Toggle flips the done flag of the task with the given id.
// Unknown ids are a silent no-op.
func (s *Store) Toggle(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Done = !s.tasks[i].Done
			s.persistItems()
			return
		}
	}
}

// Delete removes the task with the given id. Unknown ids are a silent no-op.
func (s *Store) Delete(id string) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persistItems()
			return
		}
	}
}

// ClearCompleted removes every done task. The write happens even when
// nothing was removed; it is an idempotent full overwrite.
func (s *Store) ClearCompleted() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.persistItems()
}

// SetFilter sets the transient display filter. Invalid values are
// ignored. No persistence.
func (s *Store) SetFilter(f Filter) {
	if _, ok := ParseFilter(string(f)); !ok {
		return
	}
	s.filter = f
}

// SetTheme sets and persists the theme, then notifies the presentation
// layer if a callback is registered.
func (s *Store) SetTheme(t theme.Theme) {
	if _, ok := theme.Parse(string(t)); !ok {
		return
	}
	s.mode = t
	if err := s.kv.Set(ThemeKey, string(t)); err != nil {
		s.logger.Warn("persist theme", "key", ThemeKey, "err", err)
	}
	if s.onTheme != nil {
		s.onTheme(t)
	}
}

// ToggleTheme flips between dark and light.
func (s *Store) ToggleTheme() {
	s.SetTheme(s.mode.Other())
}

// OnThemeChange registers a callback invoked after every theme change.
func (s *Store) OnThemeChange(fn func(theme.Theme)) {
	s.onTheme = fn
}

// Tasks returns a copy of the full collection, newest-first.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filtered returns the tasks matching the current filter, recomputed
// from current state on every call.
func (s *Store) Filtered() []Task {
	return Apply(s.tasks, s.filter)
}

// Remaining returns the count of tasks not yet done, recomputed on
// every call.
func (s *Store) Remaining() int {
	return Remaining(s.tasks)
}

// Filter returns the current display filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// Theme returns the current theme.
func (s *Store) Theme() theme.Theme {
	return s.mode
}

func (s *Store) persistItems() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.logger.Warn("marshal tasks", "err", err)
		return
	}
	if err := s.kv.Set(ItemsKey, string(data)); err != nil {
		s.logger.Warn("persist tasks", "key", ItemsKey, "err", err)
	}
}
