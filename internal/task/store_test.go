package task

import (
	"errors"
	"testing"
	"time"

	"aitodo/internal/storage"
	"aitodo/internal/theme"
)

func TestAddTrimsAndRejectsEmpty(t *testing.T) {
	st := New(storage.NewMem())

	if _, ok := st.Add("  Buy milk  "); !ok {
		t.Fatal("Add rejected non-empty text")
	}
	if _, ok := st.Add("   "); ok {
		t.Error("Add accepted whitespace-only text")
	}
	if _, ok := st.Add(""); ok {
		t.Error("Add accepted empty text")
	}

	tasks := st.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Text != "Buy milk" {
		t.Errorf("text = %q, want trimmed %q", tasks[0].Text, "Buy milk")
	}
}

func TestAddPrependsNewestFirst(t *testing.T) {
	st := New(storage.NewMem())
	st.Add("first")
	st.Add("second")
	st.Add("third")

	tasks := st.Tasks()
	want := []string{"third", "second", "first"}
	for i, text := range want {
		if tasks[i].Text != text {
			t.Errorf("tasks[%d].Text = %q, want %q", i, tasks[i].Text, text)
		}
	}
}

func TestOrderStableUnderTogglesAndDeletes(t *testing.T) {
	st := New(storage.NewMem())
	x, _ := st.Add("x")
	a, _ := st.Add("a")
	b, _ := st.Add("b")

	st.Toggle(a.ID)
	st.Delete(b.ID)

	tasks := st.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != a.ID || tasks[1].ID != x.ID {
		t.Errorf("order = [%s %s], want [%s %s]", tasks[0].Text, tasks[1].Text, "a", "x")
	}
}

func TestToggleUnknownIDIsNoop(t *testing.T) {
	mem := storage.NewMem()
	st := New(mem)
	st.Add("keep")
	writes := mem.SetCalls

	st.Toggle("no-such-id")
	st.Delete("no-such-id")

	if len(st.Tasks()) != 1 || st.Tasks()[0].Done {
		t.Error("unknown id mutated the collection")
	}
	if mem.SetCalls != writes {
		t.Errorf("unknown id triggered %d extra writes", mem.SetCalls-writes)
	}
}

func TestRemainingIsFresh(t *testing.T) {
	st := New(storage.NewMem())
	one, _ := st.Add("one")
	st.Add("two")

	if got := st.Remaining(); got != 2 {
		t.Fatalf("Remaining = %d, want 2", got)
	}
	st.Toggle(one.ID)
	if got := st.Remaining(); got != 1 {
		t.Errorf("Remaining after toggle = %d, want 1", got)
	}
	st.Toggle(one.ID)
	if got := st.Remaining(); got != 2 {
		t.Errorf("Remaining after second toggle = %d, want 2", got)
	}
}

func TestClearCompleted(t *testing.T) {
	mem := storage.NewMem()
	st := New(mem)
	st.Add("keep")
	done, _ := st.Add("drop")
	st.Toggle(done.ID)

	st.ClearCompleted()

	st.SetFilter(FilterCompleted)
	if got := st.Filtered(); len(got) != 0 {
		t.Errorf("completed view after clear = %+v, want empty", got)
	}
	if len(st.Tasks()) != 1 || st.Tasks()[0].Text != "keep" {
		t.Errorf("tasks after clear = %+v, want only keep", st.Tasks())
	}

	// Clearing with nothing completed still writes (idempotent overwrite).
	writes := mem.SetCalls
	st.ClearCompleted()
	if mem.SetCalls != writes+1 {
		t.Errorf("empty clear wrote %d times, want 1", mem.SetCalls-writes)
	}
}

func TestSetFilterDoesNotPersist(t *testing.T) {
	mem := storage.NewMem()
	st := New(mem)
	st.Add("task")
	writes := mem.SetCalls

	st.SetFilter(FilterActive)
	st.SetFilter(FilterCompleted)
	st.SetFilter("bogus")

	if mem.SetCalls != writes {
		t.Errorf("SetFilter wrote %d times, want 0", mem.SetCalls-writes)
	}
	if st.Filter() != FilterCompleted {
		t.Errorf("filter = %q, want %q (invalid value ignored)", st.Filter(), FilterCompleted)
	}
}

func TestEveryMutationPersists(t *testing.T) {
	mem := storage.NewMem()
	st := New(mem)

	tk, _ := st.Add("one")
	st.Toggle(tk.ID)
	st.Delete(tk.ID)
	st.ClearCompleted()

	if mem.SetCalls != 4 {
		t.Errorf("got %d writes, want 4", mem.SetCalls)
	}
}

func TestRoundTrip(t *testing.T) {
	mem := storage.NewMem()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	st := New(mem, WithNow(func() time.Time { return now }))
	st.Add("first")
	second, _ := st.Add("second")
	st.Toggle(second.ID)

	reloaded := New(mem)
	before, after := st.Tasks(), reloaded.Tasks()
	if len(after) != len(before) {
		t.Fatalf("reloaded %d tasks, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("task %d changed across round-trip: %+v != %+v", i, before[i], after[i])
		}
	}
	if after[0].CreatedAt != now.UnixMilli() {
		t.Errorf("createdAt = %d, want %d", after[0].CreatedAt, now.UnixMilli())
	}
}

func TestRehydrateMalformedItems(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", "{not json"},
		{"object not array", `{"id": "x"}`},
		{"number array", "[1, 2, 3]"},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMem()
			if err := mem.Set(ItemsKey, tt.raw); err != nil {
				t.Fatal(err)
			}
			st := New(mem)
			if got := st.Tasks(); len(got) != 0 {
				t.Errorf("tasks = %+v, want empty", got)
			}
		})
	}
}

func TestRehydrateReadFailure(t *testing.T) {
	mem := storage.NewMem()
	mem.GetErr = errors.New("disk gone")
	st := New(mem, WithAmbient(func() theme.Theme { return theme.Dark }))
	if got := st.Tasks(); len(got) != 0 {
		t.Errorf("tasks = %+v, want empty", got)
	}
	if st.Theme() != theme.Dark {
		t.Errorf("theme = %q, want dark", st.Theme())
	}
}

func TestThemeInitialization(t *testing.T) {
	tests := []struct {
		name      string
		persisted string
		ambient   theme.Theme
		want      theme.Theme
	}{
		{"persisted light wins over ambient", "light", theme.Dark, theme.Light},
		{"persisted dark", "dark", theme.Light, theme.Dark},
		{"absent falls back to ambient dark", "", theme.Dark, theme.Dark},
		{"absent falls back to ambient light", "", theme.Light, theme.Light},
		{"invalid falls back to ambient", "solarized", theme.Light, theme.Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMem()
			if tt.persisted != "" {
				if err := mem.Set(ThemeKey, tt.persisted); err != nil {
					t.Fatal(err)
				}
			}
			st := New(mem, WithAmbient(func() theme.Theme { return tt.ambient }))
			if st.Theme() != tt.want {
				t.Errorf("theme = %q, want %q", st.Theme(), tt.want)
			}
		})
	}
}

func TestSetThemePersistsAndNotifies(t *testing.T) {
	mem := storage.NewMem()
	st := New(mem, WithAmbient(func() theme.Theme { return theme.Dark }))

	var notified theme.Theme
	st.OnThemeChange(func(t theme.Theme) { notified = t })

	st.SetTheme(theme.Light)
	if st.Theme() != theme.Light {
		t.Errorf("theme = %q, want light", st.Theme())
	}
	if notified != theme.Light {
		t.Errorf("callback got %q, want light", notified)
	}
	if raw, ok, _ := mem.Get(ThemeKey); !ok || raw != "light" {
		t.Errorf("persisted theme = %q (present=%v), want light", raw, ok)
	}

	st.ToggleTheme()
	if st.Theme() != theme.Dark || notified != theme.Dark {
		t.Errorf("after toggle: theme=%q notified=%q, want dark", st.Theme(), notified)
	}
}

func TestWriteFailureDegradesSilently(t *testing.T) {
	mem := storage.NewMem()
	mem.SetErr = errors.New("read-only filesystem")
	st := New(mem)

	tk, ok := st.Add("still works")
	if !ok {
		t.Fatal("Add failed on write error")
	}
	st.Toggle(tk.ID)

	tasks := st.Tasks()
	if len(tasks) != 1 || !tasks[0].Done {
		t.Errorf("in-memory effect lost on write failure: %+v", tasks)
	}
}

func TestLifecycleScenario(t *testing.T) {
	st := New(storage.NewMem())

	tk, ok := st.Add("Buy milk")
	if !ok {
		t.Fatal("Add failed")
	}
	if got := st.Tasks(); len(got) != 1 || got[0].Text != "Buy milk" || got[0].Done {
		t.Fatalf("after add: %+v", got)
	}
	if st.Remaining() != 1 {
		t.Fatalf("Remaining = %d, want 1", st.Remaining())
	}

	st.Toggle(tk.ID)
	if st.Remaining() != 0 {
		t.Errorf("Remaining after toggle = %d, want 0", st.Remaining())
	}
	st.SetFilter(FilterCompleted)
	if got := st.Filtered(); len(got) != 1 {
		t.Errorf("completed view has %d tasks, want 1", len(got))
	}

	st.Delete(tk.ID)
	if got := st.Tasks(); len(got) != 0 {
		t.Errorf("after delete: %+v, want empty", got)
	}
}

func TestIDsAreUnique(t *testing.T) {
	st := New(storage.NewMem())
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tk, _ := st.Add("task")
		if tk.ID == "" {
			t.Fatal("empty id")
		}
		if seen[tk.ID] {
			t.Fatalf("duplicate id %s", tk.ID)
		}
		seen[tk.ID] = true
	}
}
