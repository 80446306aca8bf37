package task

import "testing"

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in    string
		want  Filter
		valid bool
	}{
		{"all", FilterAll, true},
		{"active", FilterActive, true},
		{"completed", FilterCompleted, true},
		{"", "", false},
		{"done", "", false},
		{"ALL", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, valid := ParseFilter(tt.in)
			if valid != tt.valid {
				t.Fatalf("ParseFilter(%q) valid = %v, want %v", tt.in, valid, tt.valid)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	tasks := []Task{
		{ID: "c", Text: "third", Done: true},
		{ID: "b", Text: "second"},
		{ID: "a", Text: "first", Done: true},
	}

	active := Apply(tasks, FilterActive)
	if len(active) != 1 || active[0].ID != "b" {
		t.Errorf("active = %+v, want only b", active)
	}

	completed := Apply(tasks, FilterCompleted)
	if len(completed) != 2 || completed[0].ID != "c" || completed[1].ID != "a" {
		t.Errorf("completed = %+v, want [c a]", completed)
	}

	all := Apply(tasks, FilterAll)
	if len(all) != 3 {
		t.Fatalf("all: got %d tasks, want 3", len(all))
	}
}

func TestApplyPartitionsCollection(t *testing.T) {
	tasks := []Task{
		{ID: "1"},
		{ID: "2", Done: true},
		{ID: "3"},
		{ID: "4", Done: true},
		{ID: "5", Done: true},
	}

	active := Apply(tasks, FilterActive)
	completed := Apply(tasks, FilterCompleted)

	seen := make(map[string]int)
	for _, t := range active {
		seen[t.ID]++
	}
	for _, t := range completed {
		seen[t.ID]++
	}

	if len(seen) != len(tasks) {
		t.Errorf("union has %d ids, want %d", len(seen), len(tasks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears in both partitions", id)
		}
	}
}

func TestRemaining(t *testing.T) {
	tasks := []Task{
		{ID: "1"},
		{ID: "2", Done: true},
		{ID: "3"},
	}
	if got := Remaining(tasks); got != 2 {
		t.Errorf("Remaining = %d, want 2", got)
	}
	if got := Remaining(nil); got != 0 {
		t.Errorf("Remaining(nil) = %d, want 0", got)
	}
}

func TestApplyReturnsCopy(t *testing.T) {
	tasks := []Task{{ID: "1", Text: "original"}}
	out := Apply(tasks, FilterAll)
	out[0].Text = "changed"
	if tasks[0].Text != "original" {
		t.Error("Apply(FilterAll) aliases the input slice")
	}
}
