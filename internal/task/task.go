package task

import "time"

// Filter selects which subset of tasks is exposed for display.
// It never affects the underlying collection.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter returns the filter for s and whether s is valid.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(s) {
	case FilterAll:
		return FilterAll, true
	case FilterActive:
		return FilterActive, true
	case FilterCompleted:
		return FilterCompleted, true
	}
	return "", false
}

// Task is a single user-entered item. ID, Text, and CreatedAt are
// immutable after creation; only Done flips.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt int64  `json:"createdAt"` // milliseconds since epoch
}

// CreatedTime returns CreatedAt as a time.Time.
func (t Task) CreatedTime() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// Apply returns the ordered subsequence of tasks matching f,
// preserving the order of the input slice.
func Apply(tasks []Task, f Filter) []Task {
	if f == FilterAll {
		out := make([]Task, len(tasks))
		copy(out, tasks)
		return out
	}
	wantDone := f == FilterCompleted
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Done == wantDone {
			out = append(out, t)
		}
	}
	return out
}

// Remaining counts the tasks that are not done.
func Remaining(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Done {
			n++
		}
	}
	return n
}
