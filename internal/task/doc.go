// Package task owns the ordered task collection and its persistence.
//
// The Store is the single owner of application state: the task list
// (kept newest-first), the persisted theme preference, and the
// transient display filter. Every mutation serializes the full
// collection back to the key-value store; rehydration happens once at
// construction. Derived views (Filtered, Remaining) are pure functions
// of the current state and are recomputed on every call.
//
// The persisted layout matches the original web build of the app so a
// data directory survives the rewrite unchanged:
//
//	ai-todo-items-v1  JSON array of {id, text, done, createdAt}
//	ai-todo-theme     "dark" or "light"
package task
