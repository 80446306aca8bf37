// Package storage provides durable key-value persistence for app state.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// KV is a string-valued key-value store. Writes replace the whole value
// for a key; there are no partial updates.
type KV interface {
	// Get returns the value stored under key and whether it was present.
	Get(key string) (string, bool, error)
	// Set replaces any prior value stored under key.
	Set(key, value string) error
}

// Dir is a KV backed by a directory, one file per key.
type Dir struct {
	path string
}

// NewDir opens (creating if needed) a directory-backed store at path.
func NewDir(path string) (*Dir, error) {
	if path == "" {
		return nil, fmt.Errorf("storage dir is empty")
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the backing directory.
func (d *Dir) Path() string {
	return d.path
}

func (d *Dir) keyPath(key string) string {
	return filepath.Join(d.path, key)
}

// Get reads the file for key. A missing file is not an error.
func (d *Dir) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(d.keyPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set overwrites the file for key with value.
func (d *Dir) Set(key, value string) error {
	if err := os.WriteFile(d.keyPath(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

// Mem is an in-memory KV used in tests and as a fallback when the
// data directory is unavailable. Failures can be injected via GetErr
// and SetErr. The zero value is usable.
type Mem struct {
	data map[string]string

	GetErr   error
	SetErr   error
	SetCalls int
}

// NewMem returns an empty in-memory store.
func NewMem() *Mem {
	return &Mem{data: make(map[string]string)}
}

// Get returns the stored value, or the injected error.
func (m *Mem) Get(key string) (string, bool, error) {
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set records the value and counts the call, or returns the injected error.
func (m *Mem) Set(key, value string) error {
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}
