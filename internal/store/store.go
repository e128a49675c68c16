// Package store persists user data as flat JSON documents on local disk.
//
// One JSON file per logical entity, addressed by username-derived file name:
//
//	users.json                   map of username -> account
//	<username>_history.json      study history (capped list)
//	<username>_activity.json     activity totals + capped list
//	<username>_chat.json         chat log (capped list)
//	<username>_documents.json    selected document names
//
// Go Pattern: Like a database package, the Store struct owns the connection
// (here: a directory) and exposes methods per entity. A missing file is not
// an error — it means "no data yet" and reads return empty collections.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Store reads and writes the JSON documents under a single data directory.
// A single mutex serializes file access; reads vastly outnumber writes but
// whole-file rewrites are cheap at these sizes, so one lock keeps it simple.
type Store struct {
	dir string
	mu  sync.Mutex
}

// validUsername guards the filesystem: usernames become file names, so they
// must not carry path separators or dots.
var validUsername = regexp.MustCompile(`^[a-zA-Z0-9_-]{2,32}$`)

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// HealthCheck verifies the data directory is still writable.
func (s *Store) HealthCheck() error {
	f, err := os.CreateTemp(s.dir, ".healthcheck-*")
	if err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// ValidUsername reports whether name is safe to use as a file-name component.
func ValidUsername(name string) bool {
	return validUsername.MatchString(name)
}

// path builds the absolute path for a document file.
func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readJSON loads a JSON document into v. A missing file leaves v untouched
// and returns nil — "no data yet" is not an error.
func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// writeJSON atomically replaces a JSON document: write to a temp file in the
// same directory, then rename. A crash mid-write never corrupts the document.
func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
