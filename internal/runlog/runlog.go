// Package runlog keeps a capped JSON history of hook runs.
//
// A log file is a JSON array of entries, oldest first. Every append loads the
// array, pushes the new entry through a Bounded queue and rewrites the file
// with a temp-file-and-rename so readers never see a half-written array.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMaxEntries is how many entries a log keeps when no limit is given.
const DefaultMaxEntries = 100

// Log is a capped JSON history file.
type Log struct {
	path  string
	limit int
}

// Open returns the log named name inside dir, creating dir (and parents) if
// needed. limit <= 0 selects DefaultMaxEntries.
func Open(dir, name string, limit int) (*Log, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	return &Log{path: filepath.Join(dir, name), limit: limit}, nil
}

// Path returns the log file location.
func (l *Log) Path() string { return l.path }

// Entries returns the stored entries as raw JSON values, oldest first.
// A missing, unreadable or corrupt file yields an empty slice.
func (l *Log) Entries() []json.RawMessage { return Read(l.path) }

// Read loads the log file at path without creating anything on disk.
// A missing, unreadable or corrupt file yields an empty slice.
func Read(path string) []json.RawMessage {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Append adds entry to the log, evicting the oldest entries beyond the cap.
func (l *Log) Append(entry any) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	q := NewBounded(l.limit)
	for _, e := range l.Entries() {
		q.Push(e)
	}
	q.Push(raw)

	data, err := json.MarshalIndent(q.Items(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode log: %w", err)
	}
	return writeFileAtomic(l.path, data, 0644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		if !ok {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp to final: %w", err)
	}

	ok = true
	return nil
}
