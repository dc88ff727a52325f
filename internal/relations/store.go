// Package relations persists source-to-target match tuples in an
// append-only, header-first CSV log. Every append is flushed and synced so
// a crash loses at most the in-flight row; an unterminated trailing line
// left by a prior crash is truncated on open.
package relations

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Header is the relation log's column layout. The key column comes first.
var Header = []string{"source_id", "target_id", "match_kind"}

// Store is an append-only CSV relation log. Not safe for concurrent use;
// the pipeline is the single writer.
type Store struct {
	path   string
	file   *os.File
	writer *csv.Writer
	keys   map[string]struct{}
	order  []string
}

// Open prepares the log at path for appending. Existing complete rows are
// indexed by their first column; a missing file is created with the header;
// unreadable content is treated as an empty key set.
func Open(path string, header []string) (*Store, error) {
	if len(header) == 0 {
		return nil, errors.New("relations: empty header")
	}
	if err := truncateIncomplete(path); err != nil {
		return nil, err
	}

	keys := make(map[string]struct{})
	var order []string
	var needHeader bool

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		needHeader = true
	case err != nil:
		return nil, fmt.Errorf("relations: read %s: %w", path, err)
	case len(bytes.TrimSpace(data)) == 0:
		needHeader = true
	default:
		reader := csv.NewReader(bytes.NewReader(data))
		reader.FieldsPerRecord = -1
		first := true
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				// Corrupt content is treated as empty; re-processing
				// already-resolved records beats refusing to run.
				keys = make(map[string]struct{})
				order = nil
				break
			}
			if first {
				first = false
				continue
			}
			if len(row) == 0 || row[0] == "" {
				continue
			}
			if _, dup := keys[row[0]]; !dup {
				keys[row[0]] = struct{}{}
				order = append(order, row[0])
			}
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("relations: open %s: %w", path, err)
	}
	store := &Store{
		path:   path,
		file:   file,
		writer: csv.NewWriter(file),
		keys:   keys,
		order:  order,
	}
	if needHeader {
		if err := store.writeRow(header); err != nil {
			file.Close()
			return nil, err
		}
	}
	return store, nil
}

// truncateIncomplete removes an unterminated trailing line left by a crash
// mid-write. If the file has no newline at all, the whole file goes.
func truncateIncomplete(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("relations: read %s: %w", path, err)
	}
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return nil
	}
	idx := bytes.LastIndexByte(data, '\n')
	if idx < 0 {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("relations: remove incomplete %s: %w", path, err)
		}
		return nil
	}
	if err := os.Truncate(path, int64(idx+1)); err != nil {
		return fmt.Errorf("relations: truncate %s: %w", path, err)
	}
	return nil
}

// Append writes one row, flushes, and syncs. The row's first column joins
// the key set.
func (s *Store) Append(row []string) error {
	if s == nil || s.file == nil {
		return errors.New("relations: store is closed")
	}
	if len(row) == 0 || row[0] == "" {
		return errors.New("relations: row needs a key in the first column")
	}
	if err := s.writeRow(row); err != nil {
		return err
	}
	if _, dup := s.keys[row[0]]; !dup {
		s.keys[row[0]] = struct{}{}
		s.order = append(s.order, row[0])
	}
	return nil
}

func (s *Store) writeRow(row []string) error {
	if err := s.writer.Write(row); err != nil {
		return fmt.Errorf("relations: write row: %w", err)
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return fmt.Errorf("relations: flush: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("relations: sync %s: %w", s.path, err)
	}
	return nil
}

// Has reports whether the key is already persisted.
func (s *Store) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Keys returns the persisted key set.
func (s *Store) Keys() map[string]struct{} {
	keys := make(map[string]struct{}, len(s.keys))
	for key := range s.keys {
		keys[key] = struct{}{}
	}
	return keys
}

// Count returns the number of distinct persisted keys.
func (s *Store) Count() int {
	return len(s.keys)
}

// Close releases the underlying file.
func (s *Store) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
