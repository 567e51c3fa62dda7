// Package store persists processed document results as JSON files named
// after their document id. Container Apps replicas have ephemeral disks, so
// results are lost on restart and are not shared between replicas.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports a document id with no stored result.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidID reports an id that is not a canonical uuid.
	ErrInvalidID = errors.New("invalid document id")
)

// Entry describes one stored result.
type Entry struct {
	DocumentID string    `json:"document_id"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store is a directory of result files.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily by Ensure.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Ensure creates the storage directory if needed.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create storage directory %s: %w", s.dir, err)
	}
	return nil
}

// NewID returns a fresh document id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a canonical lowercase uuid. Ids become file
// names, so anything else is refused before touching the filesystem.
func ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes v as indented JSON under id and returns the file path.
func (s *Store) Save(id string, v any) (string, error) {
	if !ValidID(id) {
		return "", ErrInvalidID
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	path := s.path(id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Get returns the stored JSON for id.
func (s *Store) Get(id string) ([]byte, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}
	return data, nil
}

// List returns every stored result, newest first.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue // removed between ReadDir and Info
		}
		entries = append(entries, Entry{
			DocumentID: strings.TrimSuffix(name, ".json"),
			SizeBytes:  info.Size(),
			CreatedAt:  info.ModTime().UTC(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
