package file

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tracery-dev/tracery/pkg/domain"
	"github.com/tracery-dev/tracery/pkg/schema"
)

// Store implements ports.CatalogueStore using the local filesystem.
// Catalogues are stored as JSON files in one directory per registry
// fingerprint, so snapshots never shadow each other.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".tracery/catalogues".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".tracery", "catalogues")
	}
	return &Store{BasePath: basePath}
}

// Type IDs carry characters that are not filesystem safe ("core::time::Duration"),
// so filenames are the escaped ID plus ".json".
func fileName(root schema.TypeID) string {
	return url.QueryEscape(string(root)) + ".json"
}

func (s *Store) path(fingerprint string, root schema.TypeID) string {
	return filepath.Join(s.BasePath, fingerprint, fileName(root))
}

// Save persists the catalogue to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, cat *domain.Catalogue) error {
	if cat.Fingerprint == "" {
		return fmt.Errorf("catalogue fingerprint cannot be empty")
	}

	dir := filepath.Join(s.BasePath, cat.Fingerprint)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure catalogue directory: %w", err)
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue: %w", err)
	}

	// Temp file lives in the same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Rename of an open file fails on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(cat.Fingerprint, cat.RootType)

	// On Windows, os.Rename fails if dest exists. Remove it first; a short
	// gone-before-replaced window beats serving a partial file.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing catalogue for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to catalogue: %w", err)
	}

	return nil
}

// Load retrieves the catalogue from its JSON file.
func (s *Store) Load(ctx context.Context, fingerprint string, root schema.TypeID) (*domain.Catalogue, error) {
	data, err := os.ReadFile(s.path(fingerprint, root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCatalogueNotFound
		}
		return nil, fmt.Errorf("failed to read catalogue file: %w", err)
	}

	var cat domain.Catalogue
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalogue: %w", err)
	}

	return &cat, nil
}

// Delete removes the catalogue file.
func (s *Store) Delete(ctx context.Context, fingerprint string, root schema.TypeID) error {
	err := os.Remove(s.path(fingerprint, root))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete catalogue file: %w", err)
	}
	return nil
}

// List returns the root types with a catalogue stored under the fingerprint.
func (s *Store) List(ctx context.Context, fingerprint string) ([]schema.TypeID, error) {
	entries, err := os.ReadDir(filepath.Join(s.BasePath, fingerprint))
	if err != nil {
		if os.IsNotExist(err) {
			return []schema.TypeID{}, nil
		}
		return nil, fmt.Errorf("failed to list catalogues: %w", err)
	}

	var roots []schema.TypeID
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		id, err := url.QueryUnescape(name)
		if err != nil {
			continue // Foreign file, not one of ours
		}
		roots = append(roots, schema.TypeID(id))
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	return roots, nil
}
