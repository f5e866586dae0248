package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tracery-dev/tracery/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Source implements ports.SchemaSource over a registry document on disk.
// JSON and YAML are supported, selected by file extension.
type Source struct {
	path string
}

// New creates a file-backed source for path.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the backing file path.
func (s *Source) Path() string {
	return s.path
}

// Fetch reads and decodes the registry document.
func (s *Source) Fetch(ctx context.Context) (*schema.Registry, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".json":
		reg := schema.NewRegistry()
		if err := json.Unmarshal(raw, reg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
		return reg, nil
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
		reg, err := schema.DecodeRegistry(doc)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.path, err)
		}
		return reg, nil
	default:
		return nil, fmt.Errorf("unsupported registry format %q (want .json, .yaml or .yml)", ext)
	}
}

// Watch implements ports.Watchable. The channel is signaled whenever the
// registry file is written, created, or renamed over.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start registry watcher: %w", err)
	}

	// Watch the directory rather than the file: editors and atomic
	// writers replace the file via rename, which drops a direct watch.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ch := make(chan struct{}, 1)
	base := filepath.Base(s.path)

	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(evt.Name) != base {
					continue
				}
				if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
					// A pending signal already covers this change.
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return ch, nil
}
