package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/imyashkale/kmsdash/internal/logger"
	"gopkg.in/yaml.v2"
)

// ErrNotFound is returned when the product database file does not exist
var ErrNotFound = errors.New("product database not found")

// Loader reads the nested product database from disk. The parsed tree is
// cached until the file changes; a watcher invalidates the cache so edits to
// the database show up on the next request without a restart.
//
// The tree is handed out by reference and must be treated as read-only.
type Loader struct {
	path string

	mu     sync.RWMutex
	tree   interface{}
	loaded bool

	watcher *fsnotify.Watcher
}

// NewLoader creates a loader for the given database file. JSON and YAML
// files are supported, decided by extension.
func NewLoader(path string) *Loader {
	return &Loader{path: filepath.Clean(path)}
}

// Path returns the on-disk location of the database file.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the parsed database tree, reading and parsing the file only
// when no valid cached copy exists.
func (l *Loader) Load() (interface{}, error) {
	l.mu.RLock()
	if l.loaded {
		defer l.mu.RUnlock()
		return l.tree, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return l.tree, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read product database: %w", err)
	}

	var tree interface{}
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse product database: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse product database: %w", err)
		}
	}

	l.tree = tree
	l.loaded = true

	logger.WithField("path", l.path).Debug("Product database loaded")
	return l.tree, nil
}

// Invalidate drops the cached tree so the next Load rereads the file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tree = nil
	l.loaded = false
}

// Watch starts a filesystem watcher that invalidates the cache whenever the
// database file is written, replaced or removed. The parent directory is
// watched rather than the file itself so editors that replace the file by
// rename are still observed.
func (l *Loader) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create database watcher: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch database directory: %w", err)
	}
	l.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != l.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					logger.WithFields(map[string]interface{}{
						"path": event.Name,
						"op":   event.Op.String(),
					}).Debug("Product database changed on disk, cache invalidated")
					l.Invalidate()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.WithField("error", err.Error()).Warn("Product database watcher error")
			}
		}
	}()

	return nil
}

// Close stops the filesystem watcher if one was started.
func (l *Loader) Close() error {
	if l.watcher == nil {
		return nil
	}
	return l.watcher.Close()
}
