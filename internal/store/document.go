package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mo-amir99/premium-video-server/pkg/metrics"
)

// Document is a JSON file holding one whole collection. Every access goes
// through the mutex, so read-modify-write cycles on the same document never
// interleave within the process.
type Document[T any] struct {
	path   string
	empty  func() T
	logger *slog.Logger
	mu     sync.Mutex
}

// NewDocument prepares the document at path, writing empty() if the file is absent.
func NewDocument[T any](path string, empty func() T, logger *slog.Logger) (*Document[T], error) {
	d := &Document[T]{path: path, empty: empty, logger: logger}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := d.write(empty()); err != nil {
			return nil, fmt.Errorf("init %s: %w", filepath.Base(path), err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}

	return d, nil
}

// Path returns the backing file location.
func (d *Document[T]) Path() string {
	return d.path
}

// Read returns the current collection.
func (d *Document[T]) Read() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.load()
}

// Save overwrites the document with v.
func (d *Document[T]) Save(v T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(v)
}

// Update loads the collection, hands it to fn and persists it when fn reports
// a change. An error from fn skips the write.
func (d *Document[T]) Update(fn func(v *T) (bool, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := d.load()
	changed, err := fn(&v)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return d.write(v)
}

// Rewrite decodes the document strictly, hands it to fn and always writes the
// result back. Unlike Update it refuses to touch a file it cannot decode.
func (d *Document[T]) Rewrite(fn func(v *T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.decode()
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return d.write(v)
}

// load never fails: a missing or corrupt file reads as the empty collection.
func (d *Document[T]) load() T {
	v, err := d.decode()
	if err != nil {
		d.warn("load document failed", err)
		return d.empty()
	}
	return v
}

// decode reads the file; a missing or empty file is the empty collection.
func (d *Document[T]) decode() (T, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return d.empty(), nil
	}
	if err != nil {
		return d.empty(), fmt.Errorf("read %s: %w", filepath.Base(d.path), err)
	}

	v := d.empty()
	if len(data) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return d.empty(), fmt.Errorf("decode %s: %w", filepath.Base(d.path), err)
	}
	return v, nil
}

func (d *Document[T]) write(v T) error {
	err := d.writeFile(v)
	metrics.RecordStoreWrite(filepath.Base(d.path), err)
	return err
}

func (d *Document[T]) writeFile(v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(d.path), err)
	}

	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename tmp: %w", err)
	}
	return nil
}

func (d *Document[T]) warn(msg string, err error) {
	if d.logger == nil {
		return
	}
	d.logger.Warn(msg, slog.String("path", d.path), slog.String("error", err.Error()))
}

// Check reports whether the backing file is present and readable.
func (d *Document[T]) Check() error {
	f, err := os.Open(d.path)
	if err != nil {
		return err
	}
	return f.Close()
}
