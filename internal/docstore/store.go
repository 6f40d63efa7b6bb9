// Package docstore persists one record collection as a single JSON array
// file. Every mutation is a whole-collection read-modify-write executed
// under the collection lock, so concurrent requests cannot lose updates.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
)

// Record is any model stored in a collection.
type Record interface {
	Validate() error
}

type Collection[T Record] struct {
	path string
	mu   sync.Mutex
}

func NewCollection[T Record](dir, name string) *Collection[T] {
	return &Collection[T]{path: filepath.Join(dir, name+".json")}
}

func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads the whole collection. A missing or empty file is an empty
// collection. A file holding valid JSON of a non-array shape is dropped
// and read as empty; a file that fails to parse or whose records fail
// validation is dropped and the failure is reported as ErrDataCorruption.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

func (c *Collection[T]) loadLocked(ctx context.Context) ([]T, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", appErr.ErrIO, c.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var shape interface{}
	if err := json.Unmarshal(data, &shape); err != nil {
		c.removeLocked(ctx)
		return nil, fmt.Errorf("%w: parse %s: %v", appErr.ErrDataCorruption, c.path, err)
	}
	if _, ok := shape.([]interface{}); !ok {
		// Valid JSON of the wrong shape: drop the file and carry on with
		// an empty collection.
		logutil.GetLogger(ctx).Warn("collection is not a json array, resetting",
			zap.String("path", c.path))
		c.removeLocked(ctx)
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.removeLocked(ctx)
		return nil, fmt.Errorf("%w: decode %s: %v", appErr.ErrDataCorruption, c.path, err)
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			c.removeLocked(ctx)
			return nil, fmt.Errorf("%w: %s record %d: %v", appErr.ErrDataCorruption, c.path, i, err)
		}
	}
	return records, nil
}

// Save replaces the collection on disk. The records are written to a
// temp file in the target directory and renamed into place, so readers
// never observe a partially written collection.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(ctx, records)
}

func (c *Collection[T]) saveLocked(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", appErr.ErrIO, c.path, err)
	}
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", appErr.ErrIO, dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", appErr.ErrIO, c.path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", appErr.ErrIO, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", appErr.ErrIO, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", appErr.ErrIO, tmpName, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", appErr.ErrIO, c.path, err)
	}
	logutil.GetLogger(ctx).Debug("collection saved",
		zap.String("path", c.path), zap.Int("records", len(records)))
	return nil
}

// Update runs a read-modify-write cycle under the collection lock. The
// mutator receives the loaded records and returns the records to persist;
// returning an error aborts the cycle and leaves the file untouched.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	records, err := c.loadLocked(ctx)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return c.saveLocked(ctx, next)
}

func (c *Collection[T]) removeLocked(ctx context.Context) {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		logutil.GetLogger(ctx).Error("failed to remove corrupt collection",
			zap.String("path", c.path), zap.Error(err))
	}
}
