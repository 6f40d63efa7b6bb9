package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/formdeck/formdeck/internal/pkg/errors"
)

type testRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r testRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: id required", appErr.ErrInvalid)
	}
	return nil
}

func newTestCollection(t *testing.T) *Collection[testRecord] {
	t.Helper()
	return NewCollection[testRecord](t.TempDir(), "records")
}

func TestCollectionLoadMissingFile(t *testing.T) {
	c := newTestCollection(t)
	records, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestCollectionLoadEmptyFile(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte("  \n"), 0o644))

	records, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestCollectionRoundTrip(t *testing.T) {
	c := newTestCollection(t)
	want := []testRecord{
		{ID: "a", Name: "first"},
		{ID: "b", Name: "second"},
		{ID: "c", Name: "third"},
	}
	require.NoError(t, c.Save(context.Background(), want))

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCollectionLoadWrongShapeResetsSilently(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte(`{"id":"a"}`), 0o644))

	records, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)

	_, statErr := os.Stat(c.Path())
	require.True(t, os.IsNotExist(statErr), "wrong-shape file should be removed")
}

func TestCollectionLoadParseErrorPropagates(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte(`[{"id": "a",]`), 0o644))

	_, err := c.Load(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrDataCorruption))

	_, statErr := os.Stat(c.Path())
	require.True(t, os.IsNotExist(statErr), "corrupt file should be removed")
}

func TestCollectionLoadArrayOfWrongItemsPropagates(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte(`[1, 2, 3]`), 0o644))

	_, err := c.Load(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrDataCorruption),
		"an array whose items do not decode is corrupt, not wrong-shape")
}

func TestCollectionLoadValidationErrorPropagates(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(c.Path()), 0o755))
	require.NoError(t, os.WriteFile(c.Path(), []byte(`[{"name": "no id"}]`), 0o644))

	_, err := c.Load(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, appErr.ErrDataCorruption))
}

func TestCollectionSaveCreatesParentDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	c := NewCollection[testRecord](dir, "records")
	require.NoError(t, c.Save(context.Background(), []testRecord{{ID: "a"}}))

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestCollectionUpdateAbortLeavesFileUntouched(t *testing.T) {
	c := newTestCollection(t)
	want := []testRecord{{ID: "a", Name: "keep"}}
	require.NoError(t, c.Save(context.Background(), want))

	boom := errors.New("boom")
	err := c.Update(context.Background(), func(records []testRecord) ([]testRecord, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestCollectionDeleteLastRecordYieldsEmpty(t *testing.T) {
	c := newTestCollection(t)
	require.NoError(t, c.Save(context.Background(), []testRecord{{ID: "only"}}))

	err := c.Update(context.Background(), func(records []testRecord) ([]testRecord, error) {
		return records[:0], nil
	})
	require.NoError(t, err)

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
}
