package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "nested/doc.json", strings.NewReader("first")))
	require.NoError(t, s.Save(ctx, "nested/doc.json", strings.NewReader("second")))

	rc, err := s.Get(ctx, "nested/doc.json")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	require.NoError(t, s.Delete(ctx, "nested/doc.json"))
	require.NoError(t, s.Delete(ctx, "nested/doc.json"), "deleting twice should not fail")

	_, err = s.Get(ctx, "nested/doc.json")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLocalStorage_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "users.json", strings.NewReader("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
	assert.FileExists(t, filepath.Join(dir, "users.json"))
}
