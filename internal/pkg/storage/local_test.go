package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("proof"), "provisions/2024-01-01/photo.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "provisions/2024-01-01/photo.jpg", key)
	assert.Equal(t, "http://localhost:8080/files/provisions/2024-01-01/photo.jpg", s.URL(key))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "proof", string(body))

	require.NoError(t, s.Delete(ctx, key))
	require.NoError(t, s.Delete(ctx, key), "deleting twice is a no-op")

	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost")
	require.NoError(t, err)

	for _, path := range []string{"../escape.txt", "a/../../escape.txt", ""} {
		_, err := s.Upload(ctx, strings.NewReader("x"), path, "text/plain")
		assert.ErrorIs(t, err, ErrInvalidPath, path)
	}
}
