package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir() + "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Put(ctx, "photos/a1/front.jpg", "image/jpeg", []byte{0xFF, 0xD8, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, "photos/a1/front.jpg", ref.Key)
	assert.Equal(t, "/uploads/photos/a1/front.jpg", ref.URL)

	path := filepath.Join(store.baseDir, "photos", "a1", "front.jpg")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, content)

	require.NoError(t, store.Delete(ctx, "photos/a1/front.jpg"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, "photos/a1/missing.jpg"))
}
