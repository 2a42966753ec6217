package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalImageStore(root)

	stored, err := store.Save("eventos", "banner.PNG", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, ".png"))
	assert.NotContains(t, stored, "banner")

	contents, err := os.ReadFile(filepath.Join(root, "eventos", stored))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(contents))

	require.NoError(t, store.Delete("eventos", stored))
	_, err = os.Stat(filepath.Join(root, "eventos", stored))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalImageStore_Save_UniqueNames(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())

	a, err := store.Save("perfil", "avatar.png", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save("perfil", "avatar.png", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalImageStore_Delete(t *testing.T) {
	store := NewLocalImageStore(t.TempDir())

	t.Run("empty name is a no-op", func(t *testing.T) {
		require.NoError(t, store.Delete("perfil", ""))
	})

	t.Run("already-gone file is a no-op", func(t *testing.T) {
		require.NoError(t, store.Delete("perfil", "ghost.png"))
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		require.Error(t, store.Delete("perfil", "../outside.png"))
	})
}
