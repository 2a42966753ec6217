package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"proeventos/internal/domain"
)

type localImageStore struct {
	root string
}

// NewLocalImageStore returns an ImageStore that writes files under root,
// one subdirectory per destination folder. Stored names are random UUIDs
// with the original file's extension, so uploads never collide or traverse
// outside the store.
func NewLocalImageStore(root string) domain.ImageStore {
	return &localImageStore{root: root}
}

func (s *localImageStore) Save(folder, fileName string, contents io.Reader) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	storedName := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, contents); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return storedName, nil
}

func (s *localImageStore) Delete(folder, storedName string) error {
	if storedName == "" {
		return nil
	}
	// Stored names are always plain file names; reject anything else rather
	// than follow it out of the store.
	if storedName != filepath.Base(storedName) {
		return fmt.Errorf("invalid stored name %q", storedName)
	}
	err := os.Remove(filepath.Join(s.root, folder, storedName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}
