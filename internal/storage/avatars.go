// Package storage keeps uploaded avatar images on local disk.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const defaultExt = ".png"

// AvatarStore writes avatar files into a single directory that is
// served statically under /avatars.
type AvatarStore struct {
	dir string
}

// NewAvatarStore ensures the directory exists.
func NewAvatarStore(dir string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create avatar directory")
	}
	return &AvatarStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *AvatarStore) Dir() string {
	return s.dir
}

// Save writes the image under a stable per-user name derived from the
// user id; a newer upload overwrites the previous one. It returns the
// public reference for the stored file.
func (s *AvatarStore) Save(userID uuid.UUID, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = defaultExt
	}

	name := userID.String() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to create avatar file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to write avatar file")
	}

	return "/avatars/" + name, nil
}
