// filestore.go
//
// A digital academic library service: registration, catalog, borrowing and administration
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of academic-library.
// academic-library is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// academic-library is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with academic-library.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package storage keeps uploaded document files and cover images on disk,
// addressed by opaque keys.
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrTooLarge is returned by Put when the reader exceeds the limit.
	ErrTooLarge = errors.New("blob exceeds size limit")
	// ErrNotFound is returned for unknown keys.
	ErrNotFound = errors.New("blob not found")
	// ErrInvalidKey is returned for keys that escape the store root.
	ErrInvalidKey = errors.New("invalid blob key")
)

// BlobStore is the file storage collaborator used by the catalog.
type BlobStore interface {
	Put(prefix, filename string, r io.Reader, limit int64) (*Blob, error)
	Open(key string) (io.ReadCloser, error)
	Exists(key string) bool
	Delete(key string) error
}

// Blob describes a stored file.
type Blob struct {
	Key      string
	Size     int64
	Checksum string
}

// FileStore is a BlobStore on the local filesystem.
type FileStore struct {
	root string
}

// NewFileStore creates root when missing.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", root, err)
	}
	return &FileStore{root: root}, nil
}

// Root returns the storage directory.
func (fs *FileStore) Root() string {
	return fs.root
}

// Check verifies the root is a writable directory.
func (fs *FileStore) Check() error {
	f, err := os.CreateTemp(fs.root, ".health-*")
	if err != nil {
		return fmt.Errorf("storage root %s not writable: %w", fs.root, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// Put streams r to a new key under prefix, keeping filename's extension.
// At most limit bytes are accepted; limit <= 0 means unbounded.
// Writes go to a temp file, are fsynced and then renamed into place.
func (fs *FileStore) Put(prefix, filename string, r io.Reader, limit int64) (*Blob, error) {
	key := newKey(prefix, filename)
	fullPath, err := fs.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	hasher := sha256.New()
	src := io.TeeReader(r, hasher)
	if limit > 0 {
		// one extra byte tells "exactly limit" from "over limit"
		src = io.LimitReader(src, limit+1)
	}

	size, err := io.Copy(f, src)
	if err == nil && limit > 0 && size > limit {
		err = ErrTooLarge
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to rename blob: %w", err)
	}

	return &Blob{Key: key, Size: size, Checksum: hex.EncodeToString(hasher.Sum(nil))}, nil
}

// Open returns a reader for key. The caller closes it.
func (fs *FileStore) Open(key string) (io.ReadCloser, error) {
	fullPath, err := fs.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open blob %s: %w", key, err)
	}
	return f, nil
}

// Exists reports whether key is stored.
func (fs *FileStore) Exists(key string) bool {
	fullPath, err := fs.path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(fullPath)
	return err == nil
}

// Delete removes key. Missing keys are not an error.
func (fs *FileStore) Delete(key string) error {
	fullPath, err := fs.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

func (fs *FileStore) path(key string) (string, error) {
	clean := path.Clean(key)
	if key == "" || clean != key || path.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(fs.root, filepath.FromSlash(clean)), nil
}

func newKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext
	if prefix == "" {
		return name
	}
	return path.Join(sanitize(prefix), name)
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
