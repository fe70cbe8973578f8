// filestore_test.go
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

package storage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, dir, fs.Root())
}

func TestPutOpenDelete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	content := []byte("chapter one")
	blob, err := fs.Put("documents", "Thesis.PDF", bytes.NewReader(content), 1024)
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), blob.Checksum)
	assert.Equal(t, int64(len(content)), blob.Size)
	assert.True(t, strings.HasPrefix(blob.Key, "documents/"))
	assert.True(t, strings.HasSuffix(blob.Key, ".pdf"))
	assert.True(t, fs.Exists(blob.Key))

	rc, err := fs.Open(blob.Key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, fs.Delete(blob.Key))
	assert.False(t, fs.Exists(blob.Key))
	assert.NoError(t, fs.Delete(blob.Key), "deleting a missing key is a no-op")

	_, err = fs.Open(blob.Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutEnforcesLimit(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Put("documents", "big.pdf", bytes.NewReader(make([]byte, 11)), 10)
	assert.ErrorIs(t, err, ErrTooLarge)

	blob, err := fs.Put("documents", "exact.pdf", bytes.NewReader(make([]byte, 10)), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), blob.Size)

	matches, err := filepath.Glob(filepath.Join(fs.Root(), "documents", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files are removed")
}

func TestInvalidKeys(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "/abs", "a/../../b"} {
		_, err := fs.Open(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		assert.False(t, fs.Exists(key))
	}
}
