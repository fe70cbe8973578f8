// files.go
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

package services

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// FileRules is the upload allow-list and size ceiling.
type FileRules struct {
	Documents mapset.Set[string]
	Covers    mapset.Set[string]
	Preview   mapset.Set[string]
	MaxBytes  int64
}

// DefaultFileRules allows pdf, doc, docx and txt documents, jpg, jpeg, png and
// gif covers, up to 10 MiB each.
func DefaultFileRules() FileRules {
	return FileRules{
		Documents: mapset.NewSet("pdf", "doc", "docx", "txt"),
		Covers:    mapset.NewSet("jpg", "jpeg", "png", "gif"),
		Preview:   mapset.NewSet("pdf", "jpg", "jpeg", "png", "txt"),
		MaxBytes:  10 << 20,
	}
}

// FileRulesFromConfig builds the rules from cfg.
func FileRulesFromConfig(cfg *config.Config) FileRules {
	return FileRules{
		Documents: mapset.NewSet(cfg.DocumentExtensions...),
		Covers:    mapset.NewSet(cfg.CoverExtensions...),
		Preview:   mapset.NewSet(cfg.PreviewExtensions...),
		MaxBytes:  cfg.MaxUploadBytes,
	}
}

// Extension is the lower-cased extension of name without the dot.
func Extension(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// CheckDocument validates a document file by name and declared size.
func (r FileRules) CheckDocument(name string, size int64) error {
	return r.check(r.Documents, name, size)
}

// CheckCover validates a cover image by name and declared size.
func (r FileRules) CheckCover(name string, size int64) error {
	return r.check(r.Covers, name, size)
}

// Previewable reports whether files named name may be shown inline.
func (r FileRules) Previewable(name string) bool {
	return r.Preview != nil && r.Preview.Contains(Extension(name))
}

func (r FileRules) check(allowed mapset.Set[string], name string, size int64) error {
	ext := Extension(name)
	if ext == "" || allowed == nil || !allowed.Contains(ext) {
		return &types.InvalidFileError{
			Rule:   types.FileRuleExtension,
			Detail: fmt.Sprintf("%q is not an allowed file type", name),
		}
	}
	if size > r.MaxBytes {
		return r.sizeError(name)
	}
	return nil
}

func (r FileRules) sizeError(name string) error {
	return &types.InvalidFileError{
		Rule:   types.FileRuleSize,
		Detail: fmt.Sprintf("%q exceeds the %d MiB limit", name, r.MaxBytes>>20),
	}
}

// ContentType guesses a MIME type from the extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(strings.ToLower(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
