// catalog_csv.go
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
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// DocumentCSVColumns is the catalog export layout.
var DocumentCSVColumns = []string{
	"id", "title", "author", "identifier_code", "category", "uploaded_by",
	"publication_year", "created_at", "download_count", "is_available",
}

// DocumentExportFilter narrows Export.
type DocumentExportFilter struct {
	CategoryID uint64
}

// Export writes the non-deleted catalog as CSV, oldest first. Admin only.
func (c *Catalog) Export(ctx context.Context, p types.Principal, w io.Writer, f DocumentExportFilter) error {
	if !p.IsAdmin() {
		return types.ErrPermission
	}
	q := c.reader(ctx).Model(&models.Document{})
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	var docs []models.Document
	if err := q.Order("id ASC").Find(&docs).Error; err != nil {
		return classify(err)
	}

	categories, uploaders, err := c.exportNames(ctx, docs)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(DocumentCSVColumns); err != nil {
		return err
	}
	for _, d := range docs {
		year := ""
		if d.PublicationYear != nil {
			year = strconv.Itoa(*d.PublicationYear)
		}
		if err := cw.Write([]string{
			strconv.FormatUint(d.ID, 10), d.Title, d.Author, d.IdentifierCode,
			categories[d.CategoryID], uploaders[d.UploadedByID], year,
			d.CreatedAt.UTC().Format(time.RFC3339),
			strconv.FormatInt(d.DownloadCount, 10), strconv.FormatBool(d.IsAvailable),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	c.Activity.Record(ctx, p, "document.exported", "document", 0, map[string]any{"count": len(docs)})
	return nil
}

// exportNames resolves category names and uploader usernames for docs.
func (c *Catalog) exportNames(ctx context.Context, docs []models.Document) (map[uint64]string, map[uint64]string, error) {
	categories := make(map[uint64]string)
	uploaders := make(map[uint64]string)
	if len(docs) == 0 {
		return categories, uploaders, nil
	}
	var categoryIDs, uploaderIDs []uint64
	for _, d := range docs {
		if _, ok := categories[d.CategoryID]; !ok {
			categories[d.CategoryID] = ""
			categoryIDs = append(categoryIDs, d.CategoryID)
		}
		if _, ok := uploaders[d.UploadedByID]; !ok {
			uploaders[d.UploadedByID] = ""
			uploaderIDs = append(uploaderIDs, d.UploadedByID)
		}
	}

	var cats []models.Category
	if err := c.reader(ctx).Select("id", "name").Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
		return nil, nil, classify(err)
	}
	for _, cat := range cats {
		categories[cat.ID] = cat.Name
	}
	var accounts []models.Account
	if err := c.reader(ctx).Select("id", "username").Where("id IN ?", uploaderIDs).Find(&accounts).Error; err != nil {
		return nil, nil, classify(err)
	}
	for _, a := range accounts {
		uploaders[a.ID] = a.Username
	}
	return categories, uploaders, nil
}
