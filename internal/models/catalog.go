// catalog.go
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

package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category groups documents. Names are unique.
type Category struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Document is a catalog entry. IsAvailable is owned by the borrowing ledger.
type Document struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string         `gorm:"size:255;not null;index" json:"title"`
	Author          string         `gorm:"size:255;not null" json:"author"`
	IdentifierCode  string         `gorm:"size:40;index" json:"identifier_code,omitempty"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	PublicationYear *int           `json:"publication_year,omitempty"`
	CategoryID      uint64         `gorm:"not null;index" json:"category_id"`
	FileKey         string         `gorm:"size:255;not null" json:"-"`
	FileName        string         `gorm:"size:255;not null" json:"file_name"`
	FileSize        int64          `gorm:"not null" json:"file_size"`
	ContentType     string         `gorm:"size:100" json:"content_type,omitempty"`
	CoverKey        string         `gorm:"size:255" json:"-"`
	ThumbnailKey    string         `gorm:"size:255" json:"-"`
	UploadedByID    uint64         `gorm:"not null;index" json:"uploaded_by_id"`
	IsAvailable     bool           `gorm:"not null;default:true;index" json:"is_available"`
	DownloadCount   int64          `gorm:"not null;default:0" json:"download_count"`
	SearchTitle     string         `gorm:"size:255;index" json:"-"`
	SearchAuthor    string         `gorm:"size:255" json:"-"`
	SearchDesc      string         `gorm:"type:text" json:"-"`
	SearchCode      string         `gorm:"size:40" json:"-"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}

// SearchColumns returns the lower-cased copies of the ranked text fields.
// Search matches against these so case folding does not depend on the
// database's LOWER.
func (d *Document) SearchColumns() map[string]any {
	return map[string]any{
		"search_title":  strings.ToLower(d.Title),
		"search_author": strings.ToLower(d.Author),
		"search_desc":   strings.ToLower(d.Description),
		"search_code":   strings.ToLower(d.IdentifierCode),
	}
}

// BeforeSave keeps the search columns in step with the text fields.
func (d *Document) BeforeSave(*gorm.DB) error {
	d.SearchTitle = strings.ToLower(d.Title)
	d.SearchAuthor = strings.ToLower(d.Author)
	d.SearchDesc = strings.ToLower(d.Description)
	d.SearchCode = strings.ToLower(d.IdentifierCode)
	return nil
}

// HasCover reports whether a cover image was uploaded.
func (d *Document) HasCover() bool {
	return d.CoverKey != ""
}
