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

package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/storage"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

const (
	thumbnailWidth  = 240
	thumbnailHeight = 320
	userAgentMax    = 500
)

// Catalog owns Document rows and their stored files.
type Catalog struct {
	Base
	Store    storage.BlobStore
	Rules    FileRules
	Ledger   *Ledger
	Activity *Activity
	Cache    *ListingCache
}

// DocumentInput is the metadata of an upload.
type DocumentInput struct {
	Title           string `json:"title" form:"title" validate:"required,max=255"`
	Author          string `json:"author" form:"author" validate:"required,max=255"`
	IdentifierCode  string `json:"identifier_code" form:"identifier_code" validate:"max=40"`
	Description     string `json:"description" form:"description" validate:"max=10000"`
	PublicationYear *int   `json:"publication_year" form:"publication_year" validate:"omitempty,gte=1000,lte=9999"`
	CategoryID      uint64 `json:"category_id" form:"category_id" validate:"required,gt=0"`
}

// FilePart is one uploaded file. Size is the size the client declared.
type FilePart struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// Upload validates and stores a document and its optional cover.
// Only approved staff and admin accounts may upload.
func (c *Catalog) Upload(ctx context.Context, p types.Principal, in DocumentInput, file FilePart, cover *FilePart) (*models.Document, error) {
	doc, err := c.upload(ctx, p, in, file, cover)
	uploadsTotal.WithLabelValues(outcome(err)).Inc()
	return doc, err
}

func (c *Catalog) upload(ctx context.Context, p types.Principal, in DocumentInput, file FilePart, cover *FilePart) (*models.Document, error) {
	if !p.IsApproved || !p.Elevated() {
		return nil, types.ErrPermission
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := c.Rules.CheckDocument(file.Filename, file.Size); err != nil {
		return nil, err
	}
	if cover != nil {
		if err := c.Rules.CheckCover(cover.Filename, cover.Size); err != nil {
			return nil, err
		}
	}

	var category models.Category
	if err := c.reader(ctx).First(&category, in.CategoryID).Error; err != nil {
		return nil, classify(missing(err, "category", in.CategoryID))
	}

	// Declared sizes can lie, so the store counts bytes as well.
	blob, err := c.put("documents", file)
	if err != nil {
		return nil, err
	}
	stored := []string{blob.Key}
	cleanup := func() {
		for _, key := range stored {
			if err := c.Store.Delete(key); err != nil {
				c.log().Warn("orphan blob cleanup failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	doc := &models.Document{
		Title:           strings.TrimSpace(in.Title),
		Author:          strings.TrimSpace(in.Author),
		IdentifierCode:  strings.TrimSpace(in.IdentifierCode),
		Description:     strings.TrimSpace(in.Description),
		PublicationYear: in.PublicationYear,
		CategoryID:      category.ID,
		FileKey:         blob.Key,
		FileName:        file.Filename,
		FileSize:        blob.Size,
		ContentType:     ContentType(file.Filename),
		UploadedByID:    p.AccountID,
		IsAvailable:     true,
		CreatedAt:       c.now(),
	}

	if cover != nil {
		coverBlob, err := c.put("covers", *cover)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, coverBlob.Key)
		doc.CoverKey = coverBlob.Key
		if key, err := c.thumbnail(coverBlob.Key); err != nil {
			c.log().Warn("cover thumbnail failed", zap.String("cover", coverBlob.Key), zap.Error(err))
		} else {
			stored = append(stored, key)
			doc.ThumbnailKey = key
		}
	}

	if err := database.Transact(ctx, c.DB, func(tx *gorm.DB) error {
		return tx.Create(doc).Error
	}); err != nil {
		cleanup()
		return nil, err
	}

	c.Cache.Purge()
	c.Activity.Record(ctx, p, "document.uploaded", "document", doc.ID, map[string]any{
		"title":     doc.Title,
		"file_size": doc.FileSize,
	})
	c.log().Info("document uploaded", zap.Uint64("document_id", doc.ID), zap.Uint64("by", p.AccountID))
	return doc, nil
}

func (c *Catalog) put(prefix string, part FilePart) (*storage.Blob, error) {
	if part.Reader == nil {
		return nil, types.Invalid("%s: missing file content", part.Filename)
	}
	blob, err := c.Store.Put(prefix, part.Filename, part.Reader, c.Rules.MaxBytes)
	if errors.Is(err, storage.ErrTooLarge) {
		return nil, c.Rules.sizeError(part.Filename)
	}
	if err != nil {
		return nil, types.Infrastructure(err)
	}
	return blob, nil
}

// thumbnail stores a JPEG thumbnail of the cover at key.
func (c *Catalog) thumbnail(key string) (string, error) {
	rc, err := c.Store.Open(key)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	img, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode cover: %w", err)
	}
	thumb := imaging.Fit(img, thumbnailWidth, thumbnailHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	blob, err := c.Store.Put("thumbnails", "thumb.jpg", &buf, 0)
	if err != nil {
		return "", err
	}
	return blob.Key, nil
}

// Get loads a non-deleted document.
func (c *Catalog) Get(ctx context.Context, id uint64) (*models.Document, error) {
	var doc models.Document
	if err := c.reader(ctx).First(&doc, id).Error; err != nil {
		return nil, classify(missing(err, "document", id))
	}
	return &doc, nil
}

// ClientInfo identifies the requester of a download.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// FileHandle is an open stored file. The caller closes Body.
type FileHandle struct {
	Body        io.ReadCloser
	Filename    string
	ContentType string
	Size        int64
}

// Asset selects which stored file of a document to open.
type Asset int

const (
	AssetFile Asset = iota
	AssetPreview
	AssetCover
	AssetThumbnail
)

// Open checks access, records the retrieval and opens the requested file.
// Staff and admin may always retrieve; students need an open borrow of the
// document. Covers and thumbnails are public and not counted.
func (c *Catalog) Open(ctx context.Context, p types.Principal, id uint64, asset Asset, client ClientInfo) (*FileHandle, error) {
	doc, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch asset {
	case AssetCover, AssetThumbnail:
		key := doc.CoverKey
		if asset == AssetThumbnail && doc.ThumbnailKey != "" {
			key = doc.ThumbnailKey
		}
		if key == "" {
			return nil, types.NotFound("cover", id)
		}
		return c.open(key, key, 0)
	case AssetPreview:
		if !c.Rules.Previewable(doc.FileName) {
			return nil, &types.InvalidFileError{
				Rule:   types.FileRuleExtension,
				Detail: fmt.Sprintf("%q cannot be previewed", doc.FileName),
			}
		}
	}

	if err := c.authorizeFile(ctx, p, doc); err != nil {
		return nil, err
	}

	fh, err := c.open(doc.FileKey, doc.FileName, doc.FileSize)
	if err != nil {
		return nil, err
	}
	if err := c.RecordDownload(ctx, p, doc.ID, asset == AssetPreview, client); err != nil {
		fh.Body.Close()
		return nil, err
	}
	return fh, nil
}

func (c *Catalog) authorizeFile(ctx context.Context, p types.Principal, doc *models.Document) error {
	if !p.IsApproved {
		return types.ErrNotApproved
	}
	if p.Elevated() {
		return nil
	}
	if c.Ledger == nil {
		return types.ErrPermission
	}
	ok, err := c.Ledger.HasOpenBorrow(ctx, p.AccountID, doc.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: borrow this document to access its file", types.ErrPermission)
	}
	return nil
}

func (c *Catalog) open(key, name string, size int64) (*FileHandle, error) {
	rc, err := c.Store.Open(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, types.NotFound("file", name)
	}
	if err != nil {
		return nil, types.Infrastructure(err)
	}
	return &FileHandle{Body: rc, Filename: name, ContentType: ContentType(name), Size: size}, nil
}

// RecordDownload increments download_count and saves a DownloadEvent in one
// transaction. The counter never decreases.
func (c *Catalog) RecordDownload(ctx context.Context, p types.Principal, documentID uint64, preview bool, client ClientInfo) error {
	err := database.Transact(ctx, c.DB, func(tx *gorm.DB) error {
		res := tx.Unscoped().Model(&models.Document{}).
			Where("id = ?", documentID).
			UpdateColumn("download_count", gorm.Expr("download_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NotFound("document", documentID)
		}
		return tx.Create(&models.DownloadEvent{
			DocumentID: documentID,
			AccountID:  p.AccountID,
			Preview:    preview,
			IPAddress:  truncate(client.IP, 64),
			UserAgent:  truncate(client.UserAgent, userAgentMax),
			CreatedAt:  c.now(),
		}).Error
	})
	if err != nil {
		return err
	}
	kind := "download"
	if preview {
		kind = "preview"
	}
	downloadsTotal.WithLabelValues(kind).Inc()
	return nil
}

// DocumentUpdate edits document metadata. Nil fields are kept; the stored
// file and availability are not editable here.
type DocumentUpdate struct {
	Title           *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author          *string `json:"author" validate:"omitempty,min=1,max=255"`
	IdentifierCode  *string `json:"identifier_code" validate:"omitempty,max=40"`
	Description     *string `json:"description" validate:"omitempty,max=10000"`
	PublicationYear *int    `json:"publication_year" validate:"omitempty,gte=1000,lte=9999"`
	CategoryID      *uint64 `json:"category_id" validate:"omitempty,gt=0"`
}

func (in DocumentUpdate) apply(d *models.Document) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&d.Title, in.Title)
	set(&d.Author, in.Author)
	set(&d.IdentifierCode, in.IdentifierCode)
	set(&d.Description, in.Description)
	if in.PublicationYear != nil {
		d.PublicationYear = in.PublicationYear
	}
	if in.CategoryID != nil {
		d.CategoryID = *in.CategoryID
	}
}

// Update edits the metadata of a document. Staff and admin only.
func (c *Catalog) Update(ctx context.Context, p types.Principal, id uint64, in DocumentUpdate) (*models.Document, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var doc models.Document
	err := database.Transact(ctx, c.DB, func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&doc, id).Error; err != nil {
			return missing(err, "document", id)
		}
		in.apply(&doc)
		if doc.Title == "" || doc.Author == "" {
			return types.Invalid("title and author must not be empty")
		}
		if in.CategoryID != nil {
			var category models.Category
			if err := tx.Select("id").First(&category, doc.CategoryID).Error; err != nil {
				return missing(err, "category", doc.CategoryID)
			}
		}
		changes := doc.SearchColumns()
		changes["title"] = doc.Title
		changes["author"] = doc.Author
		changes["identifier_code"] = doc.IdentifierCode
		changes["description"] = doc.Description
		changes["publication_year"] = doc.PublicationYear
		changes["category_id"] = doc.CategoryID
		return tx.Model(&models.Document{}).Where("id = ?", doc.ID).Updates(changes).Error
	})
	if err != nil {
		return nil, err
	}

	c.Cache.Purge()
	c.Activity.Record(ctx, p, "document.updated", "document", doc.ID, map[string]any{"title": doc.Title})
	return c.Get(ctx, doc.ID)
}

// Delete soft-deletes a document. Documents out on loan cannot be deleted.
func (c *Catalog) Delete(ctx context.Context, p types.Principal, id uint64) error {
	if err := requireStaff(p); err != nil {
		return err
	}
	err := database.Transact(ctx, c.DB, func(tx *gorm.DB) error {
		var doc models.Document
		if err := database.ForUpdate(tx).First(&doc, id).Error; err != nil {
			return missing(err, "document", id)
		}
		var open int64
		if err := tx.Model(&models.BorrowRecord{}).
			Where("document_id = ? AND status IN ?", id, models.OpenStatuses).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: document is currently borrowed", types.ErrConflict)
		}
		return tx.Delete(&doc).Error
	})
	if err != nil {
		return err
	}

	c.Cache.Purge()
	c.Activity.Record(ctx, p, "document.deleted", "document", id, nil)
	return nil
}

// Popular lists the most downloaded available documents.
func (c *Catalog) Popular(ctx context.Context, limit int) ([]models.Document, error) {
	limit = clampLimit(limit, 50)
	key := fmt.Sprintf("popular:%d", limit)
	if docs, ok := c.Cache.Get(key); ok {
		return docs, nil
	}

	var docs []models.Document
	if err := c.reader(ctx).
		Where("is_available = ?", true).
		Order("download_count DESC").Order("title ASC").
		Limit(limit).
		Find(&docs).Error; err != nil {
		return nil, classify(err)
	}
	c.Cache.Add(key, docs)
	return docs, nil
}
