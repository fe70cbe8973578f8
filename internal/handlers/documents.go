// documents.go
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

package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// DocumentHandler handles catalog routes
type DocumentHandler struct {
	Svc *services.Services
}

// Search handles GET /api/documents
// @Summary Search documents
// @Description Free-text search ranked title > author > description > identifier code. An empty query lists the newest uploads.
// @Tags Documents
// @Produce json
// @Param q query string false "Search text"
// @Param category query int false "Category id"
// @Param author query string false "Author contains"
// @Param year_from query int false "Publication year lower bound"
// @Param all query bool false "Include unavailable documents (staff only)"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, at most 100"
// @Success 200 {object} services.SearchResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /documents [get]
func (h *DocumentHandler) Search(c *fiber.Ctx) error {
	category, err := queryUint(c, "category")
	if err != nil {
		return utils.HandleError(c, err)
	}
	all, _ := parseBool(c, "all")
	q := services.SearchQuery{
		Q:                  c.Query("q"),
		CategoryID:         category,
		Author:             c.Query("author"),
		YearFrom:           c.QueryInt("year_from", 0),
		IncludeUnavailable: all,
		Page:               parsePage(c),
	}
	res, err := h.Svc.Search.Run(c.UserContext(), principal(c), q)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Popular handles GET /api/documents/popular
// @Summary Most downloaded documents
// @Tags Documents
// @Produce json
// @Param limit query int false "At most 50"
// @Success 200 {array} models.Document
// @Router /documents/popular [get]
func (h *DocumentHandler) Popular(c *fiber.Ctx) error {
	docs, err := h.Svc.Catalog.Popular(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, docs, fiber.StatusOK)
}

// Get handles GET /api/documents/:id
// @Summary Get a document
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} models.Document
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	doc, err := h.Svc.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, doc, fiber.StatusOK)
}

// Upload handles POST /api/documents
// @Summary Upload a document
// @Description Multipart upload of a document file and an optional cover image. Staff and admin only.
// @Tags Documents
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param author formData string true "Author"
// @Param identifier_code formData string false "Identifier code"
// @Param description formData string false "Description"
// @Param publication_year formData int false "Publication year"
// @Param category_id formData int true "Category id"
// @Param file formData file true "Document file"
// @Param cover formData file false "Cover image"
// @Success 201 {object} models.Document
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	in, err := documentInput(c)
	if err != nil {
		return utils.HandleError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, &types.ValidationError{Fields: map[string]string{"file": "required"}})
	}
	file, closeFile, err := openPart(fileHeader)
	if err != nil {
		return utils.HandleError(c, err)
	}
	defer closeFile()

	var cover *services.FilePart
	if coverHeader, err := c.FormFile("cover"); err == nil {
		part, closeCover, err := openPart(coverHeader)
		if err != nil {
			return utils.HandleError(c, err)
		}
		defer closeCover()
		cover = &part
	}

	doc, err := h.Svc.Catalog.Upload(c.UserContext(), principal(c), in, file, cover)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, doc, fiber.StatusCreated)
}

func documentInput(c *fiber.Ctx) (services.DocumentInput, error) {
	in := services.DocumentInput{
		Title:          c.FormValue("title"),
		Author:         c.FormValue("author"),
		IdentifierCode: c.FormValue("identifier_code"),
		Description:    c.FormValue("description"),
	}
	if raw := strings.TrimSpace(c.FormValue("category_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return in, &types.ValidationError{Fields: map[string]string{"category_id": "numeric"}}
		}
		in.CategoryID = id
	}
	if raw := strings.TrimSpace(c.FormValue("publication_year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return in, &types.ValidationError{Fields: map[string]string{"publication_year": "numeric"}}
		}
		in.PublicationYear = &year
	}
	return in, nil
}

func openPart(fh *multipart.FileHeader) (services.FilePart, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return services.FilePart{}, nil, types.Invalid("%s: unreadable upload", fh.Filename)
	}
	return services.FilePart{Filename: fh.Filename, Size: fh.Size, Reader: f}, func() { f.Close() }, nil
}

// Download handles GET /api/documents/:id/download
// @Summary Download a document file
// @Description Staff and admin may always download; students need an open borrow.
// @Tags Documents
// @Produce octet-stream
// @Param id path int true "Document id"
// @Success 200 {file} file
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	return h.send(c, services.AssetFile, "attachment")
}

// Preview handles GET /api/documents/:id/preview
// @Summary Preview a document inline
// @Tags Documents
// @Produce octet-stream
// @Param id path int true "Document id"
// @Success 200 {file} file
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 422 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/preview [get]
func (h *DocumentHandler) Preview(c *fiber.Ctx) error {
	return h.send(c, services.AssetPreview, "inline")
}

// Cover handles GET /api/documents/:id/cover
// @Summary Cover image or thumbnail
// @Tags Documents
// @Produce image/jpeg
// @Param id path int true "Document id"
// @Param size query string false "thumb for the thumbnail"
// @Success 200 {file} file
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /documents/{id}/cover [get]
func (h *DocumentHandler) Cover(c *fiber.Ctx) error {
	asset := services.AssetCover
	if c.Query("size") == "thumb" {
		asset = services.AssetThumbnail
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return h.send(c, asset, "inline")
}

func (h *DocumentHandler) send(c *fiber.Ctx, asset services.Asset, disposition string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	fh, err := h.Svc.Catalog.Open(c.UserContext(), principal(c), id, asset, clientInfo(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	if fh.Body == nil {
		return utils.HandleError(c, errors.New("empty file handle"))
	}
	c.Set(fiber.HeaderContentType, fh.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("%s; filename*=UTF-8''%s", disposition, url.PathEscape(fh.Filename)))
	size := -1
	if fh.Size > 0 {
		size = int(fh.Size)
	}
	return c.SendStream(fh.Body, size)
}

// Update handles PUT /api/documents/:id
// @Summary Edit document metadata
// @Description Fields left out of the body are kept. Staff and admin only.
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param body body services.DocumentUpdate true "Changes"
// @Success 200 {object} models.Document
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.DocumentUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	doc, err := h.Svc.Catalog.Update(c.UserContext(), principal(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, doc, fiber.StatusOK)
}

// Delete handles DELETE /api/documents/:id
// @Summary Soft-delete a document
// @Description Blocked while the document is borrowed. Staff and admin only.
// @Tags Documents
// @Param id path int true "Document id"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := h.Svc.Catalog.Delete(c.UserContext(), principal(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
