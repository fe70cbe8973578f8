// borrows.go
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
	"github.com/gofiber/fiber/v2"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// BorrowHandler handles borrowing ledger routes
type BorrowHandler struct {
	Svc *services.Services
}

// RejectRequest carries the optional rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// Request handles POST /api/documents/:id/borrow
// @Summary Borrow a document
// @Description Staff borrows are issued immediately. Student borrows are issued or left pending depending on the approval mode.
// @Tags Borrows
// @Produce json
// @Param id path int true "Document id"
// @Success 201 {object} models.BorrowRecord
// @Failure 403 {object} utils.ErrorResponseStruct "not_approved"
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct "unavailable, borrow_limit"
// @Security BearerAuth
// @Router /documents/{id}/borrow [post]
func (h *BorrowHandler) Request(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	record, err := h.Svc.Ledger.RequestBorrow(c.UserContext(), principal(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, record, fiber.StatusCreated)
}

// List handles GET /api/borrows
// @Summary Borrow records
// @Description The caller's records; staff may pass all=true for every record.
// @Tags Borrows
// @Produce json
// @Param all query bool false "Every account (staff only)"
// @Param status query string false "pending, borrowed, overdue, returned or rejected"
// @Param document query int false "Document id"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {array} models.BorrowRecord
// @Security BearerAuth
// @Router /borrows [get]
func (h *BorrowHandler) List(c *fiber.Ctx) error {
	documentID, err := queryUint(c, "document")
	if err != nil {
		return utils.HandleError(c, err)
	}
	all, _ := parseBool(c, "all")
	records, err := h.Svc.Ledger.List(c.UserContext(), principal(c), services.BorrowFilter{
		All:        all,
		Status:     models.BorrowStatus(c.Query("status")),
		DocumentID: documentID,
		Page:       parsePage(c),
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, records, fiber.StatusOK)
}

// Get handles GET /api/borrows/:id
// @Summary Get a borrow record
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow id"
// @Success 200 {object} models.BorrowRecord
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /borrows/{id} [get]
func (h *BorrowHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	record, err := h.Svc.Ledger.Get(c.UserContext(), principal(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, record, fiber.StatusOK)
}

// Return handles POST /api/borrows/:id/return
// @Summary Return a document
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow id"
// @Success 200 {object} models.BorrowRecord
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct "already_returned"
// @Security BearerAuth
// @Router /borrows/{id}/return [post]
func (h *BorrowHandler) Return(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	record, err := h.Svc.Ledger.Return(c.UserContext(), principal(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, record, fiber.StatusOK)
}

// Approve handles POST /api/borrows/:id/approve
// @Summary Approve a pending borrow
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow id"
// @Success 200 {object} models.BorrowRecord
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /borrows/{id}/approve [post]
func (h *BorrowHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	record, err := h.Svc.Ledger.Approve(c.UserContext(), principal(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, record, fiber.StatusOK)
}

// Reject handles POST /api/borrows/:id/reject
// @Summary Reject a pending borrow
// @Tags Borrows
// @Accept json
// @Produce json
// @Param id path int true "Borrow id"
// @Param body body handlers.RejectRequest false "Reason"
// @Success 200 {object} models.BorrowRecord
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /borrows/{id}/reject [post]
func (h *BorrowHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var body RejectRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &body); err != nil {
			return utils.HandleError(c, err)
		}
	}
	record, err := h.Svc.Ledger.Reject(c.UserContext(), principal(c), id, body.Reason)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, record, fiber.StatusOK)
}
