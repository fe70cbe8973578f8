// response.go
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

package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// ValidationErrorResponse sends a 400 with per-field messages
func ValidationErrorResponse(c *fiber.Ctx, ve *types.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":    fiber.StatusBadRequest,
		"message":   ve.Error(),
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "validation",
		"fields":    ve.Fields,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "not_found",
	})
}

// MutationSuccessResponse sends a success response for bulk mutations
func MutationSuccessResponse(c *fiber.Ctx, affectedRows int64) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Success",
		"ok":           true,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"affectedRows": affectedRows,
	})
}

// ErrorStatus maps an error to its HTTP status.
func ErrorStatus(err error) int {
	var ce *types.CustomError
	var fe *fiber.Error
	var nf *types.NotFoundError
	var inv *types.InvalidFileError
	switch {
	case errors.As(err, &ce):
		return ce.Code
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &inv):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &nf):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrNotApproved), errors.Is(err, types.ErrPermission):
		return fiber.StatusForbidden
	case errors.Is(err, types.ErrUnauthenticated), errors.Is(err, types.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, types.ErrUnavailable),
		errors.Is(err, types.ErrBorrowLimitExceeded),
		errors.Is(err, types.ErrAlreadyReturned),
		errors.Is(err, types.ErrInvalidTransition),
		errors.Is(err, types.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// HandleError renders err in the standard envelope. Infrastructure failures
// only ever show the generic retry message.
func HandleError(c *fiber.Ctx, err error) error {
	var ce *types.CustomError
	var fe *fiber.Error
	var ve *types.ValidationError
	switch {
	case errors.As(err, &ce):
		return ErrorResponse(c, ce.Message, ce.Code, ce.Type)
	case errors.As(err, &fe):
		return ErrorResponse(c, fe.Message, fe.Code, "http")
	case errors.As(err, &ve) && len(ve.Fields) > 0:
		return ValidationErrorResponse(c, ve)
	}
	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		return ErrorResponse(c, types.ErrInfrastructure.Error(), status, "infrastructure")
	}
	return ErrorResponse(c, err.Error(), status, types.ErrorType(err))
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Ok        bool              `json:"ok"`
	Timestamp string            `json:"timestamp"`
	URL       string            `json:"url"`
	Type      string            `json:"type,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	AffectedRows int64  `json:"affectedRows"`
}
