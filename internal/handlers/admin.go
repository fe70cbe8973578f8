// admin.go
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
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// AdminHandler handles the administrative console routes
type AdminHandler struct {
	Svc *services.Services
}

// Statistics handles GET /api/admin/statistics
// @Summary Dashboard statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} services.Statistics
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/statistics [get]
func (h *AdminHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.Svc.Stats.Collect(c.UserContext(), principal(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}

// Activity handles GET /api/admin/activity
// @Summary Recent activity log
// @Tags Admin
// @Produce json
// @Param limit query int false "At most 50"
// @Success 200 {array} models.ActivityLog
// @Security BearerAuth
// @Router /admin/activity [get]
func (h *AdminHandler) Activity(c *fiber.Ctx) error {
	entries, err := h.Svc.Activity.Recent(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, entries, fiber.StatusOK)
}

// Sweep handles POST /api/admin/sweep
// @Summary Run the overdue sweep now
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Security BearerAuth
// @Router /admin/sweep [post]
func (h *AdminHandler) Sweep(c *fiber.Ctx) error {
	swept, err := h.Svc.Ledger.SweepNow(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.MutationSuccessResponse(c, swept)
}

// Commands handles GET /api/admin/commands
// @Summary Available administrative commands
// @Tags Admin
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /admin/commands [get]
func (h *AdminHandler) Commands(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, services.CommandNames(), fiber.StatusOK)
}

// Command handles POST /api/admin/commands/:name
// @Summary Run an administrative command
// @Description Each command validates its own body, e.g. approve_accounts takes {"account_ids": [1, 2]}.
// @Tags Admin
// @Accept json
// @Produce json
// @Param name path string true "Command name"
// @Param body body object true "Command input"
// @Success 200 {object} services.CommandResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/commands/{name} [post]
func (h *AdminHandler) Command(c *fiber.Ctx) error {
	res, err := h.Svc.Console.Run(c.UserContext(), principal(c), c.Params("name"), c.Body())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Accounts handles GET /api/admin/accounts
// @Summary List accounts
// @Tags Admin
// @Produce json
// @Param approved query bool false "Filter by approval"
// @Param role query string false "student, staff or admin"
// @Success 200 {array} models.Account
// @Security BearerAuth
// @Router /admin/accounts [get]
func (h *AdminHandler) Accounts(c *fiber.Ctx) error {
	f := services.AccountFilter{Role: models.Role(c.Query("role")), Page: parsePage(c)}
	if v, ok := parseBool(c, "approved"); ok {
		f.Approved = &v
	}
	accounts, err := h.Svc.Accounts.List(c.UserContext(), principal(c), f)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, accounts, fiber.StatusOK)
}

func identityFilter(c *fiber.Ctx) services.IdentityFilter {
	unused, _ := parseBool(c, "unused")
	return services.IdentityFilter{
		Status:      models.IdentityStatus(c.Query("status")),
		AccountType: models.AccountType(c.Query("account_type")),
		Unused:      unused,
		Page:        parsePage(c),
	}
}

// Identities handles GET /api/admin/identities
// @Summary List pre-registered identifiers
// @Tags Identities
// @Produce json
// @Param status query string false "pending, active or revoked"
// @Param account_type query string false "student or staff"
// @Param unused query bool false "Only identifiers not yet registered"
// @Success 200 {array} models.IdentityRecord
// @Security BearerAuth
// @Router /admin/identities [get]
func (h *AdminHandler) Identities(c *fiber.Ctx) error {
	if !principal(c).IsAdmin() {
		return utils.HandleError(c, types.ErrPermission)
	}
	recs, err := h.Svc.Identities.List(c.UserContext(), identityFilter(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, recs, fiber.StatusOK)
}

// CreateIdentity handles POST /api/admin/identities
// @Summary Pre-register an identifier
// @Tags Identities
// @Accept json
// @Produce json
// @Param body body services.IdentityInput true "Identity"
// @Success 201 {object} models.IdentityRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/identities [post]
func (h *AdminHandler) CreateIdentity(c *fiber.Ctx) error {
	var in services.IdentityInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	rec, err := h.Svc.Identities.Create(c.UserContext(), principal(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, rec, fiber.StatusCreated)
}

// ExportIdentities handles GET /api/admin/identities/export
// @Summary Export identifiers as CSV
// @Tags Identities
// @Produce text/csv
// @Success 200 {file} file
// @Security BearerAuth
// @Router /admin/identities/export [get]
func (h *AdminHandler) ExportIdentities(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.Svc.Identities.Export(c.UserContext(), principal(c), &buf, identityFilter(c)); err != nil {
		return utils.HandleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "identities.csv"))
	return c.Send(buf.Bytes())
}

// ExportDocuments handles GET /api/admin/documents/export
// @Summary Export the catalog as CSV
// @Tags Documents
// @Produce text/csv
// @Param category query int false "Category id"
// @Success 200 {file} file
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/documents/export [get]
func (h *AdminHandler) ExportDocuments(c *fiber.Ctx) error {
	category, err := queryUint(c, "category")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var buf bytes.Buffer
	if err := h.Svc.Catalog.Export(c.UserContext(), principal(c), &buf, services.DocumentExportFilter{CategoryID: category}); err != nil {
		return utils.HandleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "documents.csv"))
	return c.Send(buf.Bytes())
}

// ImportIdentities handles POST /api/admin/identities/import
// @Summary Import identifiers from CSV
// @Description The body is CSV with a header row, or a multipart form with a "file" field.
// @Tags Identities
// @Accept text/csv
// @Produce json
// @Success 200 {object} services.ImportReport
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/identities/import [post]
func (h *AdminHandler) ImportIdentities(c *fiber.Ctx) error {
	body := bytes.NewReader(c.Body())
	var report *services.ImportReport
	var err error
	if fh, ferr := c.FormFile("file"); ferr == nil {
		part, closePart, oerr := openPart(fh)
		if oerr != nil {
			return utils.HandleError(c, oerr)
		}
		defer closePart()
		report, err = h.Svc.Identities.Import(c.UserContext(), principal(c), part.Reader)
	} else {
		report, err = h.Svc.Identities.Import(c.UserContext(), principal(c), body)
	}
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, report, fiber.StatusOK)
}
