// categories.go
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

	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// CategoryHandler handles category routes
type CategoryHandler struct {
	Svc *services.Services
}

// List handles GET /api/categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Svc.Categories.List(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, cats, fiber.StatusOK)
}

// Create handles POST /api/admin/categories
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param body body services.CategoryInput true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	cat, err := h.Svc.Categories.Create(c.UserContext(), principal(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, cat, fiber.StatusCreated)
}

// Update handles PUT /api/admin/categories/:id
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category id"
// @Param body body services.CategoryInput true "Category"
// @Success 200 {object} models.Category
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	cat, err := h.Svc.Categories.Update(c.UserContext(), principal(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, cat, fiber.StatusOK)
}

// Delete handles DELETE /api/admin/categories/:id
// @Summary Delete a category
// @Description Blocked while documents reference the category.
// @Tags Categories
// @Param id path int true "Category id"
// @Success 204
// @Failure 409 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	if err := h.Svc.Categories.Delete(c.UserContext(), principal(c), id); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
