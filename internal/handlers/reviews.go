// reviews.go
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

// ReviewHandler handles reviews and recommendations
type ReviewHandler struct {
	Svc *services.Services
}

// List handles GET /api/documents/:id/reviews
// @Summary Reviews of a document
// @Tags Reviews
// @Produce json
// @Param id path int true "Document id"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} services.ReviewSummary
// @Router /documents/{id}/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	res, err := h.Svc.Reviews.ForDocument(c.UserContext(), id, parsePage(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Submit handles POST /api/documents/:id/reviews
// @Summary Rate a document
// @Description One review per account and document; submitting again replaces it.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param body body services.ReviewInput true "Review"
// @Success 200 {object} models.Review
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.ReviewInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	review, err := h.Svc.Reviews.Submit(c.UserContext(), principal(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, review, fiber.StatusOK)
}

// Recommend handles POST /api/documents/:id/recommendations
// @Summary Recommend a document
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param body body services.RecommendationInput false "Message"
// @Success 201 {object} models.Recommendation
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/recommendations [post]
func (h *ReviewHandler) Recommend(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.RecommendationInput
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return utils.HandleError(c, err)
		}
	}
	rec, err := h.Svc.Reviews.Recommend(c.UserContext(), principal(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, rec, fiber.StatusCreated)
}

// Recommendations handles GET /api/recommendations
// @Summary Recent recommendations
// @Tags Reviews
// @Produce json
// @Param document query int false "Document id"
// @Success 200 {array} models.Recommendation
// @Router /recommendations [get]
func (h *ReviewHandler) Recommendations(c *fiber.Ctx) error {
	documentID, err := queryUint(c, "document")
	if err != nil {
		return utils.HandleError(c, err)
	}
	recs, err := h.Svc.Reviews.Recommendations(c.UserContext(), documentID, parsePage(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, recs, fiber.StatusOK)
}
