// auth.go
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
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// AuthHandler handles registration, login and the current account
type AuthHandler struct {
	Svc *services.Services
}

// LoginRequest is the login body. Login is a username or institutional identifier.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Description Create an unapproved account from an active, unused institutional identifier
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration"
// @Success 201 {object} models.Account
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	account, err := h.Svc.Accounts.Register(c.UserContext(), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, account, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Exchange a username or identifier and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body handlers.LoginRequest true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	res, err := h.Svc.Accounts.Login(c.UserContext(), in.Login, in.Password)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, res, fiber.StatusOK)
}

// Me handles GET /api/auth/me
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Account
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p := principal(c)
	if p.AccountID == 0 {
		return utils.HandleError(c, types.ErrUnauthenticated)
	}
	account, err := h.Svc.Accounts.Load(c.UserContext(), p.AccountID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, account, fiber.StatusOK)
}

// UpdateMe handles PATCH /api/auth/me
// @Summary Update own profile
// @Description Change first name, last name, email or phone. Fields left out are kept.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.ProfileInput true "Profile"
// @Success 200 {object} models.Account
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /auth/me [patch]
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var in services.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}
	account, err := h.Svc.Accounts.UpdateProfile(c.UserContext(), principal(c), in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, account, fiber.StatusOK)
}
