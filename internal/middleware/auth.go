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

package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

const (
	principalKey  = "principal"
	sessionCookie = "cookie_session"
)

// Authenticate resolves the caller from a bearer token, or from the
// Authorizer session cookie in authorizer mode, and stores the Principal in
// c.Locals. The account row is reloaded on every request so approval and
// deactivation apply immediately. Requests without credentials pass through
// anonymous.
func Authenticate(svc *services.Services, log *zap.Logger) fiber.Handler {
	log = logging.OrNop(log)
	return func(c *fiber.Ctx) error {
		account, err := resolveAccount(c, svc)
		if err != nil {
			if errors.Is(err, types.ErrInfrastructure) {
				log.Error("authentication lookup failed", zap.Error(err))
				return utils.HandleError(c, err)
			}
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Invalid credentials",
				Type:    "authentication",
			}
		}
		if account != nil {
			if !account.IsActive {
				return &types.CustomError{
					Code:    fiber.StatusUnauthorized,
					Message: "Account is deactivated",
					Type:    "authentication",
				}
			}
			c.Locals(principalKey, types.PrincipalFromAccount(account))
		}
		return c.Next()
	}
}

func resolveAccount(c *fiber.Ctx, svc *services.Services) (*models.Account, error) {
	if raw, ok := bearer(c); ok {
		id, err := svc.Tokens.Parse(raw)
		if err != nil {
			return nil, err
		}
		return svc.Accounts.Load(c.UserContext(), id)
	}
	if svc.Sessions != nil {
		if cookie := c.Cookies(sessionCookie); cookie != "" {
			email, err := svc.Sessions.ValidateSession(cookie)
			if err != nil {
				return nil, err
			}
			return svc.Accounts.FindByEmail(c.UserContext(), email)
		}
	}
	return nil, nil
}

func bearer(c *fiber.Ctx) (string, bool) {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:]), true
	}
	return "", false
}

// PrincipalFrom returns the authenticated caller, if any.
func PrincipalFrom(c *fiber.Ctx) (types.Principal, bool) {
	p, ok := c.Locals(principalKey).(types.Principal)
	return p, ok
}

// SetPrincipal stores p for the rest of the request.
func SetPrincipal(c *fiber.Ctx, p types.Principal) {
	c.Locals(principalKey, p)
}

// RequireAuth rejects anonymous requests
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFrom(c); !ok {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authentication required",
				Type:    "authentication",
			}
		}
		return c.Next()
	}
}

// RequireStaff validates that the caller is an approved staff or admin account
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, models.Role.Elevated, "authorization.staff")
	}
}

// RequireAdmin validates that the caller is an approved admin account
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, func(r models.Role) bool { return r == models.RoleAdmin }, "authorization.admin")
	}
}

// authorize performs the role check
func authorize(c *fiber.Ctx, allowed func(models.Role) bool, errorType string) error {
	p, ok := PrincipalFrom(c)
	if !ok {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authentication required",
			Type:    errorType,
		}
	}
	if !p.IsApproved || !allowed(p.Role) {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Account " + strconv.FormatUint(p.AccountID, 10) + " is not allowed here",
			Type:    errorType,
		}
	}
	return c.Next()
}
