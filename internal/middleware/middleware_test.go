// middleware_test.go
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
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

func newApp(p *types.Principal, guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.HandleError})
	app.Get("/", func(c *fiber.Ctx) error {
		if p != nil {
			SetPrincipal(c, *p)
		}
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func status(t *testing.T, app *fiber.App) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRoleGuards(t *testing.T) {
	student := types.Principal{AccountID: 1, Role: models.RoleStudent, IsApproved: true}
	staff := types.Principal{AccountID: 2, Role: models.RoleStaff, IsApproved: true}
	pendingStaff := types.Principal{AccountID: 3, Role: models.RoleStaff}
	admin := types.Principal{AccountID: 4, Role: models.RoleAdmin, IsApproved: true}

	cases := []struct {
		name  string
		p     *types.Principal
		guard fiber.Handler
		want  int
	}{
		{"auth anonymous", nil, RequireAuth(), 401},
		{"auth student", &student, RequireAuth(), 204},
		{"staff anonymous", nil, RequireStaff(), 401},
		{"staff student", &student, RequireStaff(), 403},
		{"staff unapproved", &pendingStaff, RequireStaff(), 403},
		{"staff staff", &staff, RequireStaff(), 204},
		{"staff admin", &admin, RequireStaff(), 204},
		{"admin staff", &staff, RequireAdmin(), 403},
		{"admin admin", &admin, RequireAdmin(), 204},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, status(t, newApp(c.p, c.guard)))
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := newApp(nil, RateLimit(2, time.Minute, "test"))
	assert.Equal(t, 204, status(t, app))
	assert.Equal(t, 204, status(t, app))
	assert.Equal(t, 429, status(t, app))

	open := newApp(nil, RateLimit(0, time.Minute, "off"))
	for range 5 {
		assert.Equal(t, 204, status(t, open))
	}
}

func TestVersionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", VersionMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	for header, want := range map[string]string{"": APIVersion, "1": APIVersion, "1.0": APIVersion, "2.0.0": "2.0.0"} {
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("X-Api-Version", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, APIVersion, resp.Header.Get("X-Api-Version"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, want, string(body))
	}
}

func TestBearer(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		raw, ok := bearer(c)
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.SendString(raw)
	})

	for header, want := range map[string]int{"Bearer abc": 200, "bearer abc": 200, "Basic abc": 204, "Bearer": 204} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, header)
	}
}
