// common.go
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
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/awilsontelary-hub/Academic-Library/internal/middleware"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// principal returns the caller, or the anonymous zero Principal.
func principal(c *fiber.Ctx) types.Principal {
	p, _ := middleware.PrincipalFrom(c)
	return p
}

// paramID parses a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, &types.ValidationError{
			Fields: map[string]string{name: "numeric"},
			Msg:    "invalid " + name + " '" + raw + "'",
		}
	}
	return id, nil
}

// queryUint parses an optional positive integer query parameter.
func queryUint(c *fiber.Ctx, name string) (uint64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &types.ValidationError{
			Fields: map[string]string{name: "numeric"},
			Msg:    "invalid " + name + " '" + raw + "'",
		}
	}
	return v, nil
}

// parsePage reads page and limit query parameters.
func parsePage(c *fiber.Ctx) services.Page {
	return services.Page{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
}

// parseBool reads an optional boolean query parameter. The second result is
// false when the parameter is absent.
func parseBool(c *fiber.Ctx, name string) (bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// parseBody decodes a JSON body into v.
func parseBody(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return types.Invalid("invalid request body: %v", err)
	}
	return nil
}

func clientInfo(c *fiber.Ctx) services.ClientInfo {
	return services.ClientInfo{IP: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
}
