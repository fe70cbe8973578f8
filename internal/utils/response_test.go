// response_test.go
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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&types.CustomError{Code: 418, Message: "teapot"}, 418},
		{fiber.NewError(fiber.StatusRequestEntityTooLarge, "too big"), 413},
		{&types.InvalidFileError{Rule: types.FileRuleSize}, 422},
		{types.NotFound("document", 1), 404},
		{types.ErrNotApproved, 403},
		{fmt.Errorf("%w: nope", types.ErrPermission), 403},
		{types.ErrUnauthenticated, 401},
		{types.ErrInvalidCredentials, 401},
		{types.ErrUnavailable, 409},
		{types.ErrBorrowLimitExceeded, 409},
		{types.ErrAlreadyReturned, 409},
		{types.ErrInvalidTransition, 409},
		{types.ErrConflict, 409},
		{types.Invalid("bad"), 400},
		{types.Infrastructure(errors.New("db down")), 500},
		{errors.New("anything else"), 500},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ErrorStatus(c.err), "%v", c.err)
	}
}

func TestErrorTypeNames(t *testing.T) {
	assert.Equal(t, "invalid_credentials", types.ErrorType(fmt.Errorf("login: %w", types.ErrInvalidCredentials)))
	assert.Equal(t, "unauthenticated", types.ErrorType(types.ErrUnauthenticated))
	assert.Equal(t, "borrow_limit", types.ErrorType(types.ErrBorrowLimitExceeded))
	assert.Equal(t, "file.size", types.ErrorType(&types.InvalidFileError{Rule: types.FileRuleSize}))
	assert.Equal(t, "infrastructure", types.ErrorType(errors.New("boom")))

	status, out := render(t, types.ErrInvalidCredentials)
	assert.Equal(t, 401, status)
	assert.Equal(t, "invalid_credentials", out.Type)
}

func render(t *testing.T, err error) (int, ErrorResponseStruct) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error { return HandleError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest("GET", "/x?y=1", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var out ErrorResponseStruct
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestHandleErrorEnvelope(t *testing.T) {
	status, body := render(t, types.ErrBorrowLimitExceeded)
	assert.Equal(t, 409, status)
	assert.Equal(t, 409, body.Status)
	assert.False(t, body.Ok)
	assert.Equal(t, "/x?y=1", body.URL)
	assert.Equal(t, "borrow_limit", body.Type)
	assert.Equal(t, types.ErrBorrowLimitExceeded.Error(), body.Message)
	assert.NotEmpty(t, body.Timestamp)
}

func TestHandleErrorHidesInfrastructure(t *testing.T) {
	status, body := render(t, types.Infrastructure(errors.New("dial tcp 10.0.0.5:5432: connection refused")))
	assert.Equal(t, 500, status)
	assert.Equal(t, "infrastructure", body.Type)
	assert.Equal(t, types.ErrInfrastructure.Error(), body.Message)
	assert.NotContains(t, body.Message, "10.0.0.5")
}

func TestHandleErrorValidationFields(t *testing.T) {
	status, body := render(t, &types.ValidationError{Fields: map[string]string{"rating": "max=5"}})
	assert.Equal(t, 400, status)
	assert.Equal(t, "validation", body.Type)
	assert.Equal(t, map[string]string{"rating": "max=5"}, body.Fields)

	status, body = render(t, &types.CustomError{Code: 401, Message: "Missing token", Type: "auth"})
	assert.Equal(t, 401, status)
	assert.Equal(t, "auth", body.Type)
	assert.Equal(t, "Missing token", body.Message)
}
