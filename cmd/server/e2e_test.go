// e2e_test.go
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

package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
)

type client struct {
	t       *testing.T
	baseURL string
	http    *http.Client
}

func (c *client) call(method, path, token string, body, out any) int {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+path, r)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *client) login(username string) string {
	c.t.Helper()
	var res struct {
		Token string `json:"token"`
	}
	status := c.call("POST", "/api/auth/login", "", map[string]string{"login": username, "password": testutil.Password}, &res)
	require.Equal(c.t, http.StatusOK, status)
	require.NotEmpty(c.t, res.Token)
	return res.Token
}

// TestBorrowReturnOverHTTP drives the built server image through a full loan.
func TestBorrowReturnOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	testutil.RequireIntegration(t)

	stack := testutil.StartStack(t, nil)
	db, err := database.Connect(stack.Postgres.Config(), nil)
	require.NoError(t, err)
	defer database.Close(db)

	staff := testutil.Account(t, db, models.RoleStaff, true)
	student := testutil.Account(t, db, models.RoleStudent, true)
	doc := testutil.Document(t, db, testutil.Category(t, db, ""), staff)

	c := &client{t: t, baseURL: stack.BaseURL, http: &http.Client{Timeout: 10 * time.Second}}
	staffToken := c.login(staff.Username)
	studentToken := c.login(student.Username)

	assert.Equal(t, http.StatusOK, c.call("GET", "/metrics", "", nil, nil))

	var rec models.BorrowRecord
	require.Equal(t, http.StatusCreated, c.call("POST", fmt.Sprintf("/api/documents/%d/borrow", doc.ID), studentToken, nil, &rec))
	assert.Equal(t, models.BorrowPending, rec.Status)

	require.Equal(t, http.StatusOK, c.call("POST", fmt.Sprintf("/api/borrows/%d/approve", rec.ID), staffToken, nil, &rec))
	assert.Equal(t, models.BorrowBorrowed, rec.Status)

	var got models.Document
	require.Equal(t, http.StatusOK, c.call("GET", fmt.Sprintf("/api/documents/%d", doc.ID), "", nil, &got))
	assert.False(t, got.IsAvailable)

	require.Equal(t, http.StatusOK, c.call("POST", fmt.Sprintf("/api/borrows/%d/return", rec.ID), studentToken, nil, &rec))
	assert.Equal(t, models.BorrowReturned, rec.Status)

	got = models.Document{}
	require.Equal(t, http.StatusOK, c.call("GET", fmt.Sprintf("/api/documents/%d", doc.ID), "", nil, &got))
	assert.True(t, got.IsAvailable)

	assert.Equal(t, http.StatusConflict, c.call("POST", fmt.Sprintf("/api/borrows/%d/return", rec.ID), studentToken, nil, nil))
}
