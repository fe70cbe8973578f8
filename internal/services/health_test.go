// health_test.go
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

package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)

	res := HealthCheck(context.Background(), f.cfg, f.db, f.store, nil)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "ok", res.Database)
	assert.Equal(t, "ok", res.Storage)
	assert.Empty(t, res.Authorizer)

	require.NoError(t, os.RemoveAll(f.store.Root()))
	res = HealthCheck(context.Background(), f.cfg, f.db, f.store, nil)
	assert.Equal(t, "unhealthy", res.Status)
	assert.Equal(t, "unavailable", res.Storage)
	assert.Contains(t, res.Details, "storage_error")

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	res = HealthCheck(context.Background(), f.cfg, f.db, nil, nil)
	assert.Equal(t, "unreachable", res.Database)
	assert.Contains(t, res.ErrorMessage, "Database ping failed")
}
