// errors_test.go
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

package database

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	mysqlerr "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func TestIsUniqueViolation(t *testing.T) {
	yes := []error{
		gorm.ErrDuplicatedKey,
		fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}),
		&mysqlerr.MySQLError{Number: 1062},
		errors.New("UNIQUE constraint failed: accounts.username"),
		errors.New("Cannot insert duplicate key row in object"),
	}
	for _, err := range yes {
		assert.True(t, IsUniqueViolation(err), "%v", err)
	}

	no := []error{
		nil,
		&pgconn.PgError{Code: "23503"},
		&mysqlerr.MySQLError{Number: 1213},
		errors.New("connection refused"),
	}
	for _, err := range no {
		assert.False(t, IsUniqueViolation(err), "%v", err)
	}
}

func TestIsTransient(t *testing.T) {
	yes := []error{
		driver.ErrBadConn,
		&pgconn.PgError{Code: "40001"},
		&pgconn.PgError{Code: "40P01"},
		&mysqlerr.MySQLError{Number: 1205},
		&mysqlerr.MySQLError{Number: 1213},
		errors.New("database is locked (5) (SQLITE_BUSY)"),
		errors.New("Transaction was deadlocked on lock resources"),
	}
	for _, err := range yes {
		assert.True(t, IsTransient(err), "%v", err)
	}

	no := []error{
		nil,
		&pgconn.PgError{Code: "23505"},
		&mysqlerr.MySQLError{Number: 1062},
		errors.New("syntax error"),
	}
	for _, err := range no {
		assert.False(t, IsTransient(err), "%v", err)
	}
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil))

	nf := types.NotFound("document", 3)
	assert.Same(t, nf, Classify(nf))

	assert.ErrorIs(t, Classify(gorm.ErrDuplicatedKey), types.ErrConflict)

	raw := errors.New("disk full")
	err := Classify(raw)
	assert.ErrorIs(t, err, types.ErrInfrastructure)
	assert.ErrorIs(t, err, raw)
	assert.Equal(t, err, Classify(err), "classifying twice is stable")
}
