// identity_csv.go
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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// CSVColumns is the identity export layout. Import accepts any subset in any
// order as long as identifier (or institutional_id) is present.
var CSVColumns = []string{
	"identifier", "account_type", "status", "first_name", "last_name", "email",
	"academic_level", "department", "created_at", "expires_at", "notes",
}

const maxImportRows = 5000

// ImportReport summarizes a CSV import.
type ImportReport struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors,omitempty"`
	Records []uint64   `json:"record_ids,omitempty"`
}

// RowError is one rejected CSV row. Row 1 is the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Export writes records matching f as CSV.
func (s *Identities) Export(ctx context.Context, p types.Principal, w io.Writer, f IdentityFilter) error {
	if !p.IsAdmin() {
		return types.ErrPermission
	}
	f.Page = Page{Limit: maxImportRows}
	recs, err := s.List(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVColumns); err != nil {
		return err
	}
	for _, r := range recs {
		expires := ""
		if r.ExpiresAt != nil {
			expires = r.ExpiresAt.UTC().Format(time.RFC3339)
		}
		if err := cw.Write([]string{
			r.Identifier, string(r.AccountType), string(r.Status), r.FirstName, r.LastName, r.Email,
			r.AcademicLevel, r.Department, r.CreatedAt.UTC().Format(time.RFC3339), expires, r.Notes,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import creates one record per CSV row. Existing identifiers are skipped and
// invalid rows are reported; neither stops the import.
func (s *Identities) Import(ctx context.Context, p types.Principal, r io.Reader) (*ImportReport, error) {
	if !p.IsAdmin() {
		return nil, types.ErrPermission
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.Invalid("csv: empty file")
	}
	if err != nil {
		return nil, types.Invalid("csv: %v", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := cols["identifier"]; !ok {
		if i, alias := cols["institutional_id"]; alias {
			cols["identifier"] = i
		} else {
			return nil, types.Invalid("csv: missing identifier column")
		}
	}

	report := &ImportReport{}
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: row, Message: err.Error()})
			continue
		}
		if row-1 > maxImportRows {
			return report, types.Invalid("csv: more than %d rows", maxImportRows)
		}
		get := func(name string) string {
			if i, ok := cols[name]; ok && i < len(fields) {
				return strings.TrimSpace(fields[i])
			}
			return ""
		}

		in := IdentityInput{
			Identifier:    get("identifier"),
			AccountType:   models.AccountType(strings.ToLower(get("account_type"))),
			Status:        models.IdentityStatus(strings.ToLower(get("status"))),
			AcademicLevel: get("academic_level"),
			Department:    get("department"),
			FirstName:     get("first_name"),
			LastName:      get("last_name"),
			Email:         get("email"),
			Notes:         get("notes"),
		}
		if in.Identifier == "" {
			continue
		}
		if in.AccountType == "" {
			in.AccountType = models.AccountTypeStudent
		}
		if v := get("expires_at"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				report.Errors = append(report.Errors, RowError{Row: row, Message: fmt.Sprintf("expires_at: %v", err)})
				continue
			}
			in.ExpiresAt = &t
		}
		if err := validateStruct(in); err != nil {
			report.Errors = append(report.Errors, RowError{Row: row, Message: err.Error()})
			continue
		}

		rec := in.record(p.AccountID)
		err = database.Transact(ctx, s.DB, func(tx *gorm.DB) error {
			return tx.Create(rec).Error
		})
		switch {
		case errors.Is(err, types.ErrConflict):
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Row: row, Message: fmt.Sprintf("identifier %q already exists", in.Identifier)})
		case err != nil:
			return report, err
		default:
			report.Created++
			report.Records = append(report.Records, rec.ID)
		}
	}

	s.Activity.Record(ctx, p, "identity.imported", "identity_record", 0, map[string]any{
		"created": report.Created,
		"skipped": report.Skipped,
		"errors":  len(report.Errors),
	})
	return report, nil
}
