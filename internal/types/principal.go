// principal.go
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

package types

import "github.com/awilsontelary-hub/Academic-Library/internal/models"

// Principal is the authenticated caller, passed explicitly into every
// service operation.
type Principal struct {
	AccountID  uint64      `json:"account_id"`
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	IsApproved bool        `json:"is_approved"`
	IsActive   bool        `json:"is_active"`
}

// PrincipalFromAccount builds a Principal from a loaded account row.
func PrincipalFromAccount(a *models.Account) Principal {
	return Principal{
		AccountID:  a.ID,
		Username:   a.Username,
		Role:       a.Role,
		IsApproved: a.IsApproved,
		IsActive:   a.IsActive,
	}
}

// Elevated reports whether the principal is staff or admin.
func (p Principal) Elevated() bool {
	return p.Role.Elevated()
}

// IsAdmin reports whether the principal is an administrator.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// System is used for scheduled jobs and CLI maintenance.
var System = Principal{Username: "system", Role: models.RoleAdmin, IsApproved: true, IsActive: true}
