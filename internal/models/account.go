// account.go
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

package models

import "time"

// Role of an authenticated account.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Elevated reports whether the role is staff or admin.
func (r Role) Elevated() bool {
	return r == RoleStaff || r == RoleAdmin
}

// RoleFor maps an identity account type to the initial account role.
func RoleFor(t AccountType) Role {
	if t == AccountTypeStaff {
		return RoleStaff
	}
	return RoleStudent
}

// Account is an authenticated principal, linked 1:1 to an IdentityRecord.
type Account struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username         string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	PasswordHash     string    `gorm:"size:255;not null" json:"-"`
	IdentityRecordID uint64    `gorm:"not null;uniqueIndex" json:"identity_record_id"`
	Role             Role      `gorm:"size:10;not null;default:student" json:"role"`
	IsApproved       bool      `gorm:"not null;default:false" json:"is_approved"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	FirstName        string    `gorm:"size:100" json:"first_name,omitempty"`
	LastName         string    `gorm:"size:100" json:"last_name,omitempty"`
	Email            string    `gorm:"size:255;index" json:"email,omitempty"`
	Phone            string    `gorm:"size:40" json:"phone,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName overrides the table name for Account
func (Account) TableName() string {
	return "accounts"
}
