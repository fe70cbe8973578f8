// identity.go
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

// AccountType is the kind of institutional member an identifier was issued to.
type AccountType string

const (
	AccountTypeStudent AccountType = "student"
	AccountTypeStaff   AccountType = "staff"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	return t == AccountTypeStudent || t == AccountTypeStaff
}

// IdentifierPrefix is the leading digit of generated identifiers.
func (t AccountType) IdentifierPrefix() string {
	if t == AccountTypeStaff {
		return "3"
	}
	return "2"
}

// IdentityStatus moves forward only: pending -> active -> revoked.
type IdentityStatus string

const (
	IdentityPending IdentityStatus = "pending"
	IdentityActive  IdentityStatus = "active"
	IdentityRevoked IdentityStatus = "revoked"
)

func (s IdentityStatus) rank() int {
	switch s {
	case IdentityPending:
		return 0
	case IdentityActive:
		return 1
	case IdentityRevoked:
		return 2
	}
	return -1
}

// CanTransition reports whether s may move to next.
func (s IdentityStatus) CanTransition(next IdentityStatus) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to > from
}

// IdentityRecord is a pre-issued institutional identifier.
type IdentityRecord struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Identifier      string         `gorm:"size:20;not null;uniqueIndex" json:"identifier"`
	AccountType     AccountType    `gorm:"size:10;not null" json:"account_type"`
	Status          IdentityStatus `gorm:"size:10;not null;default:pending;index" json:"status"`
	AcademicLevel   string         `gorm:"size:40" json:"academic_level,omitempty"`
	Department      string         `gorm:"size:120" json:"department,omitempty"`
	FirstName       string         `gorm:"size:100" json:"first_name,omitempty"`
	LastName        string         `gorm:"size:100" json:"last_name,omitempty"`
	Email           string         `gorm:"size:255" json:"email,omitempty"`
	Phone           string         `gorm:"size:40" json:"phone,omitempty"`
	Notes           string         `gorm:"size:500" json:"notes,omitempty"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
	UsedAt          *time.Time     `json:"used_at,omitempty"`
	UsedByAccountID *uint64        `gorm:"index" json:"used_by_account_id,omitempty"`
	AddedByID       *uint64        `json:"added_by_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName overrides the table name for IdentityRecord
func (IdentityRecord) TableName() string {
	return "identity_records"
}

// Usable reports whether the identifier can back a new account at now.
func (r *IdentityRecord) Usable(now time.Time) bool {
	if r.Status != IdentityActive || r.UsedAt != nil {
		return false
	}
	return r.ExpiresAt == nil || now.Before(*r.ExpiresAt)
}
