// borrow.go
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

// BorrowStatus is the state of a BorrowRecord.
type BorrowStatus string

const (
	BorrowPending  BorrowStatus = "pending"
	BorrowBorrowed BorrowStatus = "borrowed"
	BorrowOverdue  BorrowStatus = "overdue"
	BorrowReturned BorrowStatus = "returned"
	BorrowRejected BorrowStatus = "rejected"
)

// Open reports whether the record holds the document.
func (s BorrowStatus) Open() bool {
	return s == BorrowBorrowed || s == BorrowOverdue
}

// Terminal reports whether no further transition is possible.
func (s BorrowStatus) Terminal() bool {
	return s == BorrowReturned || s == BorrowRejected
}

// OpenStatuses lists the statuses that keep a document unavailable.
var OpenStatuses = []BorrowStatus{BorrowBorrowed, BorrowOverdue}

// BorrowRecord links an account to a document for a bounded window.
// BorrowedAt and DueAt are set once, when the record enters borrowed.
type BorrowRecord struct {
	ID           uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID    uint64       `gorm:"not null;index" json:"account_id"`
	DocumentID   uint64       `gorm:"not null;index" json:"document_id"`
	Status       BorrowStatus `gorm:"size:10;not null;index" json:"status"`
	Notes        string       `gorm:"size:500" json:"notes,omitempty"`
	RequestedAt  time.Time    `gorm:"not null" json:"requested_at"`
	BorrowedAt   *time.Time   `json:"borrowed_at,omitempty"`
	DueAt        *time.Time   `gorm:"index" json:"due_at,omitempty"`
	ReturnedAt   *time.Time   `json:"returned_at,omitempty"`
	ApprovedByID *uint64      `json:"approved_by_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName overrides the table name for BorrowRecord
func (BorrowRecord) TableName() string {
	return "borrow_records"
}
