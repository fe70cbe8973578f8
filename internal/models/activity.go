// activity.go
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

// ActivityLog is an append-only audit trail of ledger and admin actions.
type ActivityLog struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID  *uint64   `gorm:"index" json:"account_id,omitempty"`
	Action     string    `gorm:"size:60;not null;index" json:"action"`
	EntityType string    `gorm:"size:40" json:"entity_type,omitempty"`
	EntityID   uint64    `json:"entity_id,omitempty"`
	Details    JSON      `json:"details"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for ActivityLog
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// DownloadEvent records one successful file retrieval.
type DownloadEvent struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID uint64    `gorm:"not null;index" json:"document_id"`
	AccountID  uint64    `gorm:"not null;index" json:"account_id"`
	Preview    bool      `gorm:"not null;default:false" json:"preview"`
	IPAddress  string    `gorm:"size:64" json:"ip_address,omitempty"`
	UserAgent  string    `gorm:"size:500" json:"user_agent,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for DownloadEvent
func (DownloadEvent) TableName() string {
	return "download_events"
}

// Review is one account's rating of a document.
type Review struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID uint64    `gorm:"not null;uniqueIndex:idx_review_document_account" json:"document_id"`
	AccountID  uint64    `gorm:"not null;uniqueIndex:idx_review_document_account" json:"account_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"size:2000" json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name for Review
func (Review) TableName() string {
	return "reviews"
}

// Recommendation is a staff pointer to a document.
type Recommendation struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID    uint64    `gorm:"not null;index" json:"document_id"`
	RecommenderID uint64    `gorm:"not null;index" json:"recommender_id"`
	Message       string    `gorm:"size:1000" json:"message,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name for Recommendation
func (Recommendation) TableName() string {
	return "recommendations"
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&IdentityRecord{},
		&Account{},
		&Category{},
		&Document{},
		&BorrowRecord{},
		&ActivityLog{},
		&DownloadEvent{},
		&Review{},
		&Recommendation{},
	}
}
