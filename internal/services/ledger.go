// ledger.go
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
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Ledger owns BorrowRecords and the Document.IsAvailable flag.
//
// A document is unavailable exactly when one borrowed or overdue record
// references it. Every transition into or out of an open status updates the
// flag in the same transaction, guarded by a compare-and-set on is_available.
type Ledger struct {
	Base
	Policy   Policy
	Activity *Activity
	Notifier Notifier
	Cache    *ListingCache
}

// RequestBorrow asks for document on behalf of p.
// Staff and admin borrows, and student borrows in auto approval mode, are
// issued immediately. Otherwise a pending record is created and the document
// stays available until staff approval.
func (l *Ledger) RequestBorrow(ctx context.Context, p types.Principal, documentID uint64) (*models.BorrowRecord, error) {
	if !p.IsApproved {
		borrowRequestsTotal.WithLabelValues(outcome(types.ErrNotApproved)).Inc()
		return nil, types.ErrNotApproved
	}

	var record *models.BorrowRecord
	err := database.Transact(ctx, l.DB, func(tx *gorm.DB) error {
		record = nil

		var doc models.Document
		if err := database.ForUpdate(tx).First(&doc, documentID).Error; err != nil {
			return missing(err, "document", documentID)
		}
		if !doc.IsAvailable {
			return types.ErrUnavailable
		}
		if !p.Elevated() {
			if err := l.checkLimit(tx, p.AccountID); err != nil {
				return err
			}
		}

		now := l.now()
		if l.requiresApproval(p) {
			var pending int64
			if err := tx.Model(&models.BorrowRecord{}).
				Where("account_id = ? AND document_id = ? AND status = ?", p.AccountID, doc.ID, models.BorrowPending).
				Count(&pending).Error; err != nil {
				return err
			}
			if pending > 0 {
				return fmt.Errorf("%w: a request for this document is already pending", types.ErrConflict)
			}
			record = &models.BorrowRecord{
				AccountID:   p.AccountID,
				DocumentID:  doc.ID,
				Status:      models.BorrowPending,
				RequestedAt: now,
			}
			return tx.Create(record).Error
		}

		if err := l.takeDocument(tx, doc.ID); err != nil {
			return err
		}
		due := now.Add(l.Policy.LoanPeriod)
		record = &models.BorrowRecord{
			AccountID:   p.AccountID,
			DocumentID:  doc.ID,
			Status:      models.BorrowBorrowed,
			RequestedAt: now,
			BorrowedAt:  &now,
			DueAt:       &due,
		}
		return tx.Create(record).Error
	})

	borrowRequestsTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	action := "borrow.issued"
	if record.Status == models.BorrowPending {
		action = "borrow.requested"
	}
	l.afterCommit(ctx, p, action, record)
	return record, nil
}

// Approve moves a pending request to borrowed. Availability and the
// borrower's limit are checked again; loan dates start now.
func (l *Ledger) Approve(ctx context.Context, p types.Principal, borrowID uint64) (*models.BorrowRecord, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}

	var record models.BorrowRecord
	err := database.Transact(ctx, l.DB, func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&record, borrowID).Error; err != nil {
			return missing(err, "borrow record", borrowID)
		}
		if record.Status != models.BorrowPending {
			return fmt.Errorf("%w: %s record cannot be approved", types.ErrInvalidTransition, record.Status)
		}

		var borrower models.Account
		if err := tx.Select("id", "role", "is_approved", "is_active").First(&borrower, record.AccountID).Error; err != nil {
			return missing(err, "account", record.AccountID)
		}
		if !borrower.IsActive {
			return fmt.Errorf("%w: borrower account is deactivated", types.ErrPermission)
		}
		if !borrower.IsApproved {
			return fmt.Errorf("%w: borrower account is not approved", types.ErrNotApproved)
		}

		var doc models.Document
		if err := database.ForUpdate(tx).First(&doc, record.DocumentID).Error; err != nil {
			return missing(err, "document", record.DocumentID)
		}
		if !doc.IsAvailable {
			return types.ErrUnavailable
		}

		if !borrower.Role.Elevated() {
			if err := l.checkLimit(tx, borrower.ID); err != nil {
				return err
			}
		}

		if err := l.takeDocument(tx, doc.ID); err != nil {
			return err
		}

		now := l.now()
		due := now.Add(l.Policy.LoanPeriod)
		approver := p.AccountID
		res := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND status = ?", record.ID, models.BorrowPending).
			Updates(map[string]any{
				"status":         models.BorrowBorrowed,
				"borrowed_at":    now,
				"due_at":         due,
				"approved_by_id": approver,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrInvalidTransition
		}
		record.Status = models.BorrowBorrowed
		record.BorrowedAt = &now
		record.DueAt = &due
		record.ApprovedByID = &approver
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.afterCommit(ctx, p, "borrow.approved", &record)
	return &record, nil
}

// Reject closes a pending request without touching the document.
func (l *Ledger) Reject(ctx context.Context, p types.Principal, borrowID uint64, reason string) (*models.BorrowRecord, error) {
	if err := requireStaff(p); err != nil {
		return nil, err
	}

	var record models.BorrowRecord
	err := database.Transact(ctx, l.DB, func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&record, borrowID).Error; err != nil {
			return missing(err, "borrow record", borrowID)
		}
		if record.Status != models.BorrowPending {
			return fmt.Errorf("%w: %s record cannot be rejected", types.ErrInvalidTransition, record.Status)
		}
		approver := p.AccountID
		res := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND status = ?", record.ID, models.BorrowPending).
			Updates(map[string]any{
				"status":         models.BorrowRejected,
				"notes":          truncate(reason, 500),
				"approved_by_id": approver,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrInvalidTransition
		}
		record.Status = models.BorrowRejected
		record.Notes = truncate(reason, 500)
		record.ApprovedByID = &approver
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.afterCommit(ctx, p, "borrow.rejected", &record)
	return &record, nil
}

// Return closes an open record and makes the document available again.
// Only the borrower or staff may return.
func (l *Ledger) Return(ctx context.Context, p types.Principal, borrowID uint64) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	err := database.Transact(ctx, l.DB, func(tx *gorm.DB) error {
		if err := database.ForUpdate(tx).First(&record, borrowID).Error; err != nil {
			return missing(err, "borrow record", borrowID)
		}
		if record.AccountID != p.AccountID && !p.Elevated() {
			return types.ErrPermission
		}
		if !record.Status.Open() {
			return types.ErrAlreadyReturned
		}

		now := l.now()
		res := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND status IN ?", record.ID, models.OpenStatuses).
			Updates(map[string]any{
				"status":      models.BorrowReturned,
				"returned_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrAlreadyReturned
		}
		if err := tx.Unscoped().Model(&models.Document{}).
			Where("id = ?", record.DocumentID).
			Update("is_available", true).Error; err != nil {
			return err
		}
		record.Status = models.BorrowReturned
		record.ReturnedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	returnsTotal.Inc()
	l.afterCommit(ctx, p, "borrow.returned", &record)
	return &record, nil
}

// BorrowFilter narrows List.
type BorrowFilter struct {
	All        bool
	Status     models.BorrowStatus
	DocumentID uint64
	Page
}

// List returns p's records, or every record for staff with All set.
func (l *Ledger) List(ctx context.Context, p types.Principal, f BorrowFilter) ([]models.BorrowRecord, error) {
	q := l.reader(ctx).Model(&models.BorrowRecord{})
	if !(f.All && p.Elevated()) {
		q = q.Where("account_id = ?", p.AccountID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DocumentID != 0 {
		q = q.Where("document_id = ?", f.DocumentID)
	}
	var records []models.BorrowRecord
	err := f.Page.apply(q.Order("requested_at DESC").Order("id DESC"), 100).Find(&records).Error
	return records, classify(err)
}

// Get loads one record. Students may only see their own.
func (l *Ledger) Get(ctx context.Context, p types.Principal, borrowID uint64) (*models.BorrowRecord, error) {
	var record models.BorrowRecord
	if err := l.reader(ctx).First(&record, borrowID).Error; err != nil {
		return nil, classify(missing(err, "borrow record", borrowID))
	}
	if record.AccountID != p.AccountID && !p.Elevated() {
		return nil, types.ErrPermission
	}
	return &record, nil
}

// HasOpenBorrow reports whether account currently holds document.
func (l *Ledger) HasOpenBorrow(ctx context.Context, accountID, documentID uint64) (bool, error) {
	var n int64
	err := l.reader(ctx).Model(&models.BorrowRecord{}).
		Where("account_id = ? AND document_id = ? AND status IN ?", accountID, documentID, models.OpenStatuses).
		Count(&n).Error
	return n > 0, classify(err)
}

func (l *Ledger) requiresApproval(p types.Principal) bool {
	return !p.Elevated() && l.Policy.ApprovalMode != config.ApprovalAuto
}

// checkLimit locks the borrower row and compares open records to the limit.
func (l *Ledger) checkLimit(tx *gorm.DB, accountID uint64) error {
	var account models.Account
	if err := database.ForUpdate(tx).Select("id").First(&account, accountID).Error; err != nil {
		return missing(err, "account", accountID)
	}

	statuses := []models.BorrowStatus{models.BorrowBorrowed}
	if l.Policy.OverdueCountsTowardLimit {
		statuses = append(statuses, models.BorrowOverdue)
	}
	var open int64
	if err := tx.Model(&models.BorrowRecord{}).
		Where("account_id = ? AND status IN ?", accountID, statuses).
		Count(&open).Error; err != nil {
		return err
	}
	if open >= int64(max(l.Policy.MaxConcurrentBorrows, 1)) {
		return types.ErrBorrowLimitExceeded
	}
	return nil
}

// takeDocument flips is_available true -> false; losing the race is Unavailable.
func (l *Ledger) takeDocument(tx *gorm.DB, documentID uint64) error {
	res := tx.Model(&models.Document{}).
		Where("id = ? AND is_available = ?", documentID, true).
		Update("is_available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrUnavailable
	}
	return nil
}

// afterCommit runs the side channels. None of them can fail the operation.
func (l *Ledger) afterCommit(ctx context.Context, p types.Principal, action string, r *models.BorrowRecord) {
	l.Cache.Purge()
	l.Activity.Record(ctx, p, action, "borrow_record", r.ID, map[string]any{
		"document_id": r.DocumentID,
		"account_id":  r.AccountID,
		"status":      r.Status,
	})
	ev := Event{
		Type:       action,
		AccountID:  r.AccountID,
		DocumentID: r.DocumentID,
		BorrowID:   r.ID,
		Status:     string(r.Status),
		At:         l.now(),
	}
	if r.DueAt != nil {
		ev.DueAt = *r.DueAt
	}
	notify(ctx, l.Notifier, l.Log, ev)
	l.log().Info(action,
		zap.Uint64("borrow_id", r.ID),
		zap.Uint64("document_id", r.DocumentID),
		zap.Uint64("account_id", r.AccountID),
		zap.Uint64("by", p.AccountID),
	)
}

func requireStaff(p types.Principal) error {
	if !p.IsApproved {
		return types.ErrNotApproved
	}
	if !p.Elevated() {
		return types.ErrPermission
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// cut on a rune boundary
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
