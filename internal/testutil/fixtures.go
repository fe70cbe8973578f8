// fixtures.go
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

package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Password is the plain text password of every fixture account.
const Password = "correct-horse"

var (
	seq          atomic.Uint64
	passwordOnce sync.Once
	passwordHash string
)

func next() uint64 {
	return seq.Add(1)
}

// Clock is a settable time source. Times are whole seconds in UTC so they
// survive a round trip through every driver.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts at 2026-03-02 09:00:00 UTC.
func NewClock() *Clock {
	return &Clock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)}
}

// Now returns the current fixed time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d).Truncate(time.Second)
	c.mu.Unlock()
}

// PasswordHash is a low-cost bcrypt hash of Password.
func PasswordHash() string {
	passwordOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		passwordHash = string(b)
	})
	return passwordHash
}

// Identity creates an identity record with a unique identifier.
func Identity(t *testing.T, db *gorm.DB, accountType models.AccountType, status models.IdentityStatus) *models.IdentityRecord {
	t.Helper()
	rec := &models.IdentityRecord{
		Identifier:  fmt.Sprintf("%s%07d", accountType.IdentifierPrefix(), next()),
		AccountType: accountType,
		Status:      status,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("Failed to create identity: %v", err)
	}
	return rec
}

// Account creates an active account with role and approval, backed by its own
// used identity record.
func Account(t *testing.T, db *gorm.DB, role models.Role, approved bool) *models.Account {
	t.Helper()
	accountType := models.AccountTypeStudent
	if role.Elevated() {
		accountType = models.AccountTypeStaff
	}
	rec := Identity(t, db, accountType, models.IdentityActive)
	n := next()
	account := &models.Account{
		Username:         fmt.Sprintf("%s%d", role, n),
		PasswordHash:     PasswordHash(),
		IdentityRecordID: rec.ID,
		Role:             role,
		IsApproved:       approved,
		IsActive:         true,
		Email:            fmt.Sprintf("%s%d@example.edu", role, n),
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}
	now := time.Now().UTC()
	if err := db.Model(rec).Updates(map[string]any{"used_at": now, "used_by_account_id": account.ID}).Error; err != nil {
		t.Fatalf("Failed to mark identity used: %v", err)
	}
	return account
}

// Principal is the principal of a fixture account.
func Principal(a *models.Account) types.Principal {
	return types.PrincipalFromAccount(a)
}

// Category creates a category. An empty name gets a unique one.
func Category(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	if name == "" {
		name = fmt.Sprintf("Category %d", next())
	}
	c := &models.Category{Name: name}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	return c
}

// DocumentOption adjusts a fixture document before it is saved.
type DocumentOption func(*models.Document)

// WithText sets the ranked text fields.
func WithText(title, author, description, code string) DocumentOption {
	return func(d *models.Document) {
		d.Title = title
		d.Author = author
		d.Description = description
		d.IdentifierCode = code
	}
}

// WithYear sets the publication year.
func WithYear(year int) DocumentOption {
	return func(d *models.Document) { d.PublicationYear = &year }
}

// WithCreatedAt sets the upload time.
func WithCreatedAt(at time.Time) DocumentOption {
	return func(d *models.Document) { d.CreatedAt = at }
}

// Unavailable marks the document as out on loan.
func Unavailable() DocumentOption {
	return func(d *models.Document) { d.IsAvailable = false }
}

// Document creates an available document in category, uploaded by uploader.
// No file is stored; FileKey points nowhere.
func Document(t *testing.T, db *gorm.DB, category *models.Category, uploader *models.Account, opts ...DocumentOption) *models.Document {
	t.Helper()
	n := next()
	d := &models.Document{
		Title:        fmt.Sprintf("Document %d", n),
		Author:       "Fixture Author",
		CategoryID:   category.ID,
		FileKey:      fmt.Sprintf("documents/fixture-%d.pdf", n),
		FileName:     fmt.Sprintf("fixture-%d.pdf", n),
		FileSize:     1024,
		ContentType:  "application/pdf",
		UploadedByID: uploader.ID,
		IsAvailable:  true,
	}
	for _, opt := range opts {
		opt(d)
	}
	available := d.IsAvailable
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("Failed to create document: %v", err)
	}
	// gorm skips false for a column with a default
	if !available {
		if err := db.Model(d).Update("is_available", false).Error; err != nil {
			t.Fatalf("Failed to mark document unavailable: %v", err)
		}
		d.IsAvailable = false
	}
	return d
}

// Borrow inserts a record directly, bypassing the ledger. Open statuses also
// mark the document unavailable.
func Borrow(t *testing.T, db *gorm.DB, account *models.Account, doc *models.Document, status models.BorrowStatus, due time.Time) *models.BorrowRecord {
	t.Helper()
	requested := due.Add(-14 * 24 * time.Hour)
	r := &models.BorrowRecord{
		AccountID:   account.ID,
		DocumentID:  doc.ID,
		Status:      status,
		RequestedAt: requested,
	}
	if status != models.BorrowPending && status != models.BorrowRejected {
		r.BorrowedAt = &requested
		r.DueAt = &due
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("Failed to create borrow record: %v", err)
	}
	if status.Open() {
		if err := db.Model(&models.Document{}).Where("id = ?", doc.ID).Update("is_available", false).Error; err != nil {
			t.Fatalf("Failed to mark document unavailable: %v", err)
		}
	}
	return r
}
