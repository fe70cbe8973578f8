// fixture_test.go
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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/storage"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
)

type fixture struct {
	db    *gorm.DB
	clock *testutil.Clock
	store *storage.FileStore
	cfg   *config.Config
	svc   *Services
}

func testConfig(storageDir string) *config.Config {
	return &config.Config{
		DBType:                   "sqlite-pure",
		DBDatabase:               ":memory:",
		AuthMode:                 config.AuthModeToken,
		JWTSecret:                "test-secret",
		JWTTTL:                   time.Hour,
		LoanPeriod:               14 * 24 * time.Hour,
		MaxConcurrentBorrows:     3,
		BorrowApprovalMode:       config.ApprovalStaff,
		OverdueCountsTowardLimit: true,
		StorageDir:               storageDir,
		MaxUploadBytes:           10 << 20,
		DocumentExtensions:       []string{"pdf", "doc", "docx", "txt"},
		CoverExtensions:          []string{"jpg", "jpeg", "png", "gif"},
		PreviewExtensions:        []string{"pdf", "jpg", "jpeg", "png", "txt"},
		ListingCacheSize:         128,
		ListingCacheTTL:          30 * time.Second,
	}
}

func newFixture(t *testing.T, opts ...func(*config.Config)) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := testConfig(dir)
	for _, opt := range opts {
		opt(cfg)
	}
	db := testutil.NewDB(t)
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)

	f := &fixture{db: db, clock: testutil.NewClock(), store: store, cfg: cfg}
	f.svc = New(cfg, db, store, zap.NewNop())

	now := f.clock.Now
	for _, b := range []*Base{
		&f.svc.Activity.Base, &f.svc.Identities.Base, &f.svc.Accounts.Base,
		&f.svc.Categories.Base, &f.svc.Ledger.Base, &f.svc.Catalog.Base,
		&f.svc.Search.Base, &f.svc.Reviews.Base, &f.svc.Stats.Base, &f.svc.Console.Base,
	} {
		b.Clock = now
	}
	f.svc.Tokens.Clock = now
	f.svc.Accounts.PasswordCost = bcrypt.MinCost
	return f
}

func autoApproval(cfg *config.Config) {
	cfg.BorrowApprovalMode = config.ApprovalAuto
}

func (f *fixture) student(t *testing.T) *models.Account {
	return testutil.Account(t, f.db, models.RoleStudent, true)
}

func (f *fixture) staff(t *testing.T) *models.Account {
	return testutil.Account(t, f.db, models.RoleStaff, true)
}

func (f *fixture) admin(t *testing.T) *models.Account {
	return testutil.Account(t, f.db, models.RoleAdmin, true)
}

func (f *fixture) document(t *testing.T, opts ...testutil.DocumentOption) *models.Document {
	t.Helper()
	cat := testutil.Category(t, f.db, "")
	uploader := testutil.Account(t, f.db, models.RoleStaff, true)
	return testutil.Document(t, f.db, cat, uploader, opts...)
}

func (f *fixture) reloadDocument(t *testing.T, id uint64) *models.Document {
	t.Helper()
	var doc models.Document
	require.NoError(t, f.db.Unscoped().First(&doc, id).Error)
	return &doc
}

// requireAvailabilityInvariant checks that a document is unavailable exactly
// when one open borrow references it.
func (f *fixture) requireAvailabilityInvariant(t *testing.T) {
	t.Helper()
	var docs []models.Document
	require.NoError(t, f.db.Unscoped().Find(&docs).Error)
	for _, d := range docs {
		var open int64
		require.NoError(t, f.db.Model(&models.BorrowRecord{}).
			Where("document_id = ? AND status IN ?", d.ID, models.OpenStatuses).
			Count(&open).Error)
		require.LessOrEqual(t, open, int64(1), "document %d has %d open borrows", d.ID, open)
		require.Equal(t, open == 0, d.IsAvailable, "document %d availability out of sync", d.ID)
	}
}

// recordingNotifier keeps every event and can be told to fail.
type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	fail   bool
}

func (n *recordingNotifier) Notify(_ context.Context, ev Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	if n.fail {
		return errors.New("webhook down")
	}
	return nil
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, ev := range n.events {
		out[i] = ev.Type
	}
	return out
}
