// catalog_test.go
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
	"bytes"
	"context"
	"encoding/csv"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func part(name string, content []byte) FilePart {
	return FilePart{Filename: name, Size: int64(len(content)), Reader: bytes.NewReader(content)}
}

func pngCover(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(600, 900, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func uploadInput(categoryID uint64) DocumentInput {
	year := 2024
	return DocumentInput{
		Title:           "Distributed Consensus",
		Author:          "L. Lamport",
		IdentifierCode:  "CS-101",
		Description:     "Notes on Paxos",
		PublicationYear: &year,
		CategoryID:      categoryID,
	}
}

func blobCount(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	require.NoError(t, err)
	return n
}

func TestUploadValidatesFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff := testutil.Principal(f.staff(t))
	cat := testutil.Category(t, f.db, "")

	_, err := f.svc.Catalog.Upload(ctx, staff, uploadInput(cat.ID), part("malware.exe", []byte("MZ")), nil)
	var inv *types.InvalidFileError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, types.FileRuleExtension, inv.Rule)

	big := FilePart{Filename: "big.pdf", Size: 15 << 20, Reader: strings.NewReader("x")}
	_, err = f.svc.Catalog.Upload(ctx, staff, uploadInput(cat.ID), big, nil)
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, types.FileRuleSize, inv.Rule)

	cover := part("cover.bmp", []byte("BM"))
	_, err = f.svc.Catalog.Upload(ctx, staff, uploadInput(cat.ID), part("ok.pdf", []byte("%PDF")), &cover)
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, types.FileRuleExtension, inv.Rule)

	assert.Zero(t, blobCount(t, f.store.Root()), "rejected uploads leave nothing behind")
}

func TestUploadCountsActualBytes(t *testing.T) {
	f := newFixture(t)
	f.svc.Catalog.Rules.MaxBytes = 1024
	staff := testutil.Principal(f.staff(t))
	cat := testutil.Category(t, f.db, "")

	lying := FilePart{Filename: "small.pdf", Size: 10, Reader: bytes.NewReader(make([]byte, 4096))}
	_, err := f.svc.Catalog.Upload(context.Background(), staff, uploadInput(cat.ID), lying, nil)
	var inv *types.InvalidFileError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, types.FileRuleSize, inv.Rule)
	assert.Zero(t, blobCount(t, f.store.Root()))
}

func TestUploadThesis(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staffAccount := f.staff(t)
	cat := testutil.Category(t, f.db, "")
	content := bytes.Repeat([]byte("a"), 1<<20)
	cover := part("cover.png", pngCover(t))

	doc, err := f.svc.Catalog.Upload(ctx, testutil.Principal(staffAccount), uploadInput(cat.ID), part("thesis.pdf", content), &cover)
	require.NoError(t, err)
	assert.NotZero(t, doc.ID)
	assert.True(t, doc.IsAvailable)
	assert.Equal(t, int64(1<<20), doc.FileSize)
	assert.Equal(t, "thesis.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, staffAccount.ID, doc.UploadedByID)
	assert.Zero(t, doc.DownloadCount)
	assert.True(t, doc.HasCover())
	require.NotEmpty(t, doc.ThumbnailKey)
	assert.True(t, f.store.Exists(doc.FileKey))

	thumb, err := f.svc.Catalog.Open(ctx, types.Principal{}, doc.ID, AssetThumbnail, ClientInfo{})
	require.NoError(t, err)
	defer thumb.Body.Close()
	img, err := imaging.Decode(thumb.Body)
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), thumbnailWidth)
	assert.LessOrEqual(t, img.Bounds().Dy(), thumbnailHeight)
}

func TestUploadPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cat := testutil.Category(t, f.db, "")

	student := testutil.Principal(f.student(t))
	_, err := f.svc.Catalog.Upload(ctx, student, uploadInput(cat.ID), part("a.pdf", []byte("x")), nil)
	assert.ErrorIs(t, err, types.ErrPermission)

	unapproved := testutil.Principal(testutil.Account(t, f.db, models.RoleStaff, false))
	_, err = f.svc.Catalog.Upload(ctx, unapproved, uploadInput(cat.ID), part("a.pdf", []byte("x")), nil)
	assert.ErrorIs(t, err, types.ErrPermission)

	staff := testutil.Principal(f.staff(t))
	_, err = f.svc.Catalog.Upload(ctx, staff, uploadInput(9999), part("a.pdf", []byte("x")), nil)
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)

	in := uploadInput(cat.ID)
	in.Title = ""
	_, err = f.svc.Catalog.Upload(ctx, staff, in, part("a.pdf", []byte("x")), nil)
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
}

func uploaded(t *testing.T, f *fixture, name string, content []byte) *models.Document {
	t.Helper()
	cat := testutil.Category(t, f.db, "")
	doc, err := f.svc.Catalog.Upload(context.Background(), testutil.Principal(f.staff(t)), uploadInput(cat.ID), part(name, content), nil)
	require.NoError(t, err)
	return doc
}

func TestDownloadAccessAndCounting(t *testing.T) {
	f := newFixture(t, autoApproval)
	ctx := context.Background()
	doc := uploaded(t, f, "notes.pdf", []byte("%PDF-1.7 body"))
	studentAccount := f.student(t)
	student := testutil.Principal(studentAccount)
	client := ClientInfo{IP: "10.0.0.7", UserAgent: strings.Repeat("u", 800)}

	_, err := f.svc.Catalog.Open(ctx, student, doc.ID, AssetFile, client)
	assert.ErrorIs(t, err, types.ErrPermission, "students need an open borrow")
	assert.Zero(t, f.reloadDocument(t, doc.ID).DownloadCount)

	_, err = f.svc.Ledger.RequestBorrow(ctx, student, doc.ID)
	require.NoError(t, err)

	for i := int64(1); i <= 2; i++ {
		fh, err := f.svc.Catalog.Open(ctx, student, doc.ID, AssetFile, client)
		require.NoError(t, err)
		body, err := io.ReadAll(fh.Body)
		require.NoError(t, fh.Body.Close())
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 body", string(body))
		assert.Equal(t, "notes.pdf", fh.Filename)
		assert.Equal(t, i, f.reloadDocument(t, doc.ID).DownloadCount)
	}

	var events []models.DownloadEvent
	require.NoError(t, f.db.Where("document_id = ?", doc.ID).Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, studentAccount.ID, events[0].AccountID)
	assert.Equal(t, "10.0.0.7", events[0].IPAddress)
	assert.Len(t, events[0].UserAgent, userAgentMax)

	staff := testutil.Principal(f.staff(t))
	fh, err := f.svc.Catalog.Open(ctx, staff, doc.ID, AssetPreview, ClientInfo{})
	require.NoError(t, err, "staff retrieve without borrowing")
	fh.Body.Close()
	assert.Equal(t, int64(3), f.reloadDocument(t, doc.ID).DownloadCount)

	unapproved := testutil.Principal(testutil.Account(t, f.db, models.RoleStudent, false))
	_, err = f.svc.Catalog.Open(ctx, unapproved, doc.ID, AssetFile, ClientInfo{})
	assert.ErrorIs(t, err, types.ErrNotApproved)
}

func TestPreviewRestrictedToPreviewableTypes(t *testing.T) {
	f := newFixture(t)
	doc := uploaded(t, f, "draft.docx", []byte("PK"))

	_, err := f.svc.Catalog.Open(context.Background(), testutil.Principal(f.staff(t)), doc.ID, AssetPreview, ClientInfo{})
	var inv *types.InvalidFileError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, types.FileRuleExtension, inv.Rule)

	_, err = f.svc.Catalog.Open(context.Background(), types.Principal{}, doc.ID, AssetCover, ClientInfo{})
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf, "no cover uploaded")
}

func TestRecordDownloadUnknownDocument(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Catalog.RecordDownload(context.Background(), testutil.Principal(f.staff(t)), 4242, false, ClientInfo{})
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestDeleteDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff := testutil.Principal(f.staff(t))
	student := f.student(t)
	doc := f.document(t)

	rec := testutil.Borrow(t, f.db, student, doc, models.BorrowBorrowed, f.clock.Now().Add(time.Hour))
	err := f.svc.Catalog.Delete(ctx, staff, doc.ID)
	assert.ErrorIs(t, err, types.ErrConflict)

	_, err = f.svc.Ledger.Return(ctx, testutil.Principal(student), rec.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Catalog.Delete(ctx, testutil.Principal(student), doc.ID), types.ErrPermission)
	require.NoError(t, f.svc.Catalog.Delete(ctx, staff, doc.ID))

	_, err = f.svc.Catalog.Get(ctx, doc.ID)
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.True(t, f.reloadDocument(t, doc.ID).DeletedAt.Valid, "soft delete keeps the row")
}

func TestPopularUsesCacheAndPurges(t *testing.T) {
	f := newFixture(t, autoApproval)
	ctx := context.Background()
	a := f.document(t)
	b := f.document(t)
	require.NoError(t, f.db.Model(a).Update("download_count", 5).Error)
	require.NoError(t, f.db.Model(b).Update("download_count", 9).Error)

	docs, err := f.svc.Catalog.Popular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, b.ID, docs[0].ID)
	assert.Equal(t, 1, f.svc.Cache.Len())

	_, err = f.svc.Ledger.RequestBorrow(ctx, testutil.Principal(f.student(t)), b.ID)
	require.NoError(t, err)
	assert.Zero(t, f.svc.Cache.Len(), "a borrow purges cached listings")

	docs, err = f.svc.Catalog.Popular(ctx, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, a.ID, docs[0].ID)
}

func strPtr(s string) *string { return &s }

func TestUpdateDocumentMetadata(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff := testutil.Principal(f.staff(t))
	doc := f.document(t, testutil.WithText("Old Title", "Old Author", "old", ""))
	target := testutil.Category(t, f.db, "Mathematics")

	_, err := f.svc.Search.Run(ctx, types.Principal{}, SearchQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, f.svc.Cache.Len())

	year := 1999
	got, err := f.svc.Catalog.Update(ctx, staff, doc.ID, DocumentUpdate{
		Title:           strPtr("  Topology  "),
		PublicationYear: &year,
		CategoryID:      &target.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Topology", got.Title)
	assert.Equal(t, "Old Author", got.Author, "omitted fields are kept")
	assert.Equal(t, target.ID, got.CategoryID)
	require.NotNil(t, got.PublicationYear)
	assert.Equal(t, 1999, *got.PublicationYear)
	assert.Zero(t, f.svc.Cache.Len(), "an edit purges cached listings")

	res, err := f.svc.Search.Run(ctx, types.Principal{}, SearchQuery{Q: "topology"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{doc.ID}, hitIDs(res), "search sees the new title")
	res, err = f.svc.Search.Run(ctx, types.Principal{}, SearchQuery{Q: "title"})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestUpdateDocumentRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	staff := testutil.Principal(f.staff(t))
	doc := f.document(t)

	_, err := f.svc.Catalog.Update(ctx, testutil.Principal(f.student(t)), doc.ID, DocumentUpdate{Title: strPtr("x")})
	assert.ErrorIs(t, err, types.ErrPermission)

	_, err = f.svc.Catalog.Update(ctx, staff, doc.ID, DocumentUpdate{Title: strPtr("   ")})
	assert.ErrorIs(t, err, types.ErrValidation)

	year := 12
	_, err = f.svc.Catalog.Update(ctx, staff, doc.ID, DocumentUpdate{PublicationYear: &year})
	var ve *types.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "gte=1000", ve.Fields["publication_year"])

	missingCategory := uint64(9999)
	_, err = f.svc.Catalog.Update(ctx, staff, doc.ID, DocumentUpdate{CategoryID: &missingCategory})
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = f.svc.Catalog.Update(ctx, staff, 9999, DocumentUpdate{Title: strPtr("x")})
	assert.ErrorAs(t, err, &nf)

	assert.Equal(t, doc.Title, f.reloadDocument(t, doc.ID).Title)
}

func TestExportDocuments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := testutil.Principal(f.admin(t))
	uploader := f.staff(t)
	physics := testutil.Category(t, f.db, "Physics")
	history := testutil.Category(t, f.db, "History")
	a := testutil.Document(t, f.db, physics, uploader, testutil.WithText("Optics, Vol. 1", "Newton", "", "PH-1"), testutil.WithYear(1704))
	testutil.Document(t, f.db, history, uploader, testutil.WithText("Histories", "Herodotus", "", ""))
	gone := testutil.Document(t, f.db, physics, uploader)
	require.NoError(t, f.svc.Catalog.Delete(ctx, admin, gone.ID))

	var buf bytes.Buffer
	require.NoError(t, f.svc.Catalog.Export(ctx, admin, &buf, DocumentExportFilter{}))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two live documents")
	assert.Equal(t, DocumentCSVColumns, rows[0])
	assert.Equal(t, []string{"Optics, Vol. 1", "Newton", "PH-1", "Physics", uploader.Username, "1704"}, rows[1][1:7])
	assert.Equal(t, "true", rows[1][9])

	buf.Reset()
	require.NoError(t, f.svc.Catalog.Export(ctx, admin, &buf, DocumentExportFilter{CategoryID: physics.ID}))
	rows, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, a.Title, rows[1][1])

	assert.ErrorIs(t, f.svc.Catalog.Export(ctx, testutil.Principal(uploader), io.Discard, DocumentExportFilter{}), types.ErrPermission)
}
