// reviews_test.go
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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/testutil"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func TestReviewSubmitReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.document(t)
	alice := testutil.Principal(f.student(t))
	bob := testutil.Principal(f.student(t))

	first, err := f.svc.Reviews.Submit(ctx, alice, doc.ID, ReviewInput{Rating: 2, Comment: " meh "})
	require.NoError(t, err)
	assert.Equal(t, "meh", first.Comment)

	second, err := f.svc.Reviews.Submit(ctx, alice, doc.ID, ReviewInput{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "one review per account and document")
	assert.Equal(t, 4, second.Rating)

	_, err = f.svc.Reviews.Submit(ctx, bob, doc.ID, ReviewInput{Rating: 5})
	require.NoError(t, err)

	summary, err := f.svc.Reviews.ForDocument(ctx, doc.ID, Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)
	assert.Len(t, summary.Items, 2)

	empty, err := f.svc.Reviews.ForDocument(ctx, 9999, Page{})
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)
}

func TestReviewValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.document(t)
	student := testutil.Principal(f.student(t))

	_, err := f.svc.Reviews.Submit(ctx, student, doc.ID, ReviewInput{Rating: 6})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = f.svc.Reviews.Submit(ctx, student, 9999, ReviewInput{Rating: 3})
	var nf *types.NotFoundError
	assert.ErrorAs(t, err, &nf)

	unapproved := testutil.Principal(testutil.Account(t, f.db, models.RoleStudent, false))
	_, err = f.svc.Reviews.Submit(ctx, unapproved, doc.ID, ReviewInput{Rating: 3})
	assert.ErrorIs(t, err, types.ErrNotApproved)
}

func TestRecommendStaffOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.document(t)
	other := f.document(t)
	staff := testutil.Principal(f.staff(t))

	_, err := f.svc.Reviews.Recommend(ctx, testutil.Principal(f.student(t)), doc.ID, RecommendationInput{})
	assert.ErrorIs(t, err, types.ErrPermission)

	rec, err := f.svc.Reviews.Recommend(ctx, staff, doc.ID, RecommendationInput{Message: "Read chapter 3"})
	require.NoError(t, err)
	assert.Equal(t, staff.AccountID, rec.RecommenderID)
	f.clock.Advance(time.Minute)
	_, err = f.svc.Reviews.Recommend(ctx, staff, other.ID, RecommendationInput{})
	require.NoError(t, err)

	all, err := f.svc.Reviews.Recommendations(ctx, 0, Page{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	one, err := f.svc.Reviews.Recommendations(ctx, doc.ID, Page{})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Read chapter 3", one[0].Message)
}
