// search.go
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
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
	"gorm.io/hints"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Field weights. Only the ordering title > author > description > code matters.
const (
	weightTitle       = 8
	weightAuthor      = 4
	weightDescription = 2
	weightCode        = 1

	maxTokens   = 8
	maxPageSize = 100
)

// rankedFields are the lower-cased search columns and their weights.
var rankedFields = []struct {
	column string
	weight int
}{
	{"search_title", weightTitle},
	{"search_author", weightAuthor},
	{"search_desc", weightDescription},
	{"search_code", weightCode},
}

// Search is the read-only query composer over the catalog.
type Search struct {
	Base
	Cache *ListingCache
}

// SearchQuery is a free-text query plus AND-ed filters.
type SearchQuery struct {
	Q                  string `json:"q"`
	CategoryID         uint64 `json:"category_id,omitempty"`
	Author             string `json:"author,omitempty"`
	YearFrom           int    `json:"year_from,omitempty"`
	IncludeUnavailable bool   `json:"all,omitempty"`
	Page
}

func (q SearchQuery) filtered() bool {
	return q.CategoryID != 0 || q.Author != "" || q.YearFrom != 0
}

// SearchHit is a document with its relevance score.
type SearchHit struct {
	models.Document
	Score int `json:"score"`
}

// SearchResult is one page of hits.
type SearchResult struct {
	Items []SearchHit `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// Tokenize lower-cases s and splits it on anything that is not a letter or digit.
// Duplicates are dropped.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
		if len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}

// Run executes q for principal p. Only available documents are returned
// unless a staff principal sets IncludeUnavailable. Matches are ordered by
// score, then title; an empty query lists newest uploads first.
func (s *Search) Run(ctx context.Context, p types.Principal, q SearchQuery) (*SearchResult, error) {
	start := time.Now()
	defer func() { searchDuration.Observe(time.Since(start).Seconds()) }()

	if q.YearFrom < 0 {
		return nil, types.Invalid("year_from must not be negative")
	}
	all := q.IncludeUnavailable && p.Elevated()
	limit := clampLimit(q.Limit, maxPageSize)
	page := max(q.Page.Page, 1)
	result := &SearchResult{Page: page, Limit: limit}

	tokens := Tokenize(q.Q)
	base := s.filters(ctx, q, all)

	if len(tokens) == 0 {
		return s.recent(ctx, base, q, all, result)
	}

	match, matchArgs := matchClause(tokens)
	if err := base.Session(&gorm.Session{}).Where(match, matchArgs...).Count(&result.Total).Error; err != nil {
		return nil, classify(err)
	}

	score, scoreArgs := scoreExpr(tokens)
	var ranked []struct {
		ID    uint64
		Score int
	}
	err := base.Session(&gorm.Session{}).
		Select("id, "+score+" AS score", scoreArgs...).
		Where(match, matchArgs...).
		Order("score DESC").Order("search_title ASC").Order("id ASC").
		Limit(limit).Offset((page - 1) * limit).
		Scan(&ranked).Error
	if err != nil {
		return nil, classify(err)
	}
	if len(ranked) == 0 {
		result.Items = []SearchHit{}
		return result, nil
	}

	ids := make([]uint64, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	var docs []models.Document
	if err := s.reader(ctx).Where("id IN ?", ids).Find(&docs).Error; err != nil {
		return nil, classify(err)
	}
	byID := make(map[uint64]models.Document, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	result.Items = make([]SearchHit, 0, len(ranked))
	for _, r := range ranked {
		if d, ok := byID[r.ID]; ok {
			result.Items = append(result.Items, SearchHit{Document: d, Score: r.Score})
		}
	}
	return result, nil
}

func (s *Search) filters(ctx context.Context, q SearchQuery, all bool) *gorm.DB {
	db := s.reader(ctx).Model(&models.Document{}).Clauses(hints.Comment("select", "catalog_search"))
	if !all {
		db = db.Where("is_available = ?", true)
	}
	if q.CategoryID != 0 {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if author := strings.TrimSpace(q.Author); author != "" {
		db = db.Where("search_author LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(author))+"%")
	}
	if q.YearFrom > 0 {
		db = db.Where("publication_year >= ?", q.YearFrom)
	}
	return db
}

// recent pages through the filtered set by upload time. The unfiltered
// first pages are served from the listing cache.
func (s *Search) recent(ctx context.Context, base *gorm.DB, q SearchQuery, all bool, result *SearchResult) (*SearchResult, error) {
	cacheKey := ""
	if !q.filtered() {
		cacheKey = fmt.Sprintf("recent:%t:%d:%d", all, result.Page, result.Limit)
	}

	var docs []models.Document
	cached := false
	if cacheKey != "" {
		docs, cached = s.Cache.Get(cacheKey)
	}

	if err := base.Session(&gorm.Session{}).Count(&result.Total).Error; err != nil {
		return nil, classify(err)
	}
	if !cached {
		err := base.Session(&gorm.Session{}).
			Order("created_at DESC").Order("id DESC").
			Limit(result.Limit).Offset((result.Page - 1) * result.Limit).
			Find(&docs).Error
		if err != nil {
			return nil, classify(err)
		}
		if cacheKey != "" {
			s.Cache.Add(cacheKey, docs)
		}
	}

	result.Items = make([]SearchHit, len(docs))
	for i := range docs {
		result.Items[i] = SearchHit{Document: docs[i]}
	}
	return result, nil
}

// matchClause keeps rows where any token occurs in any ranked field.
func matchClause(tokens []string) (string, []any) {
	var parts []string
	var args []any
	for _, t := range tokens {
		like := "%" + escapeLike(t) + "%"
		for _, f := range rankedFields {
			parts = append(parts, f.column+" LIKE ? ESCAPE '!'")
			args = append(args, like)
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// scoreExpr sums, per token, the weight of every ranked field containing it.
func scoreExpr(tokens []string) (string, []any) {
	var parts []string
	var args []any
	for _, t := range tokens {
		like := "%" + escapeLike(t) + "%"
		for _, f := range rankedFields {
			parts = append(parts, fmt.Sprintf("CASE WHEN %s LIKE ? ESCAPE '!' THEN %d ELSE 0 END", f.column, f.weight))
			args = append(args, like)
		}
	}
	return "(" + strings.Join(parts, " + ") + ")", args
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
