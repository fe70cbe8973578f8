// services.go
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

// Package services holds the library's domain operations: identity registry,
// accounts, catalog, borrowing ledger, search and the administrative console.
// Every operation takes the calling principal explicitly.
package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/storage"
)

// Services is the wired set of domain services.
type Services struct {
	Config     *config.Config
	Store      *storage.FileStore
	Cache      *ListingCache
	Activity   *Activity
	Identities *Identities
	Accounts   *Accounts
	Tokens     *TokenIssuer
	Sessions   SessionValidator
	Categories *Categories
	Catalog    *Catalog
	Ledger     *Ledger
	Search     *Search
	Reviews    *Reviews
	Stats      *Stats
	Console    *Console
}

// New wires every service from cfg.
func New(cfg *config.Config, db *gorm.DB, store *storage.FileStore, log *zap.Logger) *Services {
	base := Base{DB: db, Log: log}
	cache := NewListingCache(cfg.ListingCacheSize, cfg.ListingCacheTTL)
	activity := &Activity{Base: base}

	var notifier Notifier
	if cfg.NotifyWebhookURL != "" {
		notifier = &WebhookNotifier{URL: cfg.NotifyWebhookURL, Timeout: cfg.NotifyTimeout}
	}

	s := &Services{
		Config:   cfg,
		Store:    store,
		Cache:    cache,
		Activity: activity,
		Tokens:   &TokenIssuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL},
	}
	if cfg.AuthMode == config.AuthModeAuthorizer {
		s.Sessions = &Authorizer{URL: cfg.AuthzURL, ClientID: cfg.AuthzClientID, Log: log}
	}

	s.Identities = &Identities{Base: base, Activity: activity}
	s.Accounts = &Accounts{Base: base, Activity: activity, Tokens: s.Tokens}
	s.Categories = &Categories{Base: base, Activity: activity, Cache: cache}
	s.Ledger = &Ledger{
		Base:     base,
		Policy:   PolicyFromConfig(cfg),
		Activity: activity,
		Notifier: notifier,
		Cache:    cache,
	}
	s.Catalog = &Catalog{
		Base:     base,
		Store:    store,
		Rules:    FileRulesFromConfig(cfg),
		Ledger:   s.Ledger,
		Activity: activity,
		Cache:    cache,
	}
	s.Search = &Search{Base: base, Cache: cache}
	s.Reviews = &Reviews{Base: base, Activity: activity}
	s.Stats = &Stats{Base: base}
	s.Console = &Console{
		Base:       base,
		Accounts:   s.Accounts,
		Identities: s.Identities,
		Catalog:    s.Catalog,
		Ledger:     s.Ledger,
		Activity:   activity,
	}
	return s
}
