// routes.go
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

// Package handlers maps the HTTP API onto the domain services.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/middleware"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"
)

// Register mounts /health and every /api route on app.
func Register(app *fiber.App, svc *services.Services, log *zap.Logger) {
	cfg := svc.Config
	health := &HealthHandler{Svc: svc}
	auth := &AuthHandler{Svc: svc}
	docs := &DocumentHandler{Svc: svc}
	reviews := &ReviewHandler{Svc: svc}
	borrows := &BorrowHandler{Svc: svc}
	categories := &CategoryHandler{Svc: svc}
	admin := &AdminHandler{Svc: svc}

	app.Get("/health", health.Health)

	api := app.Group("/api", middleware.VersionMiddleware(), middleware.Authenticate(svc, log))

	api.Post("/auth/register", middleware.RateLimit(cfg.RegisterRateLimit, cfg.RegisterWindow, "register"), auth.Register)
	api.Post("/auth/login", middleware.RateLimit(cfg.LoginRateLimit, cfg.LoginWindow, "login"), auth.Login)
	api.Get("/auth/me", middleware.RequireAuth(), auth.Me)
	api.Patch("/auth/me", middleware.RequireAuth(), auth.UpdateMe)

	api.Get("/categories", categories.List)

	api.Get("/documents", docs.Search)
	api.Get("/documents/popular", docs.Popular)
	api.Get("/documents/:id", docs.Get)
	api.Get("/documents/:id/cover", docs.Cover)
	api.Get("/documents/:id/reviews", reviews.List)
	api.Post("/documents", middleware.RequireStaff(), docs.Upload)
	api.Put("/documents/:id", middleware.RequireStaff(), docs.Update)
	api.Delete("/documents/:id", middleware.RequireStaff(), docs.Delete)
	api.Get("/documents/:id/download", middleware.RequireAuth(), docs.Download)
	api.Get("/documents/:id/preview", middleware.RequireAuth(), docs.Preview)
	api.Post("/documents/:id/reviews", middleware.RequireAuth(), reviews.Submit)
	api.Post("/documents/:id/recommendations", middleware.RequireStaff(), reviews.Recommend)
	api.Post("/documents/:id/borrow", middleware.RequireAuth(), borrows.Request)
	api.Get("/recommendations", reviews.Recommendations)

	api.Get("/borrows", middleware.RequireAuth(), borrows.List)
	api.Get("/borrows/:id", middleware.RequireAuth(), borrows.Get)
	api.Post("/borrows/:id/return", middleware.RequireAuth(), borrows.Return)
	api.Post("/borrows/:id/approve", middleware.RequireStaff(), borrows.Approve)
	api.Post("/borrows/:id/reject", middleware.RequireStaff(), borrows.Reject)

	// Fiber group middleware applies to the whole prefix, so the admin
	// guards are attached per route.
	staff, adminOnly := middleware.RequireStaff(), middleware.RequireAdmin()
	adm := api.Group("/admin")
	adm.Get("/statistics", staff, admin.Statistics)
	adm.Get("/accounts", staff, admin.Accounts)
	adm.Post("/categories", staff, categories.Create)
	adm.Put("/categories/:id", staff, categories.Update)
	adm.Delete("/categories/:id", staff, categories.Delete)
	adm.Get("/activity", adminOnly, admin.Activity)
	adm.Post("/sweep", adminOnly, admin.Sweep)
	adm.Get("/commands", adminOnly, admin.Commands)
	adm.Post("/commands/:name", adminOnly, admin.Command)
	adm.Get("/identities", adminOnly, admin.Identities)
	adm.Post("/identities", adminOnly, admin.CreateIdentity)
	adm.Get("/identities/export", adminOnly, admin.ExportIdentities)
	adm.Post("/identities/import", adminOnly, admin.ImportIdentities)
	adm.Get("/documents/export", adminOnly, admin.ExportDocuments)
}

// NotFound is the fallback for unknown routes.
func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   "[404] Resource Not Found",
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "not_found",
	})
}

// ErrorHandler renders errors returned by middleware and handlers.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	log = logging.OrNop(log)
	return func(c *fiber.Ctx, err error) error {
		status := utils.ErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			var fe *fiber.Error
			var ce *types.CustomError
			if !errors.As(err, &fe) && !errors.As(err, &ce) {
				log.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("url", c.OriginalURL()),
					zap.Error(err))
			}
		}
		return utils.HandleError(c, err)
	}
}
