// main.go
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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/handlers"
	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/storage"
	"github.com/awilsontelary-hub/Academic-Library/internal/utils"

	_ "github.com/awilsontelary-hub/Academic-Library/docs/api" // Swagger docs
)

// @title Academic Library API
// @version 1.0.0
// @description Digital library service: institutional registration, catalog, borrowing and administration
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/awilsontelary-hub/Academic-Library

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	// Connect to database
	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	store, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		zlog.Fatal("Failed to open file storage", zap.Error(err))
	}

	svc := services.New(cfg, db, store, zlog)

	if cfg.NotifyWebhookURL != "" {
		if err := utils.PingWebhook(cfg.NotifyWebhookURL); err != nil {
			zlog.Warn("notification webhook unreachable, notifications will be dropped", zap.Error(err))
		}
	}

	var sweeper interface{ Stop() context.Context }
	if cfg.OverdueSweepSchedule != "" {
		c, err := services.StartSweepSchedule(cfg.OverdueSweepSchedule, svc.Ledger, zlog)
		if err != nil {
			zlog.Fatal("Failed to schedule overdue sweep", zap.Error(err))
		}
		sweeper = c
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(zlog),
		BodyLimit:    int(2*cfg.MaxUploadBytes) + 1<<20,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Api-Version",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("academic_library")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.Register(app, svc, zlog)

	// 404 handler
	app.Use(handlers.NotFound)

	if cfg.AuthMode == config.AuthModeAuthorizer {
		zlog.Info("Authorizer will be initialized on first authenticated request", zap.String("url", cfg.AuthzURL))
	}

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zlog.Info("Gracefully shutting down...")
		if sweeper != nil {
			<-sweeper.Stop().Done()
		}
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	zlog.Info("Starting server", zap.String("port", cfg.Port), zap.String("approval_mode", cfg.BorrowApprovalMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}

	zlog.Info("Server stopped")
}
