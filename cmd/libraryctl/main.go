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

// Command libraryctl runs maintenance tasks against the library database
// directly: migrations, seeding, the overdue sweep, statistics, administrator
// bootstrap and identity import/export.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/awilsontelary-hub/Academic-Library/internal/config"
	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/logging"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/storage"
)

var version = "dev"

// app is the state shared by every subcommand, opened in PersistentPreRunE.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	db     *gorm.DB
	svc    *services.Services
	output string
}

func (a *app) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	store, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		return fmt.Errorf("open file storage: %w", err)
	}
	a.cfg, a.log, a.db = cfg, logger, db
	a.svc = services.New(cfg, db, store, logger)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "libraryctl",
		Short: "Maintenance CLI for the academic library",
		Long: `libraryctl works on the library database directly, with the same
configuration as the server (environment variables, optionally from ENV_FILE).

Commands run as the system administrator.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "help", "version", "completion":
				return nil
			}
			if _, err := parseOutputFormat(a.output); err != nil {
				return err
			}
			return a.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format: table, json, yaml")

	root.AddCommand(newMigrateCmd(a))
	root.AddCommand(newSeedCmd(a))
	root.AddCommand(newSweepCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newCreateAdminCmd(a))
	root.AddCommand(newIdsCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
