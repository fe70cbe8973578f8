// maintenance.go
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
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/data"
	"github.com/awilsontelary-hub/Academic-Library/internal/database"
	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.AutoMigrate(a.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			a.log.Info("schema migrated", zap.String("type", a.cfg.DBType))
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default categories",
		Long:  "Insert the embedded default categories. Existing names are left alone.",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := data.SeedCategories()
			if err != nil {
				return err
			}
			inputs := make([]services.CategoryInput, len(seed))
			for i, c := range seed {
				inputs[i] = services.CategoryInput{Name: c.Name, Description: c.Description}
			}
			n, err := a.svc.Categories.Seed(cmd.Context(), inputs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d categories inserted\n", n, len(inputs))
			return nil
		},
	}
}

func newSweepCmd(a *app) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark borrowed records past their due date as overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at: %w", err)
				}
				now = t
			}
			n, err := a.svc.Ledger.SweepOverdue(cmd.Context(), now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d records marked overdue\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Sweep as of this RFC3339 time instead of now")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print library statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.svc.Stats.Collect(cmd.Context(), types.System)
			if err != nil {
				return err
			}
			rows := [][]string{
				{"documents", itoa(st.Documents)},
				{"available", itoa(st.Available)},
				{"accounts", itoa(st.Accounts)},
				{"pending_accounts", itoa(st.PendingAccounts)},
				{"downloads", itoa(st.Downloads)},
				{"downloads_last_30_days", itoa(st.RecentDownloads)},
				{"borrows", itoa(st.Borrows)},
				{"open_borrows", itoa(st.OpenBorrows)},
				{"overdue_borrows", itoa(st.OverdueBorrows)},
				{"pending_borrows", itoa(st.PendingBorrows)},
			}
			roles := make([]string, 0, len(st.AccountsByRole))
			for r := range st.AccountsByRole {
				roles = append(roles, string(r))
			}
			sort.Strings(roles)
			for _, r := range roles {
				rows = append(rows, []string{"accounts." + r, itoa(st.AccountsByRole[models.Role(r)])})
			}
			for _, c := range st.TopCategories {
				rows = append(rows, []string{"category." + c.Name, itoa(c.Documents)})
			}
			return printOutput(cmd.OutOrStdout(), a.output, st, []string{"metric", "value"}, rows)
		},
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
