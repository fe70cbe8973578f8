// ids.go
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
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/services"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

func newIdsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "Manage institutional identifiers",
	}
	cmd.AddCommand(newIdsGenerateCmd(a))
	cmd.AddCommand(newIdsImportCmd(a))
	cmd.AddCommand(newIdsExportCmd(a))
	return cmd
}

func newIdsGenerateCmd(a *app) *cobra.Command {
	var (
		in          services.GenerateInput
		accountType string
		expires     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate active identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.AccountType = models.AccountType(accountType)
			if expires != "" {
				t, err := time.Parse(time.RFC3339, expires)
				if err != nil {
					return fmt.Errorf("--expires: %w", err)
				}
				in.ExpiresAt = &t
			}
			recs, err := a.svc.Identities.Generate(cmd.Context(), types.System, in)
			if err != nil {
				return err
			}
			rows := make([][]string, len(recs))
			for i, r := range recs {
				rows[i] = []string{r.Identifier, string(r.AccountType), string(r.Status), r.Department}
			}
			return printOutput(cmd.OutOrStdout(), a.output, recs, []string{"identifier", "type", "status", "department"}, rows)
		},
	}
	cmd.Flags().IntVarP(&in.Count, "count", "n", 1, "How many identifiers, 1 to 100")
	cmd.Flags().StringVar(&accountType, "type", string(models.AccountTypeStudent), "Account type: student or staff")
	cmd.Flags().StringVar(&in.AcademicLevel, "level", "", "Academic level")
	cmd.Flags().StringVar(&in.Department, "department", "", "Department")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry as RFC3339")
	return cmd
}

func newIdsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import identifiers from a CSV file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			report, err := a.svc.Identities.Import(cmd.Context(), types.System, r)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(report.Errors))
			for _, e := range report.Errors {
				rows = append(rows, []string{fmt.Sprint(e.Row), e.Message})
			}
			if err := printOutput(cmd.OutOrStdout(), a.output, report, []string{"row", "error"}, rows); err != nil {
				return err
			}
			if a.output == "table" || a.output == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%d created, %d skipped, %d errors\n", report.Created, report.Skipped, len(report.Errors))
			}
			return nil
		},
	}
}

func newIdsExportCmd(a *app) *cobra.Command {
	var (
		status string
		unused bool
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export identifiers as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return a.svc.Identities.Export(cmd.Context(), types.System, w, services.IdentityFilter{
				Status: models.IdentityStatus(status),
				Unused: unused,
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Only this status: pending, active or revoked")
	cmd.Flags().BoolVar(&unused, "unused", false, "Only identifiers not yet registered")
	cmd.Flags().StringVarP(&out, "file", "f", "", "Write to this file instead of stdout")
	return cmd
}
