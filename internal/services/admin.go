// admin.go
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
	"encoding/json"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/awilsontelary-hub/Academic-Library/internal/models"
	"github.com/awilsontelary-hub/Academic-Library/internal/types"
)

// Console runs the named administrative commands.
type Console struct {
	Base
	Accounts   *Accounts
	Identities *Identities
	Catalog    *Catalog
	Ledger     *Ledger
	Activity   *Activity
}

// CommandResult reports what a command changed. Failures carry the ids that
// could not be processed; they do not fail the command.
type CommandResult struct {
	Command  string           `json:"command"`
	Affected int              `json:"affected"`
	Failures []CommandFailure `json:"failures"`
}

// CommandFailure is one item a command skipped.
type CommandFailure struct {
	ID    uint64 `json:"id"`
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Command is one administrative operation with its own input shape.
type Command interface {
	run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error
}

// commands is the closed set of command names.
var commands = map[string]func() Command{
	"approve_accounts":    func() Command { return &ApproveAccounts{} },
	"deactivate_accounts": func() Command { return &DeactivateAccounts{} },
	"activate_identities": func() Command { return &ActivateIdentities{} },
	"revoke_identities":   func() Command { return &RevokeIdentities{} },
	"generate_identities": func() Command { return &GenerateIdentities{} },
	"delete_documents":    func() Command { return &DeleteDocuments{} },
	"approve_borrows":     func() Command { return &ApproveBorrows{} },
	"mark_returned":       func() Command { return &MarkReturned{} },
}

// CommandNames lists the known commands, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Run decodes body into the input of command name, validates it and runs it.
func (c *Console) Run(ctx context.Context, p types.Principal, name string, body []byte) (*CommandResult, error) {
	if !p.IsApproved {
		return nil, types.ErrNotApproved
	}
	if !p.IsAdmin() {
		return nil, types.ErrPermission
	}
	newCmd, ok := commands[name]
	if !ok {
		return nil, &types.ValidationError{
			Fields: map[string]string{"command": "oneof"},
			Msg:    fmt.Sprintf("unknown command %q", name),
		}
	}

	cmd := newCmd()
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cmd); err != nil {
		return nil, types.Invalid("%s: %v", name, err)
	}
	if err := validateStruct(cmd); err != nil {
		return nil, err
	}

	result := &CommandResult{Command: name, Failures: []CommandFailure{}}
	if err := cmd.run(ctx, c, p, result); err != nil {
		return nil, err
	}
	c.Activity.Record(ctx, p, "admin."+name, "command", 0, map[string]any{
		"affected": result.Affected,
		"failures": len(result.Failures),
	})
	c.log().Info("admin command", zap.String("command", name), zap.Int("affected", result.Affected),
		zap.Int("failures", len(result.Failures)), zap.Uint64("by", p.AccountID))
	return result, nil
}

// each applies fn to every id. Domain errors are recorded as failures;
// infrastructure errors abort the command.
func each(ids types.IDList, r *CommandResult, fn func(id uint64) error) error {
	for _, id := range types.Uint64s(ids) {
		err := fn(id)
		switch {
		case err == nil:
			r.Affected++
		case types.IsDomain(err):
			r.Failures = append(r.Failures, CommandFailure{ID: id, Type: types.ErrorType(err), Error: err.Error()})
		default:
			return err
		}
	}
	return nil
}

// ApproveAccounts sets is_approved.
type ApproveAccounts struct {
	AccountIDs types.IDList `json:"account_ids" validate:"required,min=1,max=500"`
}

func (a *ApproveAccounts) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.AccountIDs, r, func(id uint64) error { return c.Accounts.Approve(ctx, p, id) })
}

// DeactivateAccounts clears is_active.
type DeactivateAccounts struct {
	AccountIDs types.IDList `json:"account_ids" validate:"required,min=1,max=500"`
}

func (a *DeactivateAccounts) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.AccountIDs, r, func(id uint64) error { return c.Accounts.Deactivate(ctx, p, id) })
}

// ActivateIdentities moves pending identities to active.
type ActivateIdentities struct {
	IdentityIDs types.IDList `json:"identity_ids" validate:"required,min=1,max=500"`
}

func (a *ActivateIdentities) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.IdentityIDs, r, func(id uint64) error {
		_, err := c.Identities.Transition(ctx, p, id, models.IdentityActive)
		return err
	})
}

// RevokeIdentities moves identities to revoked.
type RevokeIdentities struct {
	IdentityIDs types.IDList `json:"identity_ids" validate:"required,min=1,max=500"`
}

func (a *RevokeIdentities) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.IdentityIDs, r, func(id uint64) error {
		_, err := c.Identities.Transition(ctx, p, id, models.IdentityRevoked)
		return err
	})
}

// GenerateIdentities creates active identifiers.
type GenerateIdentities struct {
	GenerateInput
}

func (a *GenerateIdentities) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	created, err := c.Identities.Generate(ctx, p, a.GenerateInput)
	if err != nil {
		return err
	}
	r.Affected = len(created)
	return nil
}

// DeleteDocuments soft-deletes documents that are not out on loan.
type DeleteDocuments struct {
	DocumentIDs types.IDList `json:"document_ids" validate:"required,min=1,max=500"`
}

func (a *DeleteDocuments) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.DocumentIDs, r, func(id uint64) error { return c.Catalog.Delete(ctx, p, id) })
}

// ApproveBorrows moves pending requests to borrowed.
type ApproveBorrows struct {
	BorrowIDs types.IDList `json:"borrow_ids" validate:"required,min=1,max=500"`
}

func (a *ApproveBorrows) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.BorrowIDs, r, func(id uint64) error {
		_, err := c.Ledger.Approve(ctx, p, id)
		return err
	})
}

// MarkReturned closes open borrows.
type MarkReturned struct {
	BorrowIDs types.IDList `json:"borrow_ids" validate:"required,min=1,max=500"`
}

func (a *MarkReturned) run(ctx context.Context, c *Console, p types.Principal, r *CommandResult) error {
	return each(a.BorrowIDs, r, func(id uint64) error {
		_, err := c.Ledger.Return(ctx, p, id)
		return err
	})
}
