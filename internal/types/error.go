// error.go
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

package types

import (
	"errors"
	"fmt"
)

// CustomError is returned by middleware and rendered by the global error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Domain errors. All of them are recoverable and safe to show to the caller.
var (
	ErrNotApproved         = errors.New("account is not approved")
	ErrUnavailable         = errors.New("document unavailable")
	ErrBorrowLimitExceeded = errors.New("borrowing limit exceeded")
	ErrAlreadyReturned     = errors.New("borrow record is already closed")
	ErrPermission          = errors.New("permission denied")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// ErrInfrastructure marks persistence or transport failures. Its message is
// the only one shown to callers for them.
var ErrInfrastructure = errors.New("Temporary problem, please retry later.")

// File validation rules.
const (
	FileRuleExtension = "extension"
	FileRuleSize      = "size"
)

// InvalidFileError names the upload rule that was violated.
type InvalidFileError struct {
	Rule   string
	Detail string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid file (%s): %s", e.Rule, e.Detail)
}

// NotFoundError reports an unknown entity.
type NotFoundError struct {
	Entity string
	Key    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// NotFound builds a NotFoundError.
func NotFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// ValidationError carries per-field messages and unwraps to ErrValidation.
type ValidationError struct {
	Fields map[string]string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid is a shorthand for a message-only ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Infrastructure wraps cause so that errors.Is(err, ErrInfrastructure) holds.
func Infrastructure(cause error) error {
	if cause == nil || errors.Is(cause, ErrInfrastructure) {
		return cause
	}
	return &infraError{cause: cause}
}

type infraError struct{ cause error }

func (e *infraError) Error() string { return ErrInfrastructure.Error() + ": " + e.cause.Error() }

func (e *infraError) Is(target error) bool { return target == ErrInfrastructure }

func (e *infraError) Unwrap() error { return e.cause }

// IsDomain reports whether err belongs to the caller-visible taxonomy.
func IsDomain(err error) bool {
	var nf *NotFoundError
	var inv *InvalidFileError
	var ve *ValidationError
	switch {
	case errors.As(err, &nf), errors.As(err, &inv), errors.As(err, &ve):
		return true
	}
	for _, e := range []error{
		ErrNotApproved, ErrUnavailable, ErrBorrowLimitExceeded, ErrAlreadyReturned,
		ErrPermission, ErrUnauthenticated, ErrInvalidTransition, ErrConflict,
		ErrValidation, ErrInvalidCredentials,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// ErrorType is a stable short name for err, used in responses and metric labels.
func ErrorType(err error) string {
	var nf *NotFoundError
	var inv *InvalidFileError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inv):
		return "file." + inv.Rule
	case errors.As(err, &nf):
		return "not_found"
	case errors.Is(err, ErrNotApproved):
		return "not_approved"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrBorrowLimitExceeded):
		return "borrow_limit"
	case errors.Is(err, ErrAlreadyReturned):
		return "already_returned"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrValidation):
		return "validation"
	}
	return "infrastructure"
}
