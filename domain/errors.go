package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors
var (
	ErrAuthRequired         = errors.New("you must log in to do this")
	ErrRoleForbidden        = errors.New("your role does not allow this action")
	ErrBusy                 = errors.New("a submission is already in flight")
	ErrConfirmationRequired = errors.New("destructive action requires confirmation")
	ErrNotOwner             = errors.New("record is owned by another account")
	ErrNoSession            = errors.New("no active session")
)

// AuthError covers credential and account failures. It is shown inline on
// the auth form and carries the backend's message verbatim.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError wraps a backend auth failure with a static operation prefix.
func NewAuthError(op string, err error) *AuthError {
	return &AuthError{Op: op, Err: err}
}

// FetchError covers read failures. Stale data, if any, stays visible.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

func NewFetchError(op string, err error) *FetchError {
	return &FetchError{Op: op, Err: err}
}

// MutationError covers insert/update/delete/upload failures. Optimistic
// favorite state is rolled back; form drafts are left intact.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *MutationError) Unwrap() error { return e.Err }

func NewMutationError(op string, err error) *MutationError {
	return &MutationError{Op: op, Err: err}
}

// ValidationErrors maps draft field names to messages. Submissions that fail
// validation never reach the gateway.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsAuthError reports whether err belongs to the auth taxonomy.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsFetchError reports whether err belongs to the fetch taxonomy.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// IsMutationError reports whether err belongs to the mutation taxonomy.
func IsMutationError(err error) bool {
	var me *MutationError
	return errors.As(err, &me)
}

// AsValidationErrors extracts a field-error map from err, if it carries one.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// BackendMessage returns the innermost error text, which for gateway
// failures is the backend's original message.
func BackendMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
