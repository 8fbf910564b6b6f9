package httperr

import "errors"

// ===============================
// Business error taxonomy
// ===============================

type Kind string

const (
	KindValidation    Kind = "validation"
	KindStateConflict Kind = "state_conflict"
	KindNotFound      Kind = "not_found"
	KindPersistence   Kind = "persistence"
)

// BusinessError carries a stable code naming the invariant that failed.
// Codes are surfaced verbatim to the caller; no rejected transition is
// silently swallowed.
type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrStateConflict(code string) error {
	return BusinessError{Kind: KindStateConflict, Code: code}
}

// ErrNotFound is returned both when an id does not resolve and when it
// resolves outside the caller's scope, so existence never leaks.
func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func asBusiness(err error, be *BusinessError) bool {
	return errors.As(err, be)
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
