package shop

import (
	"errors"
	"fmt"
)

// Error kinds returned by the services. Callers match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrAlreadyCheckedOut = errors.New("cart already checked out")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %d not found", e.Entity, e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity string, id uint) error { return &NotFoundError{Entity: entity, ID: id} }

// ValidationError carries a message safe to show to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// AuthFailureReason says which half of the credentials was wrong.
// It is meant for server logs only.
type AuthFailureReason string

const (
	ReasonNoSuchUser  AuthFailureReason = "no-such-user"
	ReasonBadPassword AuthFailureReason = "bad-password"
)

// AuthError is returned by Verify on bad credentials.
type AuthError struct {
	Reason AuthFailureReason
}

func (e *AuthError) Error() string { return "authentication failed: " + string(e.Reason) }

func (e *AuthError) Is(target error) bool { return target == ErrAuthFailed }
