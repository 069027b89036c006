package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used to classify DomainError values.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// DomainError is an error raised by domain or persistence code that handlers can map to a
// response status.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that the entity with the given id does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Err: ErrNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports a state conflict.
func NewConflictError(msg string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: msg}
}

// NewValidationError reports invalid input.
func NewValidationError(msg string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: msg}
}

// ErrorKind tells callers whether a failed store operation is worth retrying.
// KindUnknown means the driver error was not recognised and callers should fall back to
// their own checks.
type ErrorKind int

const (
	KindPermanent ErrorKind = iota
	KindTransient
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindUnknown:
		return "unknown"
	default:
		return "permanent"
	}
}

// StoreError wraps a persistence failure with the operation that produced it and its kind.
type StoreError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err for op. A nil err yields nil.
func NewStoreError(op string, kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Kind: kind, Err: err}
}

// KindOf returns the kind recorded on the first StoreError in err's chain.
// ok is false when err carries no StoreError.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return KindPermanent, false
}
