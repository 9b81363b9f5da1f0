package state

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNotFound is returned when a requested state key is absent from
	// the registry and all of its ancestors.
	ErrNotFound = errors.New("state: not found")

	// ErrBorrowConflict is returned when a borrow request violates the
	// shared-xor-exclusive rule for a cell.
	ErrBorrowConflict = errors.New("state: borrow conflict")

	// ErrMultipleBorrowConflict is returned when a multi-borrow request
	// names the same state type more than once.
	ErrMultipleBorrowConflict = errors.New("state: multiple borrow conflict")

	// ErrRequiredMissing is returned when a component's declared
	// requirement is not satisfied after all init calls.
	ErrRequiredMissing = errors.New("state: required state missing")

	// ErrInvariant is returned when a component's documented
	// precondition is violated at runtime.
	ErrInvariant = errors.New("invariant violated")
)

// BorrowKind distinguishes the two borrow modes.
type BorrowKind int

const (
	Shared BorrowKind = iota
	Exclusive
)

func (k BorrowKind) String() string {
	if k == Exclusive {
		return "exclusive"
	}
	return "shared"
}

// NotFoundError reports an absent state key. It matches ErrNotFound
// under errors.Is.
type NotFoundError struct {
	Type reflect.Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("state: %s not found", e.Type)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// BorrowError reports a runtime borrow rule violation. Requested is the
// borrow mode that was refused.
type BorrowError struct {
	Type      reflect.Type
	Requested BorrowKind
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("state: cannot borrow %s as %s", e.Type, e.Requested)
}

func (e *BorrowError) Is(target error) bool { return target == ErrBorrowConflict }

// MultipleBorrowError reports a multi-borrow request that contained
// duplicate keys. No borrow is taken when this is returned.
type MultipleBorrowError struct {
	Types []reflect.Type
}

func (e *MultipleBorrowError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = t.String()
	}
	return fmt.Sprintf("state: duplicate keys in multi-borrow (%s)", strings.Join(names, ", "))
}

func (e *MultipleBorrowError) Is(target error) bool { return target == ErrMultipleBorrowConflict }

// RequiredMissingError reports an unmet component requirement: Needed is
// the absent state type, By the name of the component that declared it.
type RequiredMissingError struct {
	Needed reflect.Type
	By     string
}

func (e *RequiredMissingError) Error() string {
	return fmt.Sprintf("state: %s required by %q is missing", e.Needed, e.By)
}

func (e *RequiredMissingError) Is(target error) bool { return target == ErrRequiredMissing }

// Invariantf builds an invariant violation error. It matches
// ErrInvariant under errors.Is.
func Invariantf(format string, args ...any) error {
	return &invariantError{msg: fmt.Sprintf(format, args...)}
}

type invariantError struct {
	msg string
}

func (e *invariantError) Error() string          { return e.msg }
func (e *invariantError) Is(target error) bool   { return target == ErrInvariant }
