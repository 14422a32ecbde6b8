package model

import (
	"errors"
	"fmt"
)

// Identity errors.
var (
	// ErrBrokenIdentity indicates a clone chain that does not terminate at a
	// primary instance. Use errors.As to recover the BrokenIdentityError
	// detail.
	ErrBrokenIdentity = errors.New("broken identity chain")

	// ErrCloneNotAllowed indicates an attempt to clone a non-clonable kind.
	ErrCloneNotAllowed = errors.New("node kind cannot be cloned")
)

// Field errors.
var (
	// ErrUnknownField indicates a shared-field name the flavor does not carry.
	ErrUnknownField = errors.New("unknown shared field")

	// ErrFieldType indicates a value whose type does not match the field.
	ErrFieldType = errors.New("shared field type mismatch")
)

// BrokenIdentityError reports a clone chain that never reached a primary
// instance, typically a corrupted document.
type BrokenIdentityError struct {
	NodeID string
	Hops   int
	Reason string
}

func (e *BrokenIdentityError) Error() string {
	return fmt.Sprintf("node %s: broken identity chain after %d hops: %s", e.NodeID, e.Hops, e.Reason)
}

// Is lets errors.Is(err, ErrBrokenIdentity) match.
func (e *BrokenIdentityError) Is(target error) bool {
	return target == ErrBrokenIdentity
}

// CloneNotAllowedError reports a rejected clone of a structural kind.
type CloneNotAllowedError struct {
	NodeID string
	Kind   Kind
}

func (e *CloneNotAllowedError) Error() string {
	return fmt.Sprintf("node %s: kind %q cannot be cloned", e.NodeID, e.Kind)
}

// Is lets errors.Is(err, ErrCloneNotAllowed) match.
func (e *CloneNotAllowedError) Is(target error) bool {
	return target == ErrCloneNotAllowed
}

// FieldError reports a shared-field validation failure on one node.
type FieldError struct {
	NodeID string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("node %s: field %q: %v", e.NodeID, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
