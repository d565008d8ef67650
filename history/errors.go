// SPDX-License-Identifier: MIT

package history

import (
	"errors"
	"fmt"
)

// Sentinel errors for history operations. Every error returned by this
// package is an *Error whose Unwrap yields one of these.
var (
	// ErrNullValue indicates a required collaborator reference was nil.
	ErrNullValue = errors.New("history: null value")

	// ErrEmptyValue indicates a required string argument was empty.
	ErrEmptyValue = errors.New("history: empty value")

	// ErrEmptyOutputs indicates a node was pushed without output files.
	ErrEmptyOutputs = errors.New("history: node has no outputs")

	// ErrInputNotFound indicates a file has no current producer.
	ErrInputNotFound = errors.New("history: input not found")
)

// ErrorKind enumerates the failure kinds of the package.
type ErrorKind int

const (
	NullValue ErrorKind = iota + 1
	EmptyValue
	EmptyOutputs
	InputNotFound
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case NullValue:
		return "NullValue"
	case EmptyValue:
		return "EmptyValue"
	case EmptyOutputs:
		return "EmptyOutputs"
	case InputNotFound:
		return "InputNotFound"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case NullValue:
		return ErrNullValue
	case EmptyValue:
		return ErrEmptyValue
	case EmptyOutputs:
		return ErrEmptyOutputs
	case InputNotFound:
		return ErrInputNotFound
	default:
		return nil
	}
}

// Error carries the kind of a failure plus the context needed to act on it.
//
// Argument names the offending parameter (NullValue, EmptyValue).
// Input holds the file name that could not be resolved (InputNotFound).
type Error struct {
	Kind     ErrorKind
	Argument string
	Input    string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := "history: unknown error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	switch {
	case e.Kind == InputNotFound:
		return fmt.Sprintf("%s: %q", msg, e.Input)
	case e.Argument != "":
		return fmt.Sprintf("%s: argument %q", msg, e.Argument)
	default:
		return msg
	}
}

// Unwrap returns the sentinel for e.Kind.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind.sentinel()
}

// NullArgument returns a NullValue error naming arg.
func NullArgument(arg string) error {
	return &Error{Kind: NullValue, Argument: arg}
}

// EmptyArgument returns an EmptyValue error naming arg.
func EmptyArgument(arg string) error {
	return &Error{Kind: EmptyValue, Argument: arg}
}

func emptyOutputs() error {
	return &Error{Kind: EmptyOutputs, Argument: "outputs"}
}

func inputNotFound(file string) error {
	return &Error{Kind: InputNotFound, Input: file}
}
