// Package errors provides structured error handling for the bottomsheet kit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a configuration loading or parsing error.
	KindConfig
	// KindInit indicates an initialization error.
	KindInit
	// KindAnimation indicates an animation or transition error.
	KindAnimation
	// KindGesture indicates a gesture recognition error.
	KindGesture
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindInit:
		return "init"
	case KindAnimation:
		return "animation"
	case KindGesture:
		return "gesture"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// SheetError represents a structured error in the bottomsheet kit.
type SheetError struct {
	// Op is the operation that failed (e.g., "term.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sheet.notifyListeners").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ParseError represents an invalid configuration value.
type ParseError struct {
	// Path is the config file the value came from.
	Path string
	// Setting is the key that failed to parse.
	Setting string
	// Got is the raw value encountered.
	Got any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s from %s: got %v", e.Setting, e.Path, e.Got)
}

// ErrorHandler receives errors reported by the bottomsheet kit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *SheetError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
