// Package errors provides structured error reporting for textkit.
//
// The layout attribute value types never fail; errors come from the layers
// around them: loading presets, running cache loaders, and initializing the
// default layout manager.
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
	// KindConfig indicates a preset file could not be read or resolved.
	KindConfig
	// KindLayout indicates a layout manager failed to initialize or measure.
	KindLayout
	// KindCache indicates a cache loader failure.
	KindCache
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindLayout:
		return "layout"
	case KindCache:
		return "cache"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// TextKitError represents a structured error raised around layout attributes.
type TextKitError struct {
	// Op is the operation that failed (e.g., "config.Resolve").
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

func (e *TextKitError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TextKitError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "textkit.LayoutCache.Get").
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

// ErrorHandler receives errors reported by textkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TextKitError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
