// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplate is wrapped by every TemplateError.
	ErrTemplate = errors.New("invalid template")
	// ErrFieldConversion is wrapped by every FieldConversionError.
	ErrFieldConversion = errors.New("field conversion failed")
	// ErrIO is wrapped by every IOError.
	ErrIO = errors.New("filesystem access failed")
)

// TemplateError reports a template that cannot be compiled.
type TemplateError struct {
	Template string
	Reason   string
	Err      error
}

func (e *TemplateError) Error() string {
	msg := fmt.Sprintf("invalid template %q: %s", e.Template, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TemplateError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTemplate}
	}
	return []error{ErrTemplate, e.Err}
}

// FieldConversionError reports captured text that does not parse as the
// placeholder's declared kind.
type FieldConversionError struct {
	Path  string
	Field string
	Value string
	Kind  Kind
	Err   error
}

func (e *FieldConversionError) Error() string {
	return fmt.Sprintf("%s: field %q: cannot convert %q to %s: %v", e.Path, e.Field, e.Value, e.Kind, e.Err)
}

func (e *FieldConversionError) Unwrap() []error {
	return []error{ErrFieldConversion, e.Err}
}

// IOError reports a failure to read the filesystem while walking.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
