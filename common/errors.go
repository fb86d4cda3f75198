package common

import (
	"errors"
	"fmt"
)

// ParseError is returned when free text does not match any known reminder syntax.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// ValidationError reports a request that is well-formed but not acceptable,
// such as a reminder time in the past or a missing required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// UnsupportedPlatformError is returned by scheduling when no adapter exists
// for the detected operating system.
type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return "unsupported platform: " + e.Platform
}

// GenerationError wraps a failed call to the text-generation service.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation failed: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SendError wraps a mail transport failure.
type SendError struct {
	Recipient string
	Err       error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send to %s failed: %v", e.Recipient, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// SchedulingError wraps a failed OS registration command. Output holds
// whatever the underlying tool printed.
type SchedulingError struct {
	Op     string
	Output string
	Err    error
}

func (e *SchedulingError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *SchedulingError) Unwrap() error { return e.Err }

// NewParseError returns a ParseError for the given input.
func NewParseError(input, reason string) error {
	return &ParseError{Input: input, Reason: reason}
}

// NewValidationError returns a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsParse reports whether err is or wraps a ParseError.
func IsParse(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsUnsupportedPlatform reports whether err is or wraps an UnsupportedPlatformError.
func IsUnsupportedPlatform(err error) bool {
	var e *UnsupportedPlatformError
	return errors.As(err, &e)
}

// IsGeneration reports whether err is or wraps a GenerationError.
func IsGeneration(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}

// IsSend reports whether err is or wraps a SendError.
func IsSend(err error) bool {
	var e *SendError
	return errors.As(err, &e)
}

// IsScheduling reports whether err is or wraps a SchedulingError.
func IsScheduling(err error) bool {
	var e *SchedulingError
	return errors.As(err, &e)
}
