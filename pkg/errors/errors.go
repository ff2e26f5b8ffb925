// Package errors defines the sentinel errors shared across logdoctor.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNoRecords        = errors.New("no parsable log records found")
	ErrNotLogcat        = errors.New("content does not look like logcat output")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file too large")
	ErrConfigNotFound   = errors.New("config not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrInsufficientData = errors.New("insufficient data points")
	ErrDegenerateModel  = errors.New("degenerate regression model")
	ErrRuleInvalid      = errors.New("invalid advice rule")
	ErrUnauthorized     = errors.New("unauthorized")
)

func NewFileError(path string, reason error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileNotFound, path, reason)
}

func NewFileSizeError(path string, size, limit int64) error {
	return fmt.Errorf("%w: %s (%d bytes, limit %d)", ErrFileTooLarge, path, size, limit)
}

func NewConfigError(field string, value interface{}) error {
	return fmt.Errorf("%w: field=%s value=%v", ErrConfigInvalid, field, value)
}

func NewRuleError(id string, reason error) error {
	return fmt.Errorf("%w: rule=%s: %v", ErrRuleInvalid, id, reason)
}
