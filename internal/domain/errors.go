package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Entity specific errors
	CodeNoteNotFound  ErrorCode = "NOTE_NOT_FOUND"
	CodeGroupNotFound ErrorCode = "GROUP_NOT_FOUND"

	// Quiz pipeline errors
	CodeIO         ErrorCode = "IO_ERROR"
	CodeUpstream   ErrorCode = "UPSTREAM_ERROR"
	CodeExtraction ErrorCode = "EXTRACTION_ERROR"
	CodeParse      ErrorCode = "PARSE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithContext attaches a key/value pair that is logged and returned as details.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewNoteNotFoundError(noteID string) *DomainError {
	return NewError(CodeNoteNotFound, fmt.Sprintf("Note not found with ID: %s", noteID), nil)
}

func NewGroupNotFoundError(groupID string) *DomainError {
	return NewError(CodeGroupNotFound, fmt.Sprintf("Group not found with ID: %s", groupID), nil)
}

func NewIOError(path string, err error) *DomainError {
	return NewError(CodeIO, fmt.Sprintf("Failed to read file: %s", path), err)
}

func NewUpstreamError(err error) *DomainError {
	return NewError(CodeUpstream, "Failed to process with LLM service", err)
}

func NewExtractionError(path string, err error) *DomainError {
	return NewError(CodeExtraction, fmt.Sprintf("No text could be extracted from: %s", path), err)
}

func NewParseError(message string) *DomainError {
	return NewError(CodeParse, message, nil)
}

// HasCode reports whether err, or anything it wraps, is a DomainError with code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound reports whether err signals an absent entity.
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound) || HasCode(err, CodeNoteNotFound) || HasCode(err, CodeGroupNotFound)
}
