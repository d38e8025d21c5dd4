package common

import (
	"errors"
	"fmt"
)

// Category separates caller-correctable failures from system faults.
type Category int

const (
	// Business failures arise from valid but unsatisfiable input.
	Business Category = iota
	// Technical failures are infrastructure faults or malformed binary input.
	Technical
	// Request failures indicate malformed or missing caller input at the boundary.
	Request
)

func (c Category) String() string {
	switch c {
	case Business:
		return "business"
	case Technical:
		return "technical"
	case Request:
		return "request"
	default:
		return "unknown"
	}
}

// Stable error codes carried by CoreError.
const (
	CodeConfig         = "CONFIG_ERROR"
	CodeExcelInvalid   = "EXCEL_INVALID"
	CodeNoFoldersFound = "NO_FOLDERS_FOUND"
	CodePDFProcessing  = "PDF_PROCESSING_ERROR"
	CodeFileGeneration = "FILE_GENERATION_ERROR"
	CodeStorageAccess  = "STORAGE_ACCESS_ERROR"
	CodeUnexpected     = "UNEXPECTED_ERROR"
)

// CoreError is the application error type carried across the pipeline.
// The message always names the offending identifier (folder or file name)
// when one exists.
type CoreError struct {
	Category Category
	Code     string
	Message  string
	Cause    error
}

func (e *CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CoreError) Unwrap() error {
	return e.Cause
}

// Error constructors
func NewBusinessError(code, message string) *CoreError {
	return &CoreError{Category: Business, Code: code, Message: message}
}

func NewTechnicalError(code, message string, cause error) *CoreError {
	return &CoreError{Category: Technical, Code: code, Message: message, Cause: cause}
}

func NewRequestError(code, message string, cause error) *CoreError {
	return &CoreError{Category: Request, Code: code, Message: message, Cause: cause}
}

// AsCore returns the CoreError in err's chain, if any.
func AsCore(err error) (*CoreError, bool) {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// EnsureTechnical wraps err into a technical CoreError with the given code
// and message unless it is already categorized. Categorized failures pass
// through unchanged, never downgraded.
func EnsureTechnical(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsCore(err); ok {
		return err
	}
	return NewTechnicalError(code, message, err)
}
