package groupware

import (
	"errors"
	"time"
)

// Error codes carried by failed import results.
const (
	CodeImportFailed   = "IMP-0001"
	CodeParseFailed    = "IMP-0002"
	CodeUnsupported    = "IMP-0003"
	CodeRecurrence     = "IMP-0004"
	CodeMissingContent = "IMP-0005"
)

var (
	ErrUnsupportedComponent = errors.New("unsupported component")
	ErrMissingContent       = errors.New("missing content")
)

// ImportError is the failure of one imported object. Line is the 1-based
// position of the object in the source, 0 when unknown.
type ImportError struct {
	Code string
	Line int
	Err  error
}

func (e *ImportError) Error() string {
	return e.Code + ": " + e.Err.Error()
}

func (e *ImportError) Unwrap() error { return e.Err }

// ImportResult is the outcome of importing one object.
type ImportResult struct {
	ObjectID     string
	FolderID     string
	LastModified time.Time
	Err          error
}

// Failed reports whether the import of this object failed.
func (r *ImportResult) Failed() bool { return r.Err != nil }

// Code returns the error code of a failed result.
func (r *ImportResult) Code() string {
	var ie *ImportError
	if errors.As(r.Err, &ie) {
		return ie.Code
	}
	if r.Err != nil {
		return CodeImportFailed
	}
	return ""
}

// Line returns the source position of a failed result.
func (r *ImportResult) Line() int {
	var ie *ImportError
	if errors.As(r.Err, &ie) {
		return ie.Line
	}
	return 0
}
