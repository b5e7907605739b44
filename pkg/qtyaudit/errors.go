package qtyaudit

import (
	"errors"
	"fmt"

	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/source"
)

// ErrNoPDFs indicates the input directory holds no PDF files.
var ErrNoPDFs = errors.New("no PDF files found")

// ErrMasterNotFound indicates no file looks like the master quantity summary.
var ErrMasterNotFound = source.ErrMasterNotFound

// ErrWorkbookUnavailable indicates the detail workbook could not be written.
var ErrWorkbookUnavailable = errors.New("workbook output unavailable")

// ExtractionError represents an error while extracting one file or page.
type ExtractionError struct {
	File      string
	Page      int    // 0 for file-level failures
	Component string // "preflight", "open", "text", "pages"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Page == 0 {
		return fmt.Sprintf("extraction error in %q (%s): %v", e.File, e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in %q page %d (%s): %v", e.File, e.Page, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(file string, page int, component string, err error) *ExtractionError {
	return &ExtractionError{
		File:      file,
		Page:      page,
		Component: component,
		Err:       err,
	}
}
