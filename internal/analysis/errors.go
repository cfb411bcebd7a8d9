package analysis

import (
	"errors"
	"strings"

	"github.com/spacesedan/sentiview/internal/spreadsheet"
)

var (
	ErrNoFile         = errors.New("No file uploaded")
	ErrNoFileSelected = errors.New("No file selected")
	ErrNotXLSX        = errors.New("Please upload a XLSX file")
	ErrFileTooLarge   = errors.New("Uploaded file is too large")
	ErrEmptyBatch     = errors.New("XLSX contains no rows to analyze")
)

// IsInputError reports whether err was caused by the upload itself rather
// than by inference or rendering.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrNoFileSelected) ||
		errors.Is(err, ErrNotXLSX) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrEmptyBatch) ||
		errors.Is(err, spreadsheet.ErrMissingColumn)
}

// ValidateFilename checks the upload name before anything is parsed.
func ValidateFilename(name string) error {
	if name == "" {
		return ErrNoFileSelected
	}
	if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return ErrNotXLSX
	}
	return nil
}
