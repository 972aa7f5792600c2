package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for document stages.
var (
	// ErrMissingElement indicates a required element is absent from the document.
	ErrMissingElement = errors.New("required element not found")

	// ErrDuplicateElement indicates an element that must be unique appears more than once.
	ErrDuplicateElement = errors.New("element must be unique")

	// ErrCodeLanguages indicates fewer language labels than code blocks.
	ErrCodeLanguages = errors.New("not enough code languages")

	// ErrFragmentRender indicates a fragment template failed to execute.
	ErrFragmentRender = errors.New("fragment rendering failed")

	// ErrNoteConversion indicates the footer note Markdown could not be rendered.
	ErrNoteConversion = errors.New("footer note conversion failed")
)

// CodeLanguagesError reports a language list shorter than the page's code
// blocks. It matches ErrCodeLanguages with errors.Is.
type CodeLanguagesError struct {
	Blocks    int
	Languages int
}

func (e *CodeLanguagesError) Error() string {
	return fmt.Sprintf("%s: %d code blocks, %d languages", ErrCodeLanguages, e.Blocks, e.Languages)
}

func (e *CodeLanguagesError) Unwrap() error {
	return ErrCodeLanguages
}
