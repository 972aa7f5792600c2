package n2t

import (
	"errors"

	"github.com/alnah/go-n2t/internal/archive"
	"github.com/alnah/go-n2t/internal/assets"
	"github.com/alnah/go-n2t/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Document structure errors.
	ErrMissingElement   = errors.New("required element not found")
	ErrDuplicateElement = errors.New("element must be unique")

	// Resource errors. ErrAssetRead keeps the underlying os error in the
	// chain, so errors.Is(err, os.ErrNotExist) reports a missing image.
	ErrAssetRead  = errors.New("failed to read asset")
	ErrSourceRead = errors.New("failed to read source document")

	// ErrInvalidDataURI is returned by DecodeDataURI for a malformed payload.
	ErrInvalidDataURI = errors.New("invalid data URI")

	// Configuration errors.
	ErrCodeLanguages       = errors.New("not enough code languages")
	ErrInvalidCodeLanguage = errors.New("invalid code language")
	ErrInvalidCodeTheme    = errors.New("invalid code theme")
	ErrNoSource            = errors.New("source path is required")
	ErrNoDocument          = errors.New("source document is required in archive mode")
	ErrNoOutputPath        = errors.New("source path is required to persist output")

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrFragmentRender   = errors.New("fragment rendering failed")

	// Archive errors.
	ErrArchive = errors.New("cannot read export archive")

	// ErrInternal wraps a recovered panic.
	ErrInternal = errors.New("internal error")
)

// CodeLanguagesError carries the block and label counts behind an
// ErrCodeLanguages failure. Retrieve it with errors.As.
type CodeLanguagesError = pipeline.CodeLanguagesError

// convertError maps internal errors to public sentinels.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pipeline.ErrMissingElement):
		return wrapError(ErrMissingElement, err)
	case errors.Is(err, pipeline.ErrDuplicateElement):
		return wrapError(ErrDuplicateElement, err)
	case errors.Is(err, pipeline.ErrCodeLanguages):
		return wrapError(ErrCodeLanguages, err)
	case errors.Is(err, pipeline.ErrFragmentRender):
		return wrapError(ErrFragmentRender, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrAssetRead, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrAssetRead, err)
	case errors.Is(err, assets.ErrInvalidDataURI):
		return wrapError(ErrInvalidDataURI, err)
	case errors.Is(err, assets.ErrInvalidCodeTheme):
		return wrapError(ErrInvalidCodeTheme, err)
	case errors.Is(err, assets.ErrTemplateNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, archive.ErrOpenArchive),
		errors.Is(err, archive.ErrEntryNotFound),
		errors.Is(err, archive.ErrUnsafeEntry),
		errors.Is(err, archive.ErrNotPage),
		errors.Is(err, archive.ErrPageTooLarge):
		return wrapError(ErrArchive, err)
	default:
		return err
	}
}

// wrapError creates an error that matches the public sentinel with errors.Is
// while keeping the original message and chain (os errors included).
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap exposes both the public sentinel and the original chain.
func (e *wrappedError) Unwrap() []error {
	return []error{e.sentinel, e.original}
}
