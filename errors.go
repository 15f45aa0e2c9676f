package annex

import "github.com/annex-search/annex/internal/domain"

// Sentinel errors surfaced by the SDK. Match with errors.Is.
var (
	ErrBaseDocumentNotFound = domain.ErrBaseDocumentNotFound
	ErrDocumentNotFound     = domain.ErrDocumentNotFound
	ErrCollectionNotFound   = domain.ErrCollectionNotFound
	ErrCollectionExists     = domain.ErrCollectionExists
	ErrEmptySignature       = domain.ErrEmptySignature
	ErrDimensionMismatch    = domain.ErrDimensionMismatch
	ErrInvalidParameter     = domain.ErrInvalidParameter
	ErrIndexUnavailable     = domain.ErrIndexUnavailable
)
