package domain

import "errors"

var (
	// ErrBaseDocumentNotFound signals that the base document of a query is absent.
	ErrBaseDocumentNotFound = errors.New("base document not found")
	// ErrMissingField signals that a stored document lacks its vector or hash signature.
	ErrMissingField = errors.New("document is missing a required field")
	// ErrEmptySignature signals a base document with no hash bands to query.
	ErrEmptySignature = errors.New("hash signature is empty")
	// ErrMissingVector signals a candidate hit without a stored vector.
	ErrMissingVector = errors.New("candidate is missing its vector")
	// ErrDimensionMismatch signals a vector length mismatch during distance computation.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidParameter signals a non-positive k1 or k2.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrIndexUnavailable signals an I/O failure talking to the store or index.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrCollectionNotFound signals a missing collection.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrCollectionExists signals a duplicate collection.
	ErrCollectionExists = errors.New("collection already exists")
	// ErrDocumentNotFound signals a missing stored document.
	ErrDocumentNotFound = errors.New("document not found")
)
