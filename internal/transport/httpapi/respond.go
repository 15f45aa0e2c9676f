package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/annex-search/annex/internal/domain"
)

// ErrorCode is a machine-readable error identifier returned to clients.
type ErrorCode string

const (
	CodeBadRequest           ErrorCode = "bad_request"
	CodeInvalidParameter     ErrorCode = "invalid_parameter"
	CodeBaseDocumentNotFound ErrorCode = "base_document_not_found"
	CodeDocumentNotFound     ErrorCode = "document_not_found"
	CodeCollectionNotFound   ErrorCode = "collection_not_found"
	CodeCollectionExists     ErrorCode = "collection_already_exists"
	CodeMissingField         ErrorCode = "missing_field"
	CodeEmptySignature       ErrorCode = "empty_signature"
	CodeMissingVectorField   ErrorCode = "missing_vector_field"
	CodeDimensionMismatch    ErrorCode = "dimension_mismatch"
	CodeIndexUnavailable     ErrorCode = "index_unavailable"
	CodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrBaseDocumentNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrCollectionNotFound,
		domain.ErrCollectionExists,
		domain.ErrMissingField,
		domain.ErrEmptySignature,
		domain.ErrMissingVector,
		domain.ErrDimensionMismatch,
		domain.ErrInvalidParameter,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
