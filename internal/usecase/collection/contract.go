package collection

import (
	"context"

	domcol "github.com/annex-search/annex/internal/domain/collection"
)

// Store persists collection registrations and their search indexes.
type Store interface {
	Register(ctx context.Context, col *domcol.Collection) error
	Get(ctx context.Context, name, docType string) (domcol.Collection, error)
	Drop(ctx context.Context, name, docType string) error
}
