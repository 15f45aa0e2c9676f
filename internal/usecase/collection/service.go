// Package collection manages collection registrations: the band schema and
// vector dimensionality every document of a (collection, type) pair must
// conform to.
package collection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/annex-search/annex/internal/domain"
	domcol "github.com/annex-search/annex/internal/domain/collection"
	"github.com/annex-search/annex/internal/logger"
)

// Service implements collection lifecycle operations.
type Service struct {
	store Store
}

// New creates a collection service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Register validates and registers a new collection. The band schema is
// fixed at registration; documents written later must carry exactly these
// bands.
func (s *Service) Register(ctx context.Context, name, docType string, bands []string, dimensions int) (domcol.Collection, error) {
	col, err := domcol.New(name, docType, bands, dimensions)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("%w: %w", domain.ErrInvalidParameter, err)
	}

	if err := s.store.Register(ctx, &col); err != nil {
		return domcol.Collection{}, err
	}

	logger.FromContext(ctx).Info("collection registered",
		zap.String("collection", name),
		zap.String("type", docType),
		zap.Int("bands", len(bands)),
		zap.Int("dimensions", dimensions),
	)
	return col, nil
}

// Get loads a collection registration.
func (s *Service) Get(ctx context.Context, name, docType string) (domcol.Collection, error) {
	if name == "" || docType == "" {
		return domcol.Collection{}, fmt.Errorf("%w: collection and type are required", domain.ErrInvalidParameter)
	}
	return s.store.Get(ctx, name, docType)
}

// Drop removes a collection, its index, and all of its documents.
func (s *Service) Drop(ctx context.Context, name, docType string) error {
	if name == "" || docType == "" {
		return fmt.Errorf("%w: collection and type are required", domain.ErrInvalidParameter)
	}
	if err := s.store.Drop(ctx, name, docType); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("collection dropped",
		zap.String("collection", name),
		zap.String("type", docType),
	)
	return nil
}
