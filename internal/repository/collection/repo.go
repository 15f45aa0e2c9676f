// Package collection persists collection registrations and manages the
// per-collection FT index over the LSH band fields.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/annex-search/annex/internal/db"
	"github.com/annex-search/annex/internal/domain"
	domcol "github.com/annex-search/annex/internal/domain/collection"
)

const (
	metaFieldBands = "bands"
	metaFieldDims  = "dims"
	bandSeparator  = ","
)

// store is the consumer interface for collections (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
}

// Repo implements collection storage and index lifecycle.
type Repo struct {
	store store
}

// New creates a collection repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Register stores the collection metadata and creates its FT index with one
// TAG field per declared band.
func (r *Repo) Register(ctx context.Context, col *domcol.Collection) error {
	key := metaKey(col.Name(), col.DocType())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if exists {
		return domain.ErrCollectionExists
	}

	builder := db.NewIndex(indexName(col.Name(), col.DocType())).
		Prefix(docKeyPrefix(col.Name(), col.DocType()))
	for _, band := range col.Bands() {
		builder = builder.Tag(domain.BandFieldPrefix + band)
	}

	if err := r.store.CreateIndex(ctx, builder.Build()); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}

	fields := map[string]string{
		metaFieldBands: strings.Join(col.Bands(), bandSeparator),
		metaFieldDims:  strconv.Itoa(col.Dimensions()),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get loads a collection registration.
func (r *Repo) Get(ctx context.Context, name, docType string) (domcol.Collection, error) {
	key := metaKey(name, docType)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcol.Collection{}, domain.ErrCollectionNotFound
		}
		return domcol.Collection{}, fmt.Errorf("hgetall %s: %w", key, err)
	}

	dims, err := strconv.Atoi(m[metaFieldDims])
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("parse dims for %s: %w", key, err)
	}
	var bands []string
	if raw := m[metaFieldBands]; raw != "" {
		bands = strings.Split(raw, bandSeparator)
	}

	return domcol.Reconstruct(name, docType, bands, dims), nil
}

// Drop removes the index, metadata, and all stored documents of a collection.
func (r *Repo) Drop(ctx context.Context, name, docType string) error {
	key := metaKey(name, docType)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrCollectionNotFound
	}

	if err := r.store.DropIndex(ctx, indexName(name, docType)); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}

	keys, err := r.store.Scan(ctx, docKeyPrefix(name, docType)+"*")
	if err != nil {
		return fmt.Errorf("scan documents: %w", err)
	}
	for _, k := range keys {
		if err := r.store.Del(ctx, k); err != nil {
			return fmt.Errorf("del %s: %w", k, err)
		}
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func metaKey(name, docType string) string {
	return fmt.Sprintf("%smeta:%s:%s", domain.KeyPrefix, name, docType)
}

func indexName(name, docType string) string {
	return fmt.Sprintf("%s%s:%s", domain.IndexPrefix, name, docType)
}

func docKeyPrefix(name, docType string) string {
	return fmt.Sprintf("%s%s:%s:", domain.KeyPrefix, name, docType)
}
