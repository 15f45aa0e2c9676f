// Package request holds the validated nearest-neighbor query parameters.
package request

import (
	"fmt"

	"github.com/annex-search/annex/internal/domain"
)

// Parameter defaults and limits. The defaults match the historical REST
// surface: k1=99 approximate hits, k2=10 exact neighbors.
const (
	DefaultK1 = 99
	DefaultK2 = 10
	MaxK1     = 10000
	MaxK2     = 1000
)

// Ref identifies the base document of a query.
type Ref struct {
	Collection string
	Type       string
	ID         string
}

// Request is a validated nearest-neighbor query.
type Request struct {
	ref Ref
	k1  int
	k2  int
}

// New validates and normalizes query parameters. Zero means "not set" and
// takes the default, including an explicit k1=0 or k2=0 from a transport;
// negative values are rejected with ErrInvalidParameter. Oversized values
// are clamped.
func New(ref Ref, k1, k2 int) (Request, error) {
	if ref.Collection == "" || ref.Type == "" || ref.ID == "" {
		return Request{}, fmt.Errorf("%w: collection, type and id are required", domain.ErrInvalidParameter)
	}
	if k1 == 0 {
		k1 = DefaultK1
	}
	if k2 == 0 {
		k2 = DefaultK2
	}
	if k1 < 1 {
		return Request{}, fmt.Errorf("%w: k1 must be >= 1, got %d", domain.ErrInvalidParameter, k1)
	}
	if k2 < 1 {
		return Request{}, fmt.Errorf("%w: k2 must be >= 1, got %d", domain.ErrInvalidParameter, k2)
	}
	if k1 > MaxK1 {
		k1 = MaxK1
	}
	if k2 > MaxK2 {
		k2 = MaxK2
	}
	return Request{ref: ref, k1: k1, k2: k2}, nil
}

// Ref returns the base document reference.
func (r *Request) Ref() Ref { return r.ref }

// K1 returns the approximate candidate pool size.
func (r *Request) K1() int { return r.k1 }

// K2 returns the final result size.
func (r *Request) K2() int { return r.k2 }
