// Package signature holds the LSH hash signature value object.
//
// A signature maps band names to bucket ids. It is produced by an external
// hashing process and stored alongside each document; annex only reads it.
package signature

import (
	"fmt"
	"sort"
)

// Band is one (band, bucket) assignment of a signature.
type Band struct {
	Name   string
	Bucket int64
}

// Signature assigns a document one bucket per LSH band.
type Signature struct {
	buckets map[string]int64
}

// New validates and constructs a signature. Band names must be non-empty.
// An empty map is allowed here; emptiness is a query-time error decided by
// the caller (a stored document may legitimately predate hashing).
func New(buckets map[string]int64) (Signature, error) {
	for band := range buckets {
		if band == "" {
			return Signature{}, fmt.Errorf("band name must not be empty")
		}
	}
	cp := make(map[string]int64, len(buckets))
	for band, bucket := range buckets {
		cp[band] = bucket
	}
	return Signature{buckets: cp}, nil
}

// IsEmpty reports whether the signature has no band assignments.
func (s Signature) IsEmpty() bool { return len(s.buckets) == 0 }

// Len returns the number of bands.
func (s Signature) Len() int { return len(s.buckets) }

// Bucket returns the bucket id for a band.
func (s Signature) Bucket(band string) (int64, bool) {
	b, ok := s.buckets[band]
	return b, ok
}

// Bands returns the band assignments sorted by band name. Sorting makes
// query construction deterministic across runs.
func (s Signature) Bands() []Band {
	out := make([]Band, 0, len(s.buckets))
	for band, bucket := range s.buckets {
		out = append(out, Band{Name: band, Bucket: bucket})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
