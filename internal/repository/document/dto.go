package document

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/annex-search/annex/internal/domain"
	domdoc "github.com/annex-search/annex/internal/domain/document"
	"github.com/annex-search/annex/internal/domain/signature"
)

// buildHashFields converts a domain Document into a flat map[string]string
// for HSET: the vector as a binary blob plus one hb_<band> field per bucket.
func buildHashFields(doc *domdoc.Document) map[string]string {
	sig := doc.Signature()
	m := make(map[string]string, 1+sig.Len())
	m[domain.FieldVector] = VectorToBytes(doc.Vector())
	for _, band := range sig.Bands() {
		m[domain.BandFieldPrefix+band.Name] = strconv.FormatInt(band.Bucket, 10)
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Document.
// An absent or undecodable vector yields ErrMissingField; malformed bucket
// fields do too, since the signature is a required typed field of the model.
func parseHashFields(id string, m map[string]string) (domdoc.Document, error) {
	blob, ok := m[domain.FieldVector]
	if !ok {
		return domdoc.Document{}, fmt.Errorf("%w: vector", domain.ErrMissingField)
	}
	vector := BytesToVector(blob)
	if vector == nil {
		return domdoc.Document{}, fmt.Errorf("%w: vector blob is malformed", domain.ErrMissingField)
	}

	buckets := make(map[string]int64)
	for k, v := range m {
		band, isBand := strings.CutPrefix(k, domain.BandFieldPrefix)
		if !isBand {
			continue
		}
		bucket, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domdoc.Document{}, fmt.Errorf("%w: band %q bucket %q", domain.ErrMissingField, band, v)
		}
		buckets[band] = bucket
	}

	sig, err := signature.New(buckets)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("%w: %s", domain.ErrMissingField, err)
	}

	return domdoc.Reconstruct(id, vector, sig), nil
}

// VectorToBytes serializes []float32 to a binary string (4 bytes per float,
// little-endian).
func VectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// BytesToVector deserializes a binary string back to []float32.
// Returns nil for empty or misaligned input.
func BytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
