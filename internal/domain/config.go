package domain

// Storage layout constants shared by the repositories.
const (
	// KeyPrefix is the Redis key namespace for all annex data.
	KeyPrefix = "annex:"
	// IndexPrefix is the FT index name namespace.
	IndexPrefix = "annex-idx:"
	// FieldVector is the hash field holding the binary vector blob.
	FieldVector = "__vector"
	// BandFieldPrefix prefixes the per-band bucket fields of a hash.
	BandFieldPrefix = "hb_"
)
