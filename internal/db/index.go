package db

// StorageType selects the FT index storage backend.
type StorageType string

// StorageHash indexes Redis hashes.
const StorageHash StorageType = "HASH"

// IndexFieldType is the FT field type.
type IndexFieldType string

const (
	// IndexFieldTag declares a TAG field (exact-match terms).
	IndexFieldTag IndexFieldType = "TAG"
	// IndexFieldNumeric declares a NUMERIC field.
	IndexFieldNumeric IndexFieldType = "NUMERIC"
)

// IndexField describes one schema field of an FT index.
type IndexField struct {
	Name             string
	Alias            string
	Type             IndexFieldType
	TagSeparator     string
	TagCaseSensitive bool
}

// IndexDefinition describes an FT index over hash keys.
type IndexDefinition struct {
	Name        string
	StorageType StorageType
	Prefixes    []string
	Fields      []IndexField
}
