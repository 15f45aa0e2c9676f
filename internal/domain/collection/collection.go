// Package collection holds the collection registration model: the band
// schema and vector dimensionality shared by every document of one
// (collection, type) pair.
package collection

import "fmt"

// Collection describes one registered (collection, type) pair.
type Collection struct {
	name       string
	docType    string
	bands      []string
	dimensions int
}

// New validates and constructs a collection registration.
func New(name, docType string, bands []string, dimensions int) (Collection, error) {
	if name == "" {
		return Collection{}, fmt.Errorf("collection name is required")
	}
	if docType == "" {
		return Collection{}, fmt.Errorf("document type is required")
	}
	if len(bands) == 0 {
		return Collection{}, fmt.Errorf("at least one band is required")
	}
	if dimensions <= 0 {
		return Collection{}, fmt.Errorf("dimensions must be positive, got %d", dimensions)
	}
	seen := make(map[string]struct{}, len(bands))
	for _, b := range bands {
		if b == "" {
			return Collection{}, fmt.Errorf("band name must not be empty")
		}
		if _, dup := seen[b]; dup {
			return Collection{}, fmt.Errorf("duplicate band %q", b)
		}
		seen[b] = struct{}{}
	}
	cp := make([]string, len(bands))
	copy(cp, bands)
	return Collection{name: name, docType: docType, bands: cp, dimensions: dimensions}, nil
}

// Reconstruct rebuilds a collection from storage without validation.
func Reconstruct(name, docType string, bands []string, dimensions int) Collection {
	return Collection{name: name, docType: docType, bands: bands, dimensions: dimensions}
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// DocType returns the document type.
func (c *Collection) DocType() string { return c.docType }

// Bands returns the declared band names.
func (c *Collection) Bands() []string { return c.bands }

// Dimensions returns the vector dimensionality.
func (c *Collection) Dimensions() int { return c.dimensions }
