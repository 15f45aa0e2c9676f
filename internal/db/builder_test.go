package db

import "testing"

func TestIndexBuilder(t *testing.T) {
	def := NewIndex("annex-idx:articles:article").
		Prefix("annex:articles:article:").
		Tag("hb_b0").
		TagAs("hb_b1", "band1").
		Build()

	if def.Name != "annex-idx:articles:article" {
		t.Errorf("name = %q", def.Name)
	}
	if def.StorageType != StorageHash {
		t.Errorf("storage = %q, want HASH", def.StorageType)
	}
	if len(def.Prefixes) != 1 || def.Prefixes[0] != "annex:articles:article:" {
		t.Errorf("prefixes = %v", def.Prefixes)
	}
	if len(def.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(def.Fields))
	}
	if def.Fields[0].Type != IndexFieldTag || def.Fields[0].Name != "hb_b0" {
		t.Errorf("field[0] = %+v", def.Fields[0])
	}
	if def.Fields[1].Alias != "band1" {
		t.Errorf("field[1].Alias = %q", def.Fields[1].Alias)
	}
}
