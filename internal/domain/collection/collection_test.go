package collection

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		colName string
		docType string
		bands   []string
		dims    int
		wantErr bool
	}{
		{"valid", "articles", "article", []string{"b0", "b1"}, 128, false},
		{"missing name", "", "article", []string{"b0"}, 128, true},
		{"missing type", "articles", "", []string{"b0"}, 128, true},
		{"no bands", "articles", "article", nil, 128, true},
		{"empty band", "articles", "article", []string{""}, 128, true},
		{"duplicate band", "articles", "article", []string{"b0", "b0"}, 128, true},
		{"zero dims", "articles", "article", []string{"b0"}, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.colName, tc.docType, tc.bands, tc.dims)
			if (err != nil) != tc.wantErr {
				t.Errorf("New() error = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}

func TestNew_CopiesBands(t *testing.T) {
	bands := []string{"b0"}
	col, err := New("articles", "article", bands, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bands[0] = "mutated"
	if col.Bands()[0] != "b0" {
		t.Error("collection mutated through input slice")
	}
}
