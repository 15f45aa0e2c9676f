package request

import (
	"errors"
	"testing"

	"github.com/annex-search/annex/internal/domain"
)

func validRef() Ref {
	return Ref{Collection: "articles", Type: "article", ID: "doc-1"}
}

func TestNew_Defaults(t *testing.T) {
	r, err := New(validRef(), 0, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.K1() != DefaultK1 {
		t.Errorf("k1 = %d, want %d", r.K1(), DefaultK1)
	}
	if r.K2() != DefaultK2 {
		t.Errorf("k2 = %d, want %d", r.K2(), DefaultK2)
	}
}

func TestNew_RejectsNegative(t *testing.T) {
	tests := []struct {
		name   string
		k1, k2 int
	}{
		{"negative k1", -1, 10},
		{"negative k2", 99, -5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(validRef(), tc.k1, tc.k2)
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestNew_RequiresRef(t *testing.T) {
	refs := []Ref{
		{Type: "article", ID: "doc-1"},
		{Collection: "articles", ID: "doc-1"},
		{Collection: "articles", Type: "article"},
	}
	for _, ref := range refs {
		if _, err := New(ref, 0, 0); !errors.Is(err, domain.ErrInvalidParameter) {
			t.Errorf("ref %+v: expected ErrInvalidParameter, got %v", ref, err)
		}
	}
}

func TestNew_ClampsOversized(t *testing.T) {
	r, err := New(validRef(), MaxK1+1, MaxK2+1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.K1() != MaxK1 {
		t.Errorf("k1 = %d, want %d", r.K1(), MaxK1)
	}
	if r.K2() != MaxK2 {
		t.Errorf("k2 = %d, want %d", r.K2(), MaxK2)
	}
}
