package wishlist

import (
	"testing"

	"storefront/internal/domain"
)

func TestToggle_AddThenRemove(t *testing.T) {
	s := New()
	p := domain.Product{ID: "5", Title: "Cap", Price: 499, Images: []string{"/acc/cap.png"}}

	if added := s.Toggle(p); !added {
		t.Fatalf("expected first toggle to add")
	}
	if !s.Contains("5") || s.Len() != 1 {
		t.Fatalf("expected product 5 present, got %+v", s.Entries())
	}
	entry := s.Entries()[0]
	if entry.Title != "Cap" || entry.Price != 499 || entry.Image != "/acc/cap.png" {
		t.Fatalf("unexpected snapshot %+v", entry)
	}

	if added := s.Toggle(p); added {
		t.Fatalf("expected second toggle to remove")
	}
	if s.Contains("5") || s.Len() != 0 {
		t.Fatalf("expected product 5 removed")
	}
}

func TestToggle_IgnoresVariantsAndKeepsOthers(t *testing.T) {
	s := New()
	s.Toggle(domain.Product{ID: "1"})
	s.Toggle(domain.Product{ID: "2"})
	s.Toggle(domain.Product{ID: "1", Price: 10})

	if s.Len() != 1 || !s.Contains("2") || s.Contains("1") {
		t.Fatalf("unexpected entries %+v", s.Entries())
	}
}
