package db

import (
	"testing"

	"github.com/activelife/activelife/internal/models"
)

func TestHighlightsCacheRepository_RoundTrip(t *testing.T) {
	repo := NewHighlightsCacheRepository(newTestDatabase(t))

	if _, found, err := repo.Get(1, "hash-1"); err != nil || found {
		t.Fatalf("expected clean miss, got found=%v err=%v", found, err)
	}

	age := 44
	stored := models.ExtractedHighlights{Highlights: "Elevated blood pressure", Age: &age}
	if err := repo.Put(1, "hash-1", stored); err != nil {
		t.Fatalf("put highlights: %v", err)
	}

	loaded, found, err := repo.Get(1, "hash-1")
	if err != nil {
		t.Fatalf("get highlights: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if loaded.Highlights != stored.Highlights || loaded.Age == nil || *loaded.Age != 44 {
		t.Fatalf("unexpected cached payload: %+v", loaded)
	}

	if _, found, err := repo.Get(2, "hash-1"); err != nil || found {
		t.Fatalf("expected miss for another user, got found=%v err=%v", found, err)
	}
}
