package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Krritin/Tripiza/internal/itinerary"
	"github.com/Krritin/Tripiza/internal/models"
)

func seedItinerary(owner primitive.ObjectID, share string, createdAt time.Time) *models.Itinerary {
	return &models.Itinerary{
		UserID:        owner,
		TripName:      "Trip",
		StartDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Days:          []models.Day{{Day: 1, Activities: []models.Activity{}}, {Day: 2, Activities: []models.Activity{}}},
		ShareableUUID: share,
		CreatedAt:     createdAt,
	}
}

func TestMemoryRejectsDuplicateShareToken(t *testing.T) {
	mem := NewMemory()
	owner := primitive.NewObjectID()

	if err := mem.Insert(context.Background(), seedItinerary(owner, "token-1", time.Now())); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	err := mem.Insert(context.Background(), seedItinerary(owner, "token-1", time.Now()))
	if !errors.Is(err, itinerary.ErrStoreUnavailable) {
		t.Fatalf("expected duplicate share token to be rejected, got %v", err)
	}
}

func TestMemoryScopesLookupsByOwner(t *testing.T) {
	mem := NewMemory()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	doc := seedItinerary(owner, "token-2", time.Now())
	if err := mem.Insert(context.Background(), doc); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, err := mem.GetByID(context.Background(), stranger, doc.ID); !errors.Is(err, itinerary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a foreign owner, got %v", err)
	}
	if _, err := mem.GetByID(context.Background(), owner, doc.ID); err != nil {
		t.Fatalf("expected owner lookup to succeed, got %v", err)
	}
	if _, err := mem.GetByShareUUID(context.Background(), "token-2"); err != nil {
		t.Fatalf("expected public share lookup to succeed, got %v", err)
	}
}

func TestMemoryListByOwnerOrdersByCreatedAtDesc(t *testing.T) {
	mem := NewMemory()
	owner := primitive.NewObjectID()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	for i, share := range []string{"older", "newer", "newest"} {
		doc := seedItinerary(owner, share, base.Add(time.Duration(i)*time.Hour))
		if err := mem.Insert(context.Background(), doc); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	list, err := mem.ListByOwner(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 itineraries, got %d", len(list))
	}
	for _, expected := range []string{"newest", "newer", "older"} {
		if list[0].ShareableUUID == expected {
			list = list[1:]
			continue
		}
		t.Fatalf("expected %q next, got %q", expected, list[0].ShareableUUID)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	mem := NewMemory()
	owner := primitive.NewObjectID()

	doc := seedItinerary(owner, "token-3", time.Now())
	if err := mem.Insert(context.Background(), doc); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	fetched, err := mem.GetByID(context.Background(), owner, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	fetched.Days[0].Activities = append(fetched.Days[0].Activities, models.Activity{ID: "rogue"})

	again, err := mem.GetByID(context.Background(), owner, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(again.Days[0].Activities) != 0 {
		t.Fatal("expected stored document to be isolated from caller mutation")
	}
}
