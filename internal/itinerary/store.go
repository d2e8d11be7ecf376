package itinerary

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Krritin/Tripiza/internal/models"
)

// Store persists itinerary documents. Every owner-scoped operation filters on
// both the document id and the owner id, so an ownership mismatch surfaces as
// ErrNotFound. Implementations report persistence failures wrapped in
// ErrStoreUnavailable.
type Store interface {
	Insert(ctx context.Context, it *models.Itinerary) error

	// ListByOwner returns the owner's itineraries ordered by createdAt
	// descending. An empty result is not an error.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Itinerary, error)

	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Itinerary, error)

	// GetByShareUUID is the public lookup path; no ownership check.
	GetByShareUUID(ctx context.Context, shareUUID string) (*models.Itinerary, error)

	// Replace overwrites the mutable fields of an owned document. It never
	// touches shareableUUID or createdAt.
	Replace(ctx context.Context, ownerID, id primitive.ObjectID, tripName string, startDate, endDate time.Time, days []models.Day) (*models.Itinerary, error)

	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error

	// AppendActivity appends to the end of the named day's activity list,
	// preserving append order. Returns ErrDayNotFound if the day number is
	// out of range for the document.
	AppendActivity(ctx context.Context, ownerID, id primitive.ObjectID, dayNumber int, activity models.Activity) (*models.Itinerary, error)

	// RemoveActivity deletes an activity by its stable id from the named day.
	RemoveActivity(ctx context.Context, ownerID, id primitive.ObjectID, dayNumber int, activityID string) (*models.Itinerary, error)
}
