package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Krritin/Tripiza/internal/itinerary"
	"github.com/Krritin/Tripiza/internal/models"
)

// Mongo persists itineraries in the "itineraries" collection. Owner-scoped
// operations filter on both _id and userId, so ownership mismatches come back
// as itinerary.ErrNotFound. Document atomicity is the driver's; there is no
// optimistic concurrency, concurrent replacements are last-write-wins.
type Mongo struct {
	col *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{col: db.Collection("itineraries")}
}

func (m *Mongo) Insert(ctx context.Context, it *models.Itinerary) error {
	if _, err := m.col.InsertOne(ctx, it); err != nil {
		return storeError(err)
	}
	return nil
}

func (m *Mongo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Itinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.col.Find(ctx, bson.M{"userId": ownerID}, opts)
	if err != nil {
		return nil, storeError(err)
	}
	defer cursor.Close(ctx)

	itineraries := make([]models.Itinerary, 0)
	if err := cursor.All(ctx, &itineraries); err != nil {
		return nil, storeError(err)
	}
	return itineraries, nil
}

func (m *Mongo) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Itinerary, error) {
	return m.findOne(ctx, bson.M{"_id": id, "userId": ownerID})
}

func (m *Mongo) GetByShareUUID(ctx context.Context, shareUUID string) (*models.Itinerary, error) {
	return m.findOne(ctx, bson.M{"shareableUUID": shareUUID})
}

func (m *Mongo) Replace(ctx context.Context, ownerID, id primitive.ObjectID, tripName string, startDate, endDate time.Time, days []models.Day) (*models.Itinerary, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	res := m.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{
			"tripName":  tripName,
			"startDate": startDate,
			"endDate":   endDate,
			"days":      days,
		}},
		opts,
	)

	var updated models.Itinerary
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, itinerary.ErrNotFound
		}
		return nil, storeError(err)
	}
	return &updated, nil
}

func (m *Mongo) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return storeError(err)
	}
	if res.DeletedCount == 0 {
		return itinerary.ErrNotFound
	}
	return nil
}

func (m *Mongo) AppendActivity(ctx context.Context, ownerID, id primitive.ObjectID, dayNumber int, activity models.Activity) (*models.Itinerary, error) {
	it, err := m.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	index := dayIndex(it.Days, dayNumber)
	if index == -1 {
		return nil, itinerary.ErrDayNotFound
	}

	it.Days[index].Activities = append(it.Days[index].Activities, activity)
	return m.writeDays(ctx, it)
}

func (m *Mongo) RemoveActivity(ctx context.Context, ownerID, id primitive.ObjectID, dayNumber int, activityID string) (*models.Itinerary, error) {
	it, err := m.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	index := dayIndex(it.Days, dayNumber)
	if index == -1 {
		return nil, itinerary.ErrDayNotFound
	}

	kept := make([]models.Activity, 0, len(it.Days[index].Activities))
	found := false
	for _, activity := range it.Days[index].Activities {
		if activity.ID == activityID {
			found = true
			continue
		}
		kept = append(kept, activity)
	}
	if !found {
		return nil, itinerary.ErrActivityNotFound
	}

	it.Days[index].Activities = kept
	return m.writeDays(ctx, it)
}

func (m *Mongo) findOne(ctx context.Context, filter bson.M) (*models.Itinerary, error) {
	var it models.Itinerary
	if err := m.col.FindOne(ctx, filter).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, itinerary.ErrNotFound
		}
		return nil, storeError(err)
	}
	return &it, nil
}

func (m *Mongo) writeDays(ctx context.Context, it *models.Itinerary) (*models.Itinerary, error) {
	_, err := m.col.UpdateByID(ctx, it.ID, bson.M{"$set": bson.M{"days": it.Days}})
	if err != nil {
		return nil, storeError(err)
	}
	return it, nil
}

func dayIndex(days []models.Day, dayNumber int) int {
	for i, day := range days {
		if day.Day == dayNumber {
			return i
		}
	}
	return -1
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", itinerary.ErrStoreUnavailable, err)
}
