package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Krritin/Tripiza/internal/itinerary"
	"github.com/Krritin/Tripiza/internal/models"
)

// Memory is a map-backed itinerary.Store with the same scoping and
// share-token uniqueness semantics as the Mongo implementation. It backs the
// service and handler tests, which stay database-free.
type Memory struct {
	mu     sync.RWMutex
	docs   map[primitive.ObjectID]models.Itinerary
	shares map[string]primitive.ObjectID
}

func NewMemory() *Memory {
	return &Memory{
		docs:   make(map[primitive.ObjectID]models.Itinerary),
		shares: make(map[string]primitive.ObjectID),
	}
}

func (m *Memory) Insert(_ context.Context, it *models.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.shares[it.ShareableUUID]; exists {
		return fmt.Errorf("%w: duplicate shareableUUID", itinerary.ErrStoreUnavailable)
	}
	if it.ID.IsZero() {
		it.ID = primitive.NewObjectID()
	}

	m.docs[it.ID] = cloneItinerary(*it)
	m.shares[it.ShareableUUID] = it.ID
	return nil
}

func (m *Memory) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Itinerary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	itineraries := make([]models.Itinerary, 0)
	for _, doc := range m.docs {
		if doc.UserID == ownerID {
			itineraries = append(itineraries, cloneItinerary(doc))
		}
	}
	sort.SliceStable(itineraries, func(a, b int) bool {
		return itineraries[a].CreatedAt.After(itineraries[b].CreatedAt)
	})
	return itineraries, nil
}

func (m *Memory) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*models.Itinerary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookup(ownerID, id)
}

func (m *Memory) GetByShareUUID(_ context.Context, shareUUID string) (*models.Itinerary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.shares[shareUUID]
	if !ok {
		return nil, itinerary.ErrNotFound
	}
	doc := cloneItinerary(m.docs[id])
	return &doc, nil
}

func (m *Memory) Replace(_ context.Context, ownerID, id primitive.ObjectID, tripName string, startDate, endDate time.Time, days []models.Day) (*models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}

	doc.TripName = tripName
	doc.StartDate = startDate
	doc.EndDate = endDate
	doc.Days = days

	m.docs[id] = cloneItinerary(*doc)
	return doc, nil
}

func (m *Memory) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.lookup(ownerID, id)
	if err != nil {
		return err
	}

	delete(m.docs, id)
	delete(m.shares, doc.ShareableUUID)
	return nil
}

func (m *Memory) AppendActivity(_ context.Context, ownerID, id primitive.ObjectID, dayNumber int, activity models.Activity) (*models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}

	index := dayIndex(doc.Days, dayNumber)
	if index == -1 {
		return nil, itinerary.ErrDayNotFound
	}

	doc.Days[index].Activities = append(doc.Days[index].Activities, activity)
	m.docs[id] = cloneItinerary(*doc)
	return doc, nil
}

func (m *Memory) RemoveActivity(_ context.Context, ownerID, id primitive.ObjectID, dayNumber int, activityID string) (*models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, err := m.lookup(ownerID, id)
	if err != nil {
		return nil, err
	}

	index := dayIndex(doc.Days, dayNumber)
	if index == -1 {
		return nil, itinerary.ErrDayNotFound
	}

	kept := make([]models.Activity, 0, len(doc.Days[index].Activities))
	found := false
	for _, activity := range doc.Days[index].Activities {
		if activity.ID == activityID {
			found = true
			continue
		}
		kept = append(kept, activity)
	}
	if !found {
		return nil, itinerary.ErrActivityNotFound
	}

	doc.Days[index].Activities = kept
	m.docs[id] = cloneItinerary(*doc)
	return doc, nil
}

// lookup must be called with the mutex held. It returns a private copy.
func (m *Memory) lookup(ownerID, id primitive.ObjectID) (*models.Itinerary, error) {
	doc, ok := m.docs[id]
	if !ok || doc.UserID != ownerID {
		return nil, itinerary.ErrNotFound
	}
	clone := cloneItinerary(doc)
	return &clone, nil
}

func cloneItinerary(it models.Itinerary) models.Itinerary {
	clone := it
	clone.Days = make([]models.Day, len(it.Days))
	for i, day := range it.Days {
		activities := make([]models.Activity, len(day.Activities))
		copy(activities, day.Activities)
		clone.Days[i] = models.Day{Day: day.Day, Activities: activities}
	}
	return clone
}
