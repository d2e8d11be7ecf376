package itinerary

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Krritin/Tripiza/internal/models"
)

// timePattern matches zero-padded 24-hour clock times. Lexicographic order on
// matching strings coincides with chronological order, which is what the
// sorted view relies on.
var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Service implements the itinerary operations on top of a Store: date
// validation, day generation, ownership-scoped mutation and share-token
// assignment. Handlers translate its errors into status codes.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateInput struct {
	TripName  string
	StartDate string
	EndDate   string
}

type ReplaceInput struct {
	TripName  string
	StartDate string
	EndDate   string
	Days      []models.Day
}

type ActivityInput struct {
	Time     string
	Title    string
	Location string
	Notes    string
}

// Create validates the input, materializes the full day list for the date
// range and persists the document. The shareableUUID is generated here, once,
// and never again for the lifetime of the itinerary.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, in CreateInput) (*models.Itinerary, error) {
	tripName := strings.TrimSpace(in.TripName)
	if tripName == "" {
		return nil, validationErrorf("tripName is required")
	}

	start, end, err := parseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	it := &models.Itinerary{
		ID:            primitive.NewObjectID(),
		UserID:        ownerID,
		TripName:      tripName,
		StartDate:     start,
		EndDate:       end,
		Days:          generateDays(start, end),
		ShareableUUID: uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *Service) List(ctx context.Context, ownerID primitive.ObjectID) ([]models.Itinerary, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Itinerary, error) {
	return s.store.GetByID(ctx, ownerID, id)
}

// GetShared resolves an itinerary by its share token. Anyone holding the
// token may read; no write path accepts it.
func (s *Service) GetShared(ctx context.Context, shareUUID string) (*models.Itinerary, error) {
	token := strings.TrimSpace(shareUUID)
	if token == "" {
		return nil, ErrNotFound
	}
	return s.store.GetByShareUUID(ctx, token)
}

// Replace overwrites the mutable fields of an owned itinerary. When the new
// date range implies a different day count, the day list is regenerated to
// match: activities of day numbers that survive the resize are carried over,
// days beyond the new count are dropped, new trailing days start empty.
func (s *Service) Replace(ctx context.Context, ownerID, id primitive.ObjectID, in ReplaceInput) (*models.Itinerary, error) {
	tripName := strings.TrimSpace(in.TripName)
	if tripName == "" {
		return nil, validationErrorf("tripName is required")
	}

	start, end, err := parseDateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	days := resizeDays(in.Days, dayCount(start, end))
	return s.store.Replace(ctx, ownerID, id, tripName, start, end, days)
}

func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return s.store.Delete(ctx, ownerID, id)
}

// AppendActivity validates the activity, assigns its stable id and appends it
// to the named day. Storage keeps append order; only the read path sorts.
func (s *Service) AppendActivity(ctx context.Context, ownerID, id primitive.ObjectID, dayNumber int, in ActivityInput) (*models.Itinerary, error) {
	activity, err := buildActivity(in)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 {
		return nil, ErrDayNotFound
	}
	return s.store.AppendActivity(ctx, ownerID, id, dayNumber, activity)
}

// RemoveActivity deletes an activity by its stable id, so the caller never
// has to translate between sorted display order and stored append order.
func (s *Service) RemoveActivity(ctx context.Context, ownerID, id primitive.ObjectID, dayNumber int, activityID string) (*models.Itinerary, error) {
	if strings.TrimSpace(activityID) == "" {
		return nil, validationErrorf("activityId is required")
	}
	if dayNumber < 1 {
		return nil, ErrDayNotFound
	}
	return s.store.RemoveActivity(ctx, ownerID, id, dayNumber, activityID)
}

func buildActivity(in ActivityInput) (models.Activity, error) {
	timeOfDay := strings.TrimSpace(in.Time)
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)

	if !timePattern.MatchString(timeOfDay) {
		return models.Activity{}, validationErrorf("time must be a 24-hour HH:MM value")
	}
	if title == "" {
		return models.Activity{}, validationErrorf("title is required")
	}
	if location == "" {
		return models.Activity{}, validationErrorf("location is required")
	}

	return models.Activity{
		ID:       uuid.NewString(),
		Time:     timeOfDay,
		Title:    title,
		Location: location,
		Notes:    strings.TrimSpace(in.Notes),
	}, nil
}

// parseDateRange accepts plain dates or RFC 3339 timestamps, drops the
// time-of-day and rejects ranges that end before they start.
func parseDateRange(startValue, endValue string) (time.Time, time.Time, error) {
	start, err := parseDate(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, validationErrorf("startDate is invalid")
	}
	end, err := parseDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, validationErrorf("endDate is invalid")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, validationErrorf("endDate must not be before startDate")
	}
	return start, end, nil
}

func parseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, &ValidationError{Message: "unparseable date"}
}

// dayCount is the inclusive number of calendar days in the range. Both bounds
// are midnight UTC, so the division is exact.
func dayCount(start, end time.Time) int {
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

func generateDays(start, end time.Time) []models.Day {
	count := dayCount(start, end)
	days := make([]models.Day, count)
	for i := range days {
		days[i] = models.Day{Day: i + 1, Activities: []models.Activity{}}
	}
	return days
}

// resizeDays normalizes a client-supplied day list to exactly count entries
// numbered 1..count, keeping the activities of day numbers that still exist.
// Activities arriving without an id get one assigned.
func resizeDays(provided []models.Day, count int) []models.Day {
	byNumber := make(map[int][]models.Activity, len(provided))
	for _, day := range provided {
		byNumber[day.Day] = day.Activities
	}

	days := make([]models.Day, count)
	for i := range days {
		activities := byNumber[i+1]
		if activities == nil {
			activities = []models.Activity{}
		}
		for j := range activities {
			if strings.TrimSpace(activities[j].ID) == "" {
				activities[j].ID = uuid.NewString()
			}
		}
		days[i] = models.Day{Day: i + 1, Activities: activities}
	}
	return days
}

// SortedView returns a copy of the itinerary with each day's activities
// ordered by their HH:MM time. The sort is stable and computed on every read;
// stored documents stay in append order.
func SortedView(it models.Itinerary) models.Itinerary {
	view := it
	view.Days = make([]models.Day, len(it.Days))
	for i, day := range it.Days {
		activities := make([]models.Activity, len(day.Activities))
		copy(activities, day.Activities)
		sort.SliceStable(activities, func(a, b int) bool {
			return activities[a].Time < activities[b].Time
		})
		view.Days[i] = models.Day{Day: day.Day, Activities: activities}
	}
	return view
}
