package itinerary

import (
	"errors"
	"testing"
	"time"

	"github.com/Krritin/Tripiza/internal/models"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDayCountIsInclusive(t *testing.T) {
	if got := dayCount(date("2024-06-01"), date("2024-06-03")); got != 3 {
		t.Fatalf("expected 3 days, got %d", got)
	}
	if got := dayCount(date("2024-06-01"), date("2024-06-01")); got != 1 {
		t.Fatalf("expected 1 day for a single-day trip, got %d", got)
	}
}

func TestGenerateDaysNumbersFromOne(t *testing.T) {
	days := generateDays(date("2024-06-01"), date("2024-06-03"))
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, day := range days {
		if day.Day != i+1 {
			t.Fatalf("expected day number %d at index %d, got %d", i+1, i, day.Day)
		}
		if len(day.Activities) != 0 {
			t.Fatalf("expected day %d to start empty, got %d activities", day.Day, len(day.Activities))
		}
	}
}

func TestParseDateRangeRejectsReversedRange(t *testing.T) {
	_, _, err := parseDateRange("2024-06-03", "2024-06-01")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for reversed range, got %v", err)
	}
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "2024-13-40"} {
		_, _, err := parseDateRange(input, "2024-06-01")
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError for startDate %q, got %v", input, err)
		}
	}
}

func TestParseDateAcceptsTimestampsAndDropsTimeOfDay(t *testing.T) {
	parsed, err := parseDate("2024-06-01T15:04:05Z")
	if err != nil {
		t.Fatalf("parseDate returned error: %v", err)
	}
	if !parsed.Equal(date("2024-06-01")) {
		t.Fatalf("expected midnight 2024-06-01, got %v", parsed)
	}
}

func TestTimePattern(t *testing.T) {
	valid := []string{"00:00", "08:30", "14:00", "23:59"}
	for _, v := range valid {
		if !timePattern.MatchString(v) {
			t.Fatalf("expected %q to be a valid time", v)
		}
	}
	invalid := []string{"9:00", "24:00", "12:60", "12:5", "noon", ""}
	for _, v := range invalid {
		if timePattern.MatchString(v) {
			t.Fatalf("expected %q to be rejected", v)
		}
	}
}

func TestSortedViewOrdersByTime(t *testing.T) {
	it := models.Itinerary{
		Days: []models.Day{{
			Day: 1,
			Activities: []models.Activity{
				{ID: "a", Time: "09:00"},
				{ID: "b", Time: "08:30"},
				{ID: "c", Time: "14:00"},
			},
		}},
	}

	view := SortedView(it)
	got := []string{view.Days[0].Activities[0].Time, view.Days[0].Activities[1].Time, view.Days[0].Activities[2].Time}
	want := []string{"08:30", "09:00", "14:00"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected sorted times %v, got %v", want, got)
		}
	}

	// Storage order is untouched.
	if it.Days[0].Activities[0].ID != "a" {
		t.Fatal("expected original append order to be preserved")
	}
}

func TestSortedViewIsStableAndIdempotent(t *testing.T) {
	it := models.Itinerary{
		Days: []models.Day{{
			Day: 1,
			Activities: []models.Activity{
				{ID: "first", Time: "09:00"},
				{ID: "second", Time: "09:00"},
				{ID: "third", Time: "08:00"},
			},
		}},
	}

	once := SortedView(it)
	twice := SortedView(once)

	if once.Days[0].Activities[1].ID != "first" || once.Days[0].Activities[2].ID != "second" {
		t.Fatal("expected equal times to keep append order")
	}
	for i := range once.Days[0].Activities {
		if once.Days[0].Activities[i].ID != twice.Days[0].Activities[i].ID {
			t.Fatal("expected sorting twice to yield the same sequence")
		}
	}
}

func TestResizeDaysCarriesSurvivingActivities(t *testing.T) {
	provided := []models.Day{
		{Day: 1, Activities: []models.Activity{}},
		{Day: 2, Activities: []models.Activity{{ID: "keep", Time: "10:00", Title: "Museum", Location: "Paris"}}},
		{Day: 3, Activities: []models.Activity{{ID: "drop", Time: "11:00", Title: "Hike", Location: "Alps"}}},
	}

	shrunk := resizeDays(provided, 2)
	if len(shrunk) != 2 {
		t.Fatalf("expected 2 days, got %d", len(shrunk))
	}
	if len(shrunk[1].Activities) != 1 || shrunk[1].Activities[0].ID != "keep" {
		t.Fatal("expected day 2 activities to be carried over")
	}

	grown := resizeDays(provided, 4)
	if len(grown) != 4 {
		t.Fatalf("expected 4 days, got %d", len(grown))
	}
	if grown[3].Day != 4 || len(grown[3].Activities) != 0 {
		t.Fatal("expected a new empty day 4")
	}
}

func TestResizeDaysAssignsMissingActivityIDs(t *testing.T) {
	provided := []models.Day{
		{Day: 1, Activities: []models.Activity{{Time: "10:00", Title: "Lunch", Location: "Rome"}}},
	}

	days := resizeDays(provided, 1)
	if days[0].Activities[0].ID == "" {
		t.Fatal("expected an id to be assigned to an activity arriving without one")
	}
}
