package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is a single timed entry within a day. The time field is a
// zero-padded 24-hour "HH:MM" string and is only ever compared, never parsed.
type Activity struct {
	ID       string `bson:"id" json:"id"`
	Time     string `bson:"time" json:"time"`
	Title    string `bson:"title" json:"title"`
	Location string `bson:"location" json:"location"`
	Notes    string `bson:"notes,omitempty" json:"notes"`
}

// Day groups the activities of one calendar day of the trip. Day numbers are
// 1-based; day N corresponds to startDate + (N-1) days. Activities are stored
// in append order.
type Day struct {
	Day        int        `bson:"day" json:"day"`
	Activities []Activity `bson:"activities" json:"activities"`
}

// Itinerary is the persisted trip document. The shareableUUID is assigned
// once at creation and is the sole public lookup key for the read-only view.
type Itinerary struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	TripName      string             `bson:"tripName" json:"tripName"`
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	EndDate       time.Time          `bson:"endDate" json:"endDate"`
	Days          []Day              `bson:"days" json:"days"`
	ShareableUUID string             `bson:"shareableUUID" json:"shareableUUID"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
