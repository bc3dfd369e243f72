package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vitals are recorded as typed, e.g. "120/80" for blood pressure.
type Vitals struct {
	BloodPressure string `bson:"bloodPressure" json:"bloodPressure"`
	HeartRate     string `bson:"heartRate" json:"heartRate"`
	Temperature   string `bson:"temperature" json:"temperature"`
	Weight        string `bson:"weight" json:"weight"`
}

type JournalEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Date        string             `bson:"date" json:"date"` // YYYY-MM-DD
	Symptoms    string             `bson:"symptoms" json:"symptoms"`
	Vitals      Vitals             `bson:"vitals" json:"vitals"`
	Notes       string             `bson:"notes" json:"notes"`
	Medications []string           `bson:"medications" json:"medications"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Medication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Dosage    string             `bson:"dosage" json:"dosage"`
	Frequency string             `bson:"frequency" json:"frequency"`
	Reminder  bool               `bson:"reminder" json:"reminder"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// HealthGoals is one document per user, keyed by the user id.
type HealthGoals struct {
	UserID    string    `bson:"_id" json:"userId"`
	Weight    string    `bson:"weight" json:"weight"`
	Exercise  string    `bson:"exercise" json:"exercise"`
	Water     string    `bson:"water" json:"water"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
