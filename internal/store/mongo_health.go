package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

const (
	journalCollection     = "journal_entries"
	medicationsCollection = "medications"
	goalsCollection       = "health_goals"
)

type MongoHealth struct {
	journal     *mongo.Collection
	medications *mongo.Collection
	goals       *mongo.Collection
}

func NewMongoHealth(db *mongo.Database) *MongoHealth {
	return &MongoHealth{
		journal:     db.Collection(journalCollection),
		medications: db.Collection(medicationsCollection),
		goals:       db.Collection(goalsCollection),
	}
}

func (r *MongoHealth) InsertJournalEntry(ctx context.Context, e *models.JournalEntry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if _, err := r.journal.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (r *MongoHealth) ListJournal(ctx context.Context, userID string, f JournalFilter) ([]models.JournalEntry, error) {
	filter := bson.M{"userId": userID}
	dates := bson.M{}
	if f.From != "" {
		dates["$gte"] = f.From
	}
	if f.To != "" {
		dates["$lte"] = f.To
	}
	if len(dates) > 0 {
		filter["date"] = dates
	}
	if f.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		filter["$or"] = bson.A{bson.M{"symptoms": pattern}, bson.M{"notes": pattern}}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	cursor, err := r.journal.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode journal entries: %w", err)
	}
	return entries, nil
}

func (r *MongoHealth) UpdateJournalEntry(ctx context.Context, e *models.JournalEntry) error {
	set := bson.M{
		"date":        e.Date,
		"symptoms":    e.Symptoms,
		"vitals":      e.Vitals,
		"notes":       e.Notes,
		"medications": e.Medications,
		"updatedAt":   e.UpdatedAt,
	}
	return updateOwned(ctx, r.journal, e.ID, e.UserID, set, e, "journal entry")
}

func (r *MongoHealth) DeleteJournalEntry(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.journal, userID, id, "journal entry")
}

func (r *MongoHealth) InsertMedication(ctx context.Context, med *models.Medication) error {
	if med.ID.IsZero() {
		med.ID = primitive.NewObjectID()
	}
	if _, err := r.medications.InsertOne(ctx, med); err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	return nil
}

func (r *MongoHealth) ListMedications(ctx context.Context, userID string) ([]models.Medication, error) {
	cursor, err := r.medications.Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find medications: %w", err)
	}
	defer cursor.Close(ctx)

	meds := make([]models.Medication, 0)
	if err := cursor.All(ctx, &meds); err != nil {
		return nil, fmt.Errorf("decode medications: %w", err)
	}
	return meds, nil
}

func (r *MongoHealth) UpdateMedication(ctx context.Context, med *models.Medication) error {
	set := bson.M{
		"name":      med.Name,
		"dosage":    med.Dosage,
		"frequency": med.Frequency,
		"reminder":  med.Reminder,
	}
	return updateOwned(ctx, r.medications, med.ID, med.UserID, set, med, "medication")
}

func (r *MongoHealth) DeleteMedication(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, r.medications, userID, id, "medication")
}

func (r *MongoHealth) GetGoals(ctx context.Context, userID string) (*models.HealthGoals, error) {
	var g models.HealthGoals
	err := r.goals.FindOne(ctx, bson.M{"_id": userID}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &models.HealthGoals{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find goals %s: %w", userID, err)
	}
	return &g, nil
}

func (r *MongoHealth) SaveGoals(ctx context.Context, g *models.HealthGoals) error {
	_, err := r.goals.ReplaceOne(ctx, bson.M{"_id": g.UserID}, g, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save goals %s: %w", g.UserID, err)
	}
	return nil
}

// updateOwned applies set to the user's document and decodes the result
// back into out.
func updateOwned(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, userID string, set bson.M, out any, what string) error {
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "userId": userID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update %s %s: %w", what, id.Hex(), err)
	}
	return nil
}

func deleteOwned(ctx context.Context, coll *mongo.Collection, userID, id, what string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid, "userId": userID})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", what, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
