package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

const (
	doctorsCollection   = "doctors"
	hospitalsCollection = "hospitals"
)

// MongoCatalog backs the doctor and hospital listings and the admin edits
// made to them.
type MongoCatalog struct {
	doctors   *mongo.Collection
	hospitals *mongo.Collection
}

func NewMongoCatalog(db *mongo.Database) *MongoCatalog {
	return &MongoCatalog{
		doctors:   db.Collection(doctorsCollection),
		hospitals: db.Collection(hospitalsCollection),
	}
}

func (r *MongoCatalog) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := findAll(ctx, r.doctors, &doctors); err != nil {
		return nil, fmt.Errorf("find doctors: %w", err)
	}
	return doctors, nil
}

func (r *MongoCatalog) InsertDoctor(ctx context.Context, d *models.Doctor) error {
	return insertUnique(ctx, r.doctors, d, "doctor")
}

func (r *MongoCatalog) DeleteDoctor(ctx context.Context, id string) error {
	return deleteByID(ctx, r.doctors, id, "doctor")
}

func (r *MongoCatalog) SeedDoctors(ctx context.Context, doctors []models.Doctor) error {
	docs := make([]any, len(doctors))
	for i := range doctors {
		docs[i] = doctors[i]
	}
	return seed(ctx, r.doctors, func(i int) string { return doctors[i].ID }, docs)
}

func (r *MongoCatalog) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	if err := findAll(ctx, r.hospitals, &hospitals); err != nil {
		return nil, fmt.Errorf("find hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *MongoCatalog) InsertHospital(ctx context.Context, h *models.Hospital) error {
	return insertUnique(ctx, r.hospitals, h, "hospital")
}

func (r *MongoCatalog) DeleteHospital(ctx context.Context, id string) error {
	return deleteByID(ctx, r.hospitals, id, "hospital")
}

func (r *MongoCatalog) SeedHospitals(ctx context.Context, hospitals []models.Hospital) error {
	docs := make([]any, len(hospitals))
	for i := range hospitals {
		docs[i] = hospitals[i]
	}
	return seed(ctx, r.hospitals, func(i int) string { return hospitals[i].ID }, docs)
}

func findAll(ctx context.Context, coll *mongo.Collection, out any) error {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func insertUnique(ctx context.Context, coll *mongo.Collection, doc any, what string) error {
	_, err := coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", what, err)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id, what string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", what, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// seed fills an empty collection. The upserts only insert, so two replicas
// seeding at once converge on the same documents.
func seed(ctx context.Context, coll *mongo.Collection, id func(i int) string, docs []any) error {
	n, err := coll.CountDocuments(ctx, bson.M{}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	if n > 0 || len(docs) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, len(docs))
	for i, doc := range docs {
		writes[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id(i)}).
			SetUpdate(bson.M{"$setOnInsert": doc}).
			SetUpsert(true)
	}
	if _, err := coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("seed %s: %w", coll.Name(), err)
	}
	return nil
}
