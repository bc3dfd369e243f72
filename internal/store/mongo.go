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

	"github.com/harentsoaR/hyno-health-api/internal/models"
)

const (
	usersCollection        = "users"
	appointmentsCollection = "appointments"
)

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique email index and the lookup indexes used
// by listings, slot checks and the per-user health records.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	_, err = db.Collection(appointmentsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "appointmentDate", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "doctorId", Value: 1}, {Key: "hospitalId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("appointments index: %w", err)
	}
	_, err = db.Collection(journalCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("journal index: %w", err)
	}
	_, err = db.Collection(medicationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("medications index: %w", err)
	}
	return nil
}

type MongoAppointments struct {
	coll *mongo.Collection
}

func NewMongoAppointments(db *mongo.Database) *MongoAppointments {
	return &MongoAppointments{coll: db.Collection(appointmentsCollection)}
}

func (r *MongoAppointments) Insert(ctx context.Context, appt *models.Appointment) error {
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *MongoAppointments) List(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appointments, nil
}

func (r *MongoAppointments) Get(ctx context.Context, id string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var appt models.Appointment
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&appt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointments) Cancel(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": models.StatusConfirmed},
		bson.M{"$set": bson.M{"status": models.StatusCancelled, "cancelledAt": at}},
	)
	if err != nil {
		return fmt.Errorf("cancel appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAppointments) DeleteCancelled(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID, "status": models.StatusCancelled})
	if err != nil {
		return 0, fmt.Errorf("delete cancelled appointments: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MongoAppointments) SlotTaken(ctx context.Context, kind, subjectID, date, hhmm string) (bool, error) {
	filter := bson.M{"type": kind, "date": date, "time": hhmm, "status": models.StatusConfirmed}
	if kind == models.SubjectDoctor {
		filter["doctorId"] = subjectID
	} else {
		filter["hospitalId"] = subjectID
	}
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return true, nil
}

type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{coll: db.Collection(usersCollection)}
}

func (r *MongoUsers) Create(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.SavedHospitals == nil {
		u.SavedHospitals = []string{}
	}
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUsers) UpdateProfile(ctx context.Context, id, fullName, phone string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := bson.M{"phone": phone}
	if fullName != "" {
		set["fullName"] = fullName
	}
	var u models.User
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return &u, nil
}

func (r *MongoUsers) SetPassword(ctx context.Context, id, hash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return fmt.Errorf("set password %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleSavedHospital flips membership in a single pipeline update so
// concurrent toggles cannot overwrite each other.
func (r *MongoUsers) ToggleSavedHospital(ctx context.Context, id, hospitalID string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	saved := bson.D{{Key: "$ifNull", Value: bson.A{"$savedHospitals", bson.A{}}}}
	hospital := bson.D{{Key: "$literal", Value: hospitalID}}
	toggled := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$in", Value: bson.A{hospital, saved}}},
		bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: saved},
			{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", hospital}}}},
		}}},
		bson.D{{Key: "$concatArrays", Value: bson.A{saved, bson.A{hospital}}}},
	}}}
	update := mongo.Pipeline{{{Key: "$set", Value: bson.D{{Key: "savedHospitals", Value: toggled}}}}}

	var out struct {
		SavedHospitals []string `bson:"savedHospitals"`
	}
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"savedHospitals": 1})).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("save hospital %s: %w", id, err)
	}
	if out.SavedHospitals == nil {
		out.SavedHospitals = []string{}
	}
	return out.SavedHospitals, nil
}

func (r *MongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
