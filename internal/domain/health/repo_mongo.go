package health

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReadingsCollection is the collection the browser-era backend wrote to, so
// existing data stays readable.
const ReadingsCollection = "healthreadings"

type readingDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	HeartRate        int                `bson:"heartrate"`
	BloodPressure    string             `bson:"bloodpressure"`
	OxygenSaturation int                `bson:"oxygensaturation"`
	SleepQuality     string             `bson:"sleepquality"`
	Steps            int                `bson:"steps"`
	Metabolism       string             `bson:"metabolism"`
	StressLevel      string             `bson:"stresslevel"`
	Focus            string             `bson:"focus"`
	Mindfulness      string             `bson:"mindfulness"`
	Vatta            string             `bson:"vatta"`
	Pitta            string             `bson:"pitta"`
	Kapha            string             `bson:"kapha"`
	CreatedAt        time.Time          `bson:"createdAt,omitempty"`
}

func (d *readingDoc) reading() *HealthReading {
	created := d.CreatedAt
	if created.IsZero() {
		created = d.ID.Timestamp()
	}
	return &HealthReading{
		ID:               d.ID.Hex(),
		HeartRate:        d.HeartRate,
		BloodPressure:    d.BloodPressure,
		OxygenSaturation: d.OxygenSaturation,
		SleepQuality:     d.SleepQuality,
		Steps:            d.Steps,
		Metabolism:       d.Metabolism,
		StressLevel:      d.StressLevel,
		Focus:            d.Focus,
		Mindfulness:      d.Mindfulness,
		Vatta:            d.Vatta,
		Pitta:            d.Pitta,
		Kapha:            d.Kapha,
		CreatedAt:        created,
	}
}

type readingRepoMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewReadingRepoMongo(db *mongo.Database) ReadingRepository {
	return &readingRepoMongo{coll: db.Collection(ReadingsCollection), now: time.Now}
}

// newestFirst orders by the stored creation time. ObjectIDs only carry whole
// seconds plus per-process bytes, so _id alone breaks ties between writers.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// EnsureReadingIndexes creates the index backing newest-first reads.
func EnsureReadingIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ReadingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    newestFirst,
		Options: options.Index().SetName("createdAt_desc_id_desc"),
	})
	if err != nil {
		return &StoreError{Op: "create index", Err: err}
	}
	return nil
}

func (r *readingRepoMongo) Create(ctx context.Context, h *HealthReading) error {
	doc := readingDoc{
		ID:               primitive.NewObjectID(),
		HeartRate:        h.HeartRate,
		BloodPressure:    h.BloodPressure,
		OxygenSaturation: h.OxygenSaturation,
		SleepQuality:     h.SleepQuality,
		Steps:            h.Steps,
		Metabolism:       h.Metabolism,
		StressLevel:      h.StressLevel,
		Focus:            h.Focus,
		Mindfulness:      h.Mindfulness,
		Vatta:            h.Vatta,
		Pitta:            h.Pitta,
		Kapha:            h.Kapha,
		CreatedAt:        r.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	h.ID = doc.ID.Hex()
	h.CreatedAt = doc.CreatedAt
	return nil
}

func (r *readingRepoMongo) GetByID(ctx context.Context, id string) (*HealthReading, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, "get", bson.M{"_id": oid}, options.FindOne())
}

func (r *readingRepoMongo) Latest(ctx context.Context) (*HealthReading, error) {
	return r.findOne(ctx, "latest", bson.D{}, options.FindOne().SetSort(newestFirst))
}

func (r *readingRepoMongo) findOne(ctx context.Context, op string, filter interface{}, opts *options.FindOneOptions) (*HealthReading, error) {
	var doc readingDoc
	err := r.coll.FindOne(ctx, filter, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case err != nil:
		return nil, &StoreError{Op: op, Err: err}
	}
	return doc.reading(), nil
}

func (r *readingRepoMongo) List(ctx context.Context, limit, offset int) ([]*HealthReading, int, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, &StoreError{Op: "count", Err: err}
	}
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, &StoreError{Op: "list", Err: err}
	}
	defer cur.Close(ctx)

	items := make([]*HealthReading, 0, limit)
	for cur.Next(ctx) {
		var doc readingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, &StoreError{Op: "list", Err: err}
		}
		items = append(items, doc.reading())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, &StoreError{Op: "list", Err: err}
	}
	return items, int(total), nil
}
