package repository

import (
	"context"
	"errors"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingLogCollection is the MongoDB collection holding processed requests.
const BookingLogCollection = "booking_requests"

// MongoBookingLogRepository implements BookingLogRepository
type MongoBookingLogRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingLogRepository creates a new MongoDB booking log repository
func NewMongoBookingLogRepository(db *mongo.Database) repository.BookingLogRepository {
	collection := db.Collection(BookingLogCollection)

	ctx := context.Background()

	// Mail intake dedup looks entries up by source and message id
	sourceRefIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "source", Value: 1},
			{Key: "sourceRef", Value: 1},
		},
	}

	// Index on receivedAt for sorting and the intake window
	receivedAtIndex := mongo.IndexModel{
		Keys: bson.M{"receivedAt": -1},
	}

	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		sourceRefIndex,
		receivedAtIndex,
		statusIndex,
	})

	return &MongoBookingLogRepository{
		collection: collection,
	}
}

// Save inserts a log entry
func (r *MongoBookingLogRepository) Save(ctx context.Context, log *entity.BookingLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

// FindByID finds a log entry by ID
func (r *MongoBookingLogRepository) FindByID(ctx context.Context, id string) (*entity.BookingLog, error) {
	var log entity.BookingLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindRecent returns the latest entries, most recent first
func (r *MongoBookingLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.BookingLog, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := make([]*entity.BookingLog, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

// FindBySourceRefs finds entries of a source by their external references
// (batch operation), keyed by reference
func (r *MongoBookingLogRepository) FindBySourceRefs(ctx context.Context, source string, refs []string) (map[string]*entity.BookingLog, error) {
	if len(refs) == 0 {
		return make(map[string]*entity.BookingLog), nil
	}

	filter := bson.M{
		"source":    source,
		"sourceRef": bson.M{"$in": refs},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := make(map[string]*entity.BookingLog)
	for cursor.Next(ctx) {
		var log entity.BookingLog
		if err := cursor.Decode(&log); err != nil {
			continue
		}
		result[log.SourceRef] = &log
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// GetLatest gets the most recently received entry of a source, or nil
func (r *MongoBookingLogRepository) GetLatest(ctx context.Context, source string) (*entity.BookingLog, error) {
	var log entity.BookingLog
	opts := options.FindOne().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"source": source}, opts).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
