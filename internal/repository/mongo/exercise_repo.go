package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

const exerciseLogCollectionName = "exercise_logs"

// mongoExerciseLogRepository implements repository.ExerciseLogRepository
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseLogRepository creates the exercise logger store backed by MongoDB.
func NewMongoExerciseLogRepository(db *mongo.Database) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
	}
}

// Create inserts a new log entry.
func (r *mongoExerciseLogRepository) Create(ctx context.Context, entry *domain.ExerciseLog) error {
	if entry.UserID == "" || entry.Name == "" || entry.Date == "" {
		return errors.New("exercise user, name and date are required")
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// ListByUser returns the user's entries, newest date first and in logging
// order within a date.
func (r *mongoExerciseLogRepository) ListByUser(ctx context.Context, userID string) ([]domain.ExerciseLog, error) {
	var entries []domain.ExerciseLog
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes one entry, only if it belongs to userID.
func (r *mongoExerciseLogRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByDate removes a whole workout.
func (r *mongoExerciseLogRepository) DeleteByDate(ctx context.Context, userID, date string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID, "date": date})
	if err != nil {
		return 0, err
	}
	if result.DeletedCount == 0 {
		return 0, repository.ErrNotFound
	}
	return result.DeletedCount, nil
}
