package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes lists the indexes of every collection this package owns.
var collectionIndexes = map[string][]mongo.IndexModel{
	userCollectionName: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	},
	trainerCollectionName: {
		{Keys: bson.D{{Key: "name", Value: 1}}},
	},
	scheduleCollectionName: {
		{Keys: bson.D{{Key: "day", Value: 1}}},
		// sparse because the trainer reference is optional
		{Keys: bson.D{{Key: "trainer_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	},
	mealPlanCollectionName: {
		{Keys: bson.D{{Key: "category", Value: 1}}},
	},
	membershipCollectionName: {
		{Keys: bson.D{{Key: "price", Value: 1}}},
	},
	purchaseCollectionName: {
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "purchase_date", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "end_date", Value: 1}}},
	},
	exerciseLogCollectionName: {
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
	},
}

// EnsureIndexes creates the indexes of every collection. It keeps going
// after a failure and returns all of them joined.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []error
	for name, models := range collectionIndexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			errs = append(errs, fmt.Errorf("indexes for %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
