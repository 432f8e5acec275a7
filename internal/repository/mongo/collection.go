package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/fitness-center/internal/repository"
)

// collection maps one domain entity T onto documents D. Reads go through
// an aggregation so joined entities can be attached with $lookup.
type collection[T any, D any] struct {
	coll     *mongo.Collection
	entity   string
	sort     bson.D
	joins    mongo.Pipeline
	key      func(*D) string
	toDomain func(*D) T
	toDoc    func(*T) (D, error)
}

func (c *collection[T, D]) Source() string { return SourceName }

func (c *collection[T, D]) find(ctx context.Context, filter bson.D, sort bson.D, limit int64) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	pipeline := mongo.Pipeline{{{Key: "$match", Value: filter}}}
	if len(sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline, c.joins...)

	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", SourceName, c.entity, err)
	}
	defer cursor.Close(ctx)

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s %s decode: %w", SourceName, c.entity, err)
	}
	out := make([]T, len(docs))
	for i := range docs {
		out[i] = c.toDomain(&docs[i])
	}
	return out, nil
}

// List returns every document in the collection's fixed order.
func (c *collection[T, D]) List(ctx context.Context) ([]T, error) {
	return c.find(ctx, nil, c.sort, 0)
}

// GetByID returns one document or repository.ErrNotFound.
func (c *collection[T, D]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, repository.ErrInvalidID
	}
	found, err := c.find(ctx, bson.D{{Key: "_id", Value: id}}, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

// Upsert replaces the document with rec's id, inserting it when missing.
// It is how records are mirrored from the primary store.
func (c *collection[T, D]) Upsert(ctx context.Context, rec *T) error {
	doc, err := c.toDoc(rec)
	if err != nil {
		return err
	}
	id := c.key(&doc)
	if id == "" {
		return repository.ErrInvalidID
	}
	_, err = c.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
		}
		return fmt.Errorf("%s %s upsert: %w", SourceName, c.entity, err)
	}
	return nil
}

// DeleteMissing removes documents whose id is not in keep.
func (c *collection[T, D]) DeleteMissing(ctx context.Context, keep []string) (int64, error) {
	if keep == nil {
		keep = []string{}
	}
	res, err := c.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": keep}})
	if err != nil {
		return 0, fmt.Errorf("%s %s prune: %w", SourceName, c.entity, err)
	}
	return res.DeletedCount, nil
}

// Mirror is the write surface a secondary offers for synchronisation.
type Mirror[T any] interface {
	repository.Reader[T]
	Upsert(ctx context.Context, rec *T) error
	DeleteMissing(ctx context.Context, keep []string) (int64, error)
}
