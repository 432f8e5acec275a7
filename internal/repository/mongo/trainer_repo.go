package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/domain"
)

const trainerCollectionName = "trainers"

type trainerDoc struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	Specialization string    `bson:"specialization"`
	Experience     int       `bson:"experience"`
	Bio            string    `bson:"bio"`
	ImageURL       string    `bson:"image_url"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func (d *trainerDoc) toDomain() domain.Trainer {
	return domain.Trainer{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		Specialization: d.Specialization,
		Experience:     d.Experience,
		Bio:            d.Bio,
		ImageURL:       d.ImageURL,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func newTrainerDoc(t *domain.Trainer) (trainerDoc, error) {
	return trainerDoc{
		ID:             t.ID,
		Name:           t.Name,
		Email:          t.Email,
		Specialization: t.Specialization,
		Experience:     t.Experience,
		Bio:            t.Bio,
		ImageURL:       t.ImageURL,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}, nil
}

// NewMongoTrainerRepository returns the secondary trainer store, ordered by name.
func NewMongoTrainerRepository(db *mongo.Database) Mirror[domain.Trainer] {
	return &collection[domain.Trainer, trainerDoc]{
		coll:     db.Collection(trainerCollectionName),
		entity:   trainerCollectionName,
		sort:     bson.D{{Key: "name", Value: 1}},
		key:      func(d *trainerDoc) string { return d.ID },
		toDomain: (*trainerDoc).toDomain,
		toDoc:    newTrainerDoc,
	}
}
