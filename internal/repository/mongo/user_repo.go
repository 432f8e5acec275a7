package mongo

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
	"alcyxob/fitness-center/internal/repository"
)

const userCollectionName = "users"

type userDoc struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func (d *userDoc) toDomain() domain.User {
	return normalize.User(domain.User{
		ID:           d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	})
}

func newUserDoc(u *domain.User) (userDoc, error) {
	return userDoc{
		ID:           u.ID,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         string(domain.ParseRole(string(u.Role))),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

// UserMirror is the secondary account store.
type UserMirror interface {
	repository.UserReader
	Upsert(ctx context.Context, u *domain.User) error
	DeleteMissing(ctx context.Context, keep []string) (int64, error)
}

type mongoUserRepository struct {
	*collection[domain.User, userDoc]
}

// NewMongoUserRepository returns the secondary account store.
func NewMongoUserRepository(db *mongo.Database) UserMirror {
	return &mongoUserRepository{
		collection: &collection[domain.User, userDoc]{
			coll:     db.Collection(userCollectionName),
			entity:   userCollectionName,
			sort:     bson.D{{Key: "email", Value: 1}},
			key:      func(d *userDoc) string { return d.ID },
			toDomain: (*userDoc).toDomain,
			toDoc:    newUserDoc,
		},
	}
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	found, err := r.find(ctx, bson.D{{Key: "email", Value: strings.ToLower(strings.TrimSpace(email))}}, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}
