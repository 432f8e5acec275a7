package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/normalize"
)

const membershipCollectionName = "memberships"

type membershipDoc struct {
	ID          string        `bson:"_id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description"`
	Price       float64       `bson:"price"`
	Duration    string        `bson:"duration"`
	Features    bson.RawValue `bson:"features"`
	IsPopular   bool          `bson:"is_popular"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

func (d *membershipDoc) toDomain() domain.MembershipPlan {
	return normalize.MembershipPlan(normalize.RawMembershipPlan{
		Plan: domain.MembershipPlan{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Duration:    d.Duration,
			IsPopular:   d.IsPopular,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		},
		Features: listField(d.Features),
	})
}

func newMembershipDoc(p *domain.MembershipPlan) (membershipDoc, error) {
	features, err := arrayValue(stringItems(p.Features))
	if err != nil {
		return membershipDoc{}, fmt.Errorf("encode features: %w", err)
	}
	return membershipDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Duration:    p.Duration,
		Features:    features,
		IsPopular:   p.IsPopular,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// NewMongoMembershipRepository returns the secondary membership plan store,
// ordered by price.
func NewMongoMembershipRepository(db *mongo.Database) Mirror[domain.MembershipPlan] {
	return &collection[domain.MembershipPlan, membershipDoc]{
		coll:     db.Collection(membershipCollectionName),
		entity:   membershipCollectionName,
		sort:     bson.D{{Key: "price", Value: 1}},
		key:      func(d *membershipDoc) string { return d.ID },
		toDomain: (*membershipDoc).toDomain,
		toDoc:    newMembershipDoc,
	}
}
