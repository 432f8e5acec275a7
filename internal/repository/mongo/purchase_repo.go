package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

const purchaseCollectionName = "membership_purchases"

type purchaseDoc struct {
	ID            string         `bson:"_id"`
	UserID        string         `bson:"user_id"`
	MembershipID  string         `bson:"membership_id"`
	Membership    *membershipDoc `bson:"membership,omitempty"` // filled by $lookup
	PurchaseDate  time.Time      `bson:"purchase_date"`
	StartDate     time.Time      `bson:"start_date"`
	EndDate       time.Time      `bson:"end_date"`
	AmountPaid    float64        `bson:"amount_paid"`
	PaymentMethod string         `bson:"payment_method"`
	Status        string         `bson:"status"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

func (d *purchaseDoc) toDomain() domain.MembershipPurchase {
	p := domain.MembershipPurchase{
		ID:            d.ID,
		UserID:        d.UserID,
		MembershipID:  d.MembershipID,
		PurchaseDate:  d.PurchaseDate,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		AmountPaid:    d.AmountPaid,
		PaymentMethod: d.PaymentMethod,
		Status:        domain.PurchaseStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Membership != nil {
		m := d.Membership.toDomain()
		p.Membership = &m
	}
	return p
}

func newPurchaseDoc(p *domain.MembershipPurchase) (purchaseDoc, error) {
	return purchaseDoc{
		ID:            p.ID,
		UserID:        p.UserID,
		MembershipID:  p.MembershipID,
		PurchaseDate:  p.PurchaseDate,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		AmountPaid:    p.AmountPaid,
		PaymentMethod: p.PaymentMethod,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

var membershipJoin = mongo.Pipeline{
	{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: membershipCollectionName},
		{Key: "localField", Value: "membership_id"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "membership"},
	}}},
	{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: "$membership"},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}},
}

// PurchaseMirror is the secondary purchase store.
type PurchaseMirror interface {
	repository.PurchaseReader
	Upsert(ctx context.Context, p *domain.MembershipPurchase) error
	DeleteMissing(ctx context.Context, keep []string) (int64, error)
}

type mongoPurchaseRepository struct {
	*collection[domain.MembershipPurchase, purchaseDoc]
}

// NewMongoPurchaseRepository returns the secondary purchase store, newest
// purchase first, with the plan joined.
func NewMongoPurchaseRepository(db *mongo.Database) PurchaseMirror {
	return &mongoPurchaseRepository{
		collection: &collection[domain.MembershipPurchase, purchaseDoc]{
			coll:     db.Collection(purchaseCollectionName),
			entity:   purchaseCollectionName,
			sort:     bson.D{{Key: "purchase_date", Value: -1}},
			joins:    membershipJoin,
			key:      func(d *purchaseDoc) string { return d.ID },
			toDomain: (*purchaseDoc).toDomain,
			toDoc:    newPurchaseDoc,
		},
	}
}

func (r *mongoPurchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.MembershipPurchase, error) {
	return r.find(ctx, bson.D{{Key: "user_id", Value: userID}}, bson.D{{Key: "purchase_date", Value: -1}}, 0)
}

func (r *mongoPurchaseRepository) CurrentForUser(ctx context.Context, userID string, now time.Time) (*domain.MembershipPurchase, error) {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "end_date", Value: bson.M{"$gte": now}},
	}
	found, err := r.find(ctx, filter, bson.D{{Key: "end_date", Value: 1}}, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}
