package repository

import (
	"context"
	"time"

	"alcyxob/fitness-center/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate record")
	ErrInvalidID = RepositoryError("invalid id")
	// ErrNoData means every read source failed. It is the explicit "no data"
	// signal callers decide on: stale content, fallback records, or an error.
	ErrNoData = RepositoryError("no data available from any source")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Reader is the read side one backing store offers for an entity.
// List returns records in the entity's fixed order.
type Reader[T any] interface {
	Source() string
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
}

// Writer is the mutation side. Create assigns an id when the record has
// none; Update and Delete return ErrNotFound for unknown ids. Successful
// writes refresh the passed record from the store.
type Writer[T any] interface {
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id string) error
}

// Store is a full read/write backing store for one entity.
type Store[T any] interface {
	Reader[T]
	Writer[T]
}

// Entity stores.
type (
	TrainerStore    = Store[domain.Trainer]
	ScheduleStore   = Store[domain.ClassSchedule]
	MealPlanStore   = Store[domain.MealPlan]
	MembershipStore = Store[domain.MembershipPlan]
)

// PurchaseReader adds the per-user queries of the membership history page.
type PurchaseReader interface {
	Reader[domain.MembershipPurchase]
	// ListByUser returns the user's purchases, newest purchase first.
	ListByUser(ctx context.Context, userID string) ([]domain.MembershipPurchase, error)
	// CurrentForUser returns the unexpired purchase ending soonest, with its
	// plan joined, or ErrNotFound.
	CurrentForUser(ctx context.Context, userID string, now time.Time) (*domain.MembershipPurchase, error)
}

// PurchaseStore is the writable purchase store.
type PurchaseStore interface {
	PurchaseReader
	Writer[domain.MembershipPurchase]
	// ExpireBefore marks active purchases whose end date is before now as
	// expired and returns how many changed.
	ExpireBefore(ctx context.Context, now time.Time) (int64, error)
}

// UserReader adds lookup by email.
type UserReader interface {
	Reader[domain.User]
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserStore is the writable user store.
type UserStore interface {
	UserReader
	Writer[domain.User]
}

// ExerciseLogRepository stores exercise logger entries. It lives in the
// document store only.
type ExerciseLogRepository interface {
	Create(ctx context.Context, entry *domain.ExerciseLog) error
	ListByUser(ctx context.Context, userID string) ([]domain.ExerciseLog, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByDate(ctx context.Context, userID, date string) (int64, error)
}
