package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alcyxob/fitness-center/internal/domain"
)

// Sourced is anything that names the backing store it reads from.
type Sourced interface {
	Source() string
}

// ReadFirst runs read against each source in rank order and returns the
// first success. ErrNotFound and ErrInvalidID are answers, not outages, and
// stop the walk. Other failures are logged and the next source is tried.
// When every source fails the result wraps ErrNoData. No source is
// remembered between calls.
func ReadFirst[R Sourced, V any](ctx context.Context, entity, op string, sources []R, read func(context.Context, R) (V, error)) (V, error) {
	var zero V
	var errs []error
	for i, src := range sources {
		v, err := read(ctx, src)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidID) {
			return zero, err
		}
		errs = append(errs, fmt.Errorf("%s: %w", src.Source(), err))
		if i < len(sources)-1 {
			log.Printf("WARN: %s %s from %s failed: %v; trying next source", entity, op, src.Source(), err)
		} else {
			log.Printf("ERROR: %s %s from %s failed: %v", entity, op, src.Source(), err)
		}
		if ctx.Err() != nil {
			// a cancelled request cannot be served by any source
			break
		}
	}
	return zero, fmt.Errorf("%w: %s %s: %w", ErrNoData, entity, op, errors.Join(errs...))
}

// FallbackRepository reads from a ranked list of sources, primary first,
// and writes to the primary only. A write failure is returned as is.
type FallbackRepository[T any] struct {
	entity  string
	primary Store[T]
	readers []Reader[T]
}

// NewFallbackRepository ranks primary ahead of the given secondaries.
func NewFallbackRepository[T any](entity string, primary Store[T], secondaries ...Reader[T]) *FallbackRepository[T] {
	readers := make([]Reader[T], 0, 1+len(secondaries))
	readers = append(readers, primary)
	readers = append(readers, secondaries...)
	return &FallbackRepository[T]{entity: entity, primary: primary, readers: readers}
}

// Entity is the name used in logs.
func (r *FallbackRepository[T]) Entity() string { return r.entity }

// Sources lists the read sources in rank order.
func (r *FallbackRepository[T]) Sources() []string {
	names := make([]string, len(r.readers))
	for i, rd := range r.readers {
		names[i] = rd.Source()
	}
	return names
}

// List returns the ordered records from the first source that answers.
func (r *FallbackRepository[T]) List(ctx context.Context) ([]T, error) {
	return ReadFirst(ctx, r.entity, "list", r.readers, func(ctx context.Context, rd Reader[T]) ([]T, error) {
		return rd.List(ctx)
	})
}

// GetByID returns one record from the first source that answers.
func (r *FallbackRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	return ReadFirst(ctx, r.entity, "get", r.readers, func(ctx context.Context, rd Reader[T]) (*T, error) {
		return rd.GetByID(ctx, id)
	})
}

// Create writes to the primary store.
func (r *FallbackRepository[T]) Create(ctx context.Context, rec *T) error {
	return r.primary.Create(ctx, rec)
}

// Update writes to the primary store.
func (r *FallbackRepository[T]) Update(ctx context.Context, rec *T) error {
	return r.primary.Update(ctx, rec)
}

// Delete removes from the primary store.
func (r *FallbackRepository[T]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	return r.primary.Delete(ctx, id)
}

// PurchaseRepository is the fallback repository for membership purchases.
type PurchaseRepository struct {
	*FallbackRepository[domain.MembershipPurchase]
	primary PurchaseStore
	readers []PurchaseReader
}

// NewPurchaseRepository ranks primary ahead of the given secondaries.
func NewPurchaseRepository(primary PurchaseStore, secondaries ...PurchaseReader) *PurchaseRepository {
	readers := append([]PurchaseReader{primary}, secondaries...)
	generic := make([]Reader[domain.MembershipPurchase], 0, len(secondaries))
	for _, s := range secondaries {
		generic = append(generic, s)
	}
	return &PurchaseRepository{
		FallbackRepository: NewFallbackRepository[domain.MembershipPurchase]("membership purchases", primary, generic...),
		primary:            primary,
		readers:            readers,
	}
}

// ListByUser returns the user's purchases, newest first.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.MembershipPurchase, error) {
	return ReadFirst(ctx, r.entity, "list by user", r.readers, func(ctx context.Context, rd PurchaseReader) ([]domain.MembershipPurchase, error) {
		return rd.ListByUser(ctx, userID)
	})
}

// CurrentForUser returns the user's current membership or ErrNotFound.
func (r *PurchaseRepository) CurrentForUser(ctx context.Context, userID string, now time.Time) (*domain.MembershipPurchase, error) {
	return ReadFirst(ctx, r.entity, "current", r.readers, func(ctx context.Context, rd PurchaseReader) (*domain.MembershipPurchase, error) {
		return rd.CurrentForUser(ctx, userID, now)
	})
}

// ExpireBefore runs against the primary store only.
func (r *PurchaseRepository) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	return r.primary.ExpireBefore(ctx, now)
}

// UserRepository is the fallback repository for accounts.
type UserRepository struct {
	*FallbackRepository[domain.User]
	readers []UserReader
}

// NewUserRepository ranks primary ahead of the given secondaries.
func NewUserRepository(primary UserStore, secondaries ...UserReader) *UserRepository {
	readers := append([]UserReader{primary}, secondaries...)
	generic := make([]Reader[domain.User], 0, len(secondaries))
	for _, s := range secondaries {
		generic = append(generic, s)
	}
	return &UserRepository{
		FallbackRepository: NewFallbackRepository[domain.User]("users", primary, generic...),
		readers:            readers,
	}
}

// GetByEmail looks an account up by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return ReadFirst(ctx, r.entity, "get by email", r.readers, func(ctx context.Context, rd UserReader) (*domain.User, error) {
		return rd.GetByEmail(ctx, email)
	})
}
