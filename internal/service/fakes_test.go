package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
)

// fakeCRUD is an in-memory admin store that counts calls.
type fakeCRUD[T any] struct {
	mu    sync.Mutex
	items []T
	setID func(*T, string)
	getID func(*T) string

	creates, updates, deletes, lists int

	createErr, updateErr, deleteErr, listErr error

	// when block is set, Create signals entered and waits for block to close
	block   chan struct{}
	entered chan struct{}
}

func newFakeTrainers(items ...domain.Trainer) *fakeCRUD[domain.Trainer] {
	return &fakeCRUD[domain.Trainer]{
		items: items,
		setID: func(t *domain.Trainer, id string) { t.ID = id },
		getID: func(t *domain.Trainer) string { return t.ID },
	}
}

func (f *fakeCRUD[T]) List(ctx context.Context) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]T, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeCRUD[T]) Create(ctx context.Context, rec *T) error {
	f.mu.Lock()
	f.creates++
	block, entered := f.block, f.entered
	f.mu.Unlock()
	if block != nil {
		entered <- struct{}{}
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.setID(rec, fmt.Sprintf("id-%d", len(f.items)+1))
	f.items = append(f.items, *rec)
	return nil
}

func (f *fakeCRUD[T]) Update(ctx context.Context, rec *T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.items {
		if f.getID(&f.items[i]) == f.getID(rec) {
			f.items[i] = *rec
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCRUD[T]) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.items {
		if f.getID(&f.items[i]) == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeCRUD[T]) calls() (creates, lists int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.lists
}

// listFunc adapts a function to ListReader.
type listFunc[T any] func(ctx context.Context) ([]T, error)

func (fn listFunc[T]) List(ctx context.Context) ([]T, error) { return fn(ctx) }

func listOf[T any](items ...T) listFunc[T] {
	return func(context.Context) ([]T, error) { return items, nil }
}

func failingList[T any](err error) listFunc[T] {
	return func(context.Context) ([]T, error) { return nil, err }
}

// fakeUsers is an in-memory user store keyed by email.
type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]domain.User
	creates int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]domain.User)}
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byEmail)+1)
	f.byEmail[u.Email] = *u
	return nil
}

// fakePlans serves membership plans by id.
type fakePlans struct {
	plans map[string]domain.MembershipPlan
	err   error
}

func (f fakePlans) GetByID(ctx context.Context, id string) (*domain.MembershipPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// fakePurchases is an in-memory purchase store.
type fakePurchases struct {
	mu        sync.Mutex
	items     []domain.MembershipPurchase
	createErr error
	expired   []time.Time
}

func (f *fakePurchases) Create(ctx context.Context, p *domain.MembershipPurchase) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("p-%d", len(f.items)+1)
	f.items = append(f.items, *p)
	return nil
}

func (f *fakePurchases) ListByUser(ctx context.Context, userID string) ([]domain.MembershipPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.MembershipPurchase
	for _, p := range f.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return out, nil
}

func (f *fakePurchases) CurrentForUser(ctx context.Context, userID string, now time.Time) (*domain.MembershipPurchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *domain.MembershipPurchase
	for i := range f.items {
		p := &f.items[i]
		if p.UserID != userID || p.EndDate.Before(now) {
			continue
		}
		if best == nil || p.EndDate.Before(best.EndDate) {
			best = p
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	cp := *best
	return &cp, nil
}

func (f *fakePurchases) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expired = append(f.expired, now)
	var n int64
	for i := range f.items {
		if f.items[i].Status == domain.PurchaseActive && f.items[i].EndDate.Before(now) {
			f.items[i].Status = domain.PurchaseExpired
			n++
		}
	}
	return n, nil
}

// fakeExerciseLogs is an in-memory exercise log store.
type fakeExerciseLogs struct {
	items []domain.ExerciseLog
	seq   int
}

func (f *fakeExerciseLogs) Create(ctx context.Context, e *domain.ExerciseLog) error {
	f.seq++
	e.ID = fmt.Sprintf("e-%d", f.seq)
	e.CreatedAt = time.Date(2026, 1, 1, 0, 0, f.seq, 0, time.UTC)
	f.items = append(f.items, *e)
	return nil
}

func (f *fakeExerciseLogs) ListByUser(ctx context.Context, userID string) ([]domain.ExerciseLog, error) {
	var out []domain.ExerciseLog
	for _, e := range f.items {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExerciseLogs) Delete(ctx context.Context, userID, id string) error {
	for i, e := range f.items {
		if e.ID == id && e.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeExerciseLogs) DeleteByDate(ctx context.Context, userID, date string) (int64, error) {
	kept := f.items[:0]
	var n int64
	for _, e := range f.items {
		if e.UserID == userID && e.Date == date {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.items = kept
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	return n, nil
}
