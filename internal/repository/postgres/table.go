package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alcyxob/fitness-center/internal/repository"
)

// table maps one domain entity T onto one gorm row type R. Entity repos
// embed it and add their own queries.
type table[T any, R any] struct {
	db       *gorm.DB
	order    string
	preloads []string
	key      func(*R) *string
	toDomain func(*R) T
	toRow    func(*T) (R, error)
}

func (t *table[T, R]) Source() string { return SourceName }

func (t *table[T, R]) query(ctx context.Context) *gorm.DB {
	q := t.db.WithContext(ctx)
	for _, p := range t.preloads {
		q = q.Preload(p)
	}
	return q
}

func (t *table[T, R]) rows(rows []R) []T {
	out := make([]T, len(rows))
	for i := range rows {
		out[i] = t.toDomain(&rows[i])
	}
	return out
}

// List returns all records in the table's fixed order.
func (t *table[T, R]) List(ctx context.Context) ([]T, error) {
	var rows []R
	if err := t.query(ctx).Order(t.order).Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	return t.rows(rows), nil
}

// GetByID returns one record or repository.ErrNotFound.
func (t *table[T, R]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, repository.ErrInvalidID
	}
	var row R
	if err := t.query(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	rec := t.toDomain(&row)
	return &rec, nil
}

// Create inserts rec, assigning a UUID when it has no id, and refreshes it.
func (t *table[T, R]) Create(ctx context.Context, rec *T) error {
	row, err := t.toRow(rec)
	if err != nil {
		return err
	}
	id := t.key(&row)
	if *id == "" {
		*id = uuid.NewString()
	}
	if err := t.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return mapError(err)
	}
	return t.refresh(ctx, *id, rec)
}

// Update overwrites every column but the id and creation time.
func (t *table[T, R]) Update(ctx context.Context, rec *T) error {
	row, err := t.toRow(rec)
	if err != nil {
		return err
	}
	id := *t.key(&row)
	if id == "" {
		return repository.ErrInvalidID
	}
	res := t.db.WithContext(ctx).Model(&row).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&row)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return t.refresh(ctx, id, rec)
}

// Delete removes one record.
func (t *table[T, R]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return repository.ErrInvalidID
	}
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(R))
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (t *table[T, R]) refresh(ctx context.Context, id string, rec *T) error {
	stored, err := t.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*rec = *stored
	return nil
}
