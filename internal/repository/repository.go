package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the generic data-access layer shared by all entities.
// Every call commits independently; there is no cross-call transaction.
type Repository[T any] struct {
	db *gorm.DB
}

func NewRepository[T any](db *gorm.DB) Repository[T] {
	return Repository[T]{db: db}
}

func (r *Repository[T]) DB() *gorm.DB {
	return r.db
}

func (r *Repository[T]) Create(ctx context.Context, model *T) error {
	return r.db.WithContext(ctx).Create(model).Error
}

// GetBy returns the first record matching a single equality predicate,
// or nil when there is no match.
func (r *Repository[T]) GetBy(ctx context.Context, field string, value any) (*T, error) {
	var model T
	err := r.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", field), value).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// ListBy returns every record matching a single equality predicate.
func (r *Repository[T]) ListBy(ctx context.Context, field string, value any) ([]T, error) {
	var results []T
	err := r.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", field), value).Find(&results).Error
	return results, err
}

func (r *Repository[T]) GetAll(ctx context.Context, skip, limit int) ([]T, error) {
	var results []T
	err := r.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&results).Error
	return results, err
}

func (r *Repository[T]) Update(ctx context.Context, model *T) error {
	return r.db.WithContext(ctx).Save(model).Error
}

// Updates applies a partial attribute patch to the model.
func (r *Repository[T]) Updates(ctx context.Context, model *T, attributes map[string]any) error {
	return r.db.WithContext(ctx).Model(model).Updates(attributes).Error
}

func (r *Repository[T]) Delete(ctx context.Context, model *T) error {
	return r.db.WithContext(ctx).Delete(model).Error
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var model T
	var count int64
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}
