package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableRepo is the select/insert/update/delete surface shared by the site
// tables that carry no rules of their own.
type TableRepo[T any] struct {
	db    *gorm.DB
	order string
}

func NewTableRepo[T any](db *gorm.DB, order string) *TableRepo[T] {
	return &TableRepo[T]{db: db, order: order}
}

// FindAll returns every row in the repository's display order.
func (r *TableRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	return r.FindWhere(ctx, nil)
}

// FindWhere returns the rows matching conds, a map of column to value.
func (r *TableRepo[T]) FindWhere(ctx context.Context, conds map[string]any) ([]T, error) {
	rows := []T{}
	q := r.db.WithContext(ctx)
	if len(conds) > 0 {
		q = q.Where(conds)
	}
	if r.order != "" {
		q = q.Order(r.order)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// Query returns the rows matching a raw where clause, in display order.
func (r *TableRepo[T]) Query(ctx context.Context, where string, args ...any) ([]T, error) {
	rows := []T{}
	q := r.db.WithContext(ctx).Where(where, args...)
	if r.order != "" {
		q = q.Order(r.order)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// FindByID returns gorm.ErrRecordNotFound when no row has the id.
func (r *TableRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *TableRepo[T]) Add(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
}

// Update overwrites every column of the row with the given id, zero values
// included. id and created_at are kept.
func (r *TableRepo[T]) Update(ctx context.Context, id uuid.UUID, row *T) error {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TableRepo[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SingletonRepo stores tables that hold a single row, such as the site
// settings. The oldest row is the current one.
type SingletonRepo[T any] struct {
	db *gorm.DB
}

func NewSingletonRepo[T any](db *gorm.DB) *SingletonRepo[T] {
	return &SingletonRepo[T]{db: db}
}

// Get returns gorm.ErrRecordNotFound until the row is first saved.
func (r *SingletonRepo[T]) Get(ctx context.Context) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).Order("created_at asc").First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert inserts the row or overwrites the existing one, then returns the
// stored version.
func (r *SingletonRepo[T]) Upsert(ctx context.Context, row *T) (*T, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(new(T)).Order("created_at asc").Limit(1).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return tx.Create(row).Error
		}
		return tx.Model(new(T)).
			Where("id = ?", ids[0]).
			Select("*").
			Omit("id", "created_at").
			Updates(row).Error
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
