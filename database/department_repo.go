package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/models"
	"gorm.io/gorm"
)

type DepartmentRepo struct {
	*TableRepo[models.Department]
	db *gorm.DB
}

func NewDepartmentRepo(db *gorm.DB) *DepartmentRepo {
	return &DepartmentRepo{
		TableRepo: NewTableRepo[models.Department](db, "position asc, name asc"),
		db:        db,
	}
}

func preloadMembers(db *gorm.DB) *gorm.DB {
	return db.Order("is_leader desc, position asc, name asc")
}

// FindAllWithMembers returns the departments with their members, leaders first.
func (r *DepartmentRepo) FindAllWithMembers(ctx context.Context) ([]models.Department, error) {
	departments := []models.Department{}
	err := r.db.WithContext(ctx).
		Preload("Members", preloadMembers).
		Order("position asc, name asc").
		Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepo) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).
		Preload("Members", preloadMembers).
		Where("id = ?", id).
		First(&department).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// Delete removes the department and its members.
func (r *DepartmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ?", id).Delete(&models.DepartmentMember{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Department{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
