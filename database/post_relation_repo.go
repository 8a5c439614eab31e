package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/models"
	"gorm.io/gorm"
)

type PostRelationRepo struct {
	db *gorm.DB
}

func NewPostRelationRepo(db *gorm.DB) *PostRelationRepo {
	return &PostRelationRepo{db}
}

// FindByPost returns the ids the post links to, in display order.
func (r *PostRelationRepo) FindByPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.WithContext(ctx).Model(&models.PostRelation{}).
		Where("post_id = ?", postID).
		Order("position asc").
		Pluck("related_post_id", &ids).Error
	return ids, err
}

// ReplaceForPost deletes every outbound edge of the post and inserts one edge
// per related id. Self edges, nil ids and repeats are dropped first, so saving
// the same selection twice leaves exactly that selection stored.
func (r *PostRelationRepo) ReplaceForPost(ctx context.Context, postID uuid.UUID, related []uuid.UUID) error {
	related = content.SanitizeRelated(postID, related)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostRelation{}).Error; err != nil {
			return err
		}
		if len(related) == 0 {
			return nil
		}
		edges := make([]models.PostRelation, 0, len(related))
		for i, id := range related {
			edges = append(edges, models.PostRelation{PostID: postID, RelatedPostID: id, Position: i})
		}
		return tx.Create(&edges).Error
	})
}

func (r *PostRelationRepo) DeleteForPost(ctx context.Context, postID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostRelation{}).Error
}
