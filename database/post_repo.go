package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// PostFilter narrows a post listing. Zero values mean "no filter".
type PostFilter struct {
	Type          models.PostType
	Tag           string
	PublishedOnly bool
	Limit         int
	Offset        int
}

func (f PostFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("tags").Contains(f.Tag))
	}
	if f.PublishedOnly {
		q = q.Where("published = ?", true)
	}
	return q
}

// FindAll returns posts newest first.
func (r *PostRepo) FindAll(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	posts := []models.Post{}
	q := filter.apply(r.db.WithContext(ctx)).Order("created_at desc, id asc")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	err := q.Find(&posts).Error
	return posts, err
}

// Count ignores the filter's Limit and Offset.
func (r *PostRepo) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var n int64
	err := filter.apply(r.db.WithContext(ctx).Model(&models.Post{})).Count(&n).Error
	return n, err
}

func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns the oldest post carrying the slug. Slugs are not unique
// in storage, so the earliest post wins a collision.
func (r *PostRepo) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error) {
	var post models.Post
	q := r.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		q = q.Where("published = ?", true)
	}
	if err := q.Order("created_at asc, id asc").First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugTaken reports whether another post than exclude already uses slug.
func (r *PostRepo) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

// Search matches query against titles, case-insensitively. It backs the
// related post picker, so exclude is left out of the results.
func (r *PostRepo) Search(ctx context.Context, query string, exclude uuid.UUID, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if query = strings.TrimSpace(query); query != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Order("created_at desc").Find(&posts).Error
	return posts, err
}

func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update overwrites every editable column of the post with post.ID.
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(post).Select(models.EditableColumns).Updates(post)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the post and every relation edge that points to or from it.
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("post_id = ? OR related_post_id = ?", id, id).Delete(&models.PostRelation{}).Error
		if err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementViews bumps the view counter without touching updated_at.
func (r *PostRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// FindRelated returns the targets of the post's outbound edges in the order
// the editor picked them.
func (r *PostRepo) FindRelated(ctx context.Context, id uuid.UUID, publishedOnly bool) ([]models.Post, error) {
	posts := []models.Post{}
	q := r.db.WithContext(ctx).
		Select("posts.*").
		Joins("JOIN post_relations ON post_relations.related_post_id = posts.id").
		Where("post_relations.post_id = ?", id)
	if publishedOnly {
		q = q.Where("posts.published = ?", true)
	}
	err := q.Order("post_relations.position asc").Find(&posts).Error
	return posts, err
}
