package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PostType string

const (
	PostTypeBlog  PostType = "blog"
	PostTypeStudy PostType = "study"
)

func (t PostType) Valid() bool {
	return t == PostTypeBlog || t == PostTypeStudy
}

// SchemaType is the structured-data hint emitted for search engines. It is
// independent of PostType: a blog post may be marked as a Study.
type SchemaType string

const (
	SchemaArticle     SchemaType = "Article"
	SchemaBlogPosting SchemaType = "BlogPosting"
	SchemaStudy       SchemaType = "Study"
)

func (s SchemaType) Valid() bool {
	return s == SchemaArticle || s == SchemaBlogPosting || s == SchemaStudy
}

// Content holds the fields a post cannot exist without.
type Content struct {
	Title       string                      `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Description string                      `json:"description" db:"description" gorm:"column:description;type:text;not null;default:''"`
	Excerpt     *string                     `json:"excerpt,omitempty" db:"excerpt" gorm:"column:excerpt;type:text"`
	Body        string                      `json:"body" db:"content" gorm:"column:content;type:text;not null"`
	Tags        datatypes.JSONSlice[string] `json:"tags" db:"tags" gorm:"column:tags"`
	CoverImage  *string                     `json:"cover_image,omitempty" db:"cover_image" gorm:"column:cover_image;type:text"`
}

// SeoOverlay is optional search and social metadata layered on a post.
// Empty fields fall back to the matching Content field when rendered.
type SeoOverlay struct {
	MetaTitle       *string                     `json:"meta_title,omitempty" db:"meta_title" gorm:"column:meta_title;type:text"`
	MetaDescription *string                     `json:"meta_description,omitempty" db:"meta_description" gorm:"column:meta_description;type:text"`
	Keywords        datatypes.JSONSlice[string] `json:"keywords,omitempty" db:"keywords" gorm:"column:keywords"`
	CanonicalURL    *string                     `json:"canonical_url,omitempty" db:"canonical_url" gorm:"column:canonical_url;type:text"`
	NoIndex         bool                        `json:"noindex" db:"noindex" gorm:"column:noindex;not null;default:false"`
	NoFollow        bool                        `json:"nofollow" db:"nofollow" gorm:"column:nofollow;not null;default:false"`
	OGTitle         *string                     `json:"og_title,omitempty" db:"og_title" gorm:"column:og_title;type:text"`
	OGDescription   *string                     `json:"og_description,omitempty" db:"og_description" gorm:"column:og_description;type:text"`
	OGImage         *string                     `json:"og_image,omitempty" db:"og_image" gorm:"column:og_image;type:text"`
}

// IsZero reports whether no SEO field was set.
func (s SeoOverlay) IsZero() bool {
	return s.MetaTitle == nil && s.MetaDescription == nil && len(s.Keywords) == 0 &&
		s.CanonicalURL == nil && !s.NoIndex && !s.NoFollow &&
		s.OGTitle == nil && s.OGDescription == nil && s.OGImage == nil
}

// Post is a blog entry or a study ("estudo").
type Post struct {
	Base
	Slug       *string    `json:"slug,omitempty" db:"slug" gorm:"column:slug;type:text;index:idx_posts_slug"`
	Type       PostType   `json:"type" db:"type" gorm:"column:type;type:text;not null;default:'blog';index:idx_posts_type_published"`
	SchemaType SchemaType `json:"schema_type" db:"schema_type" gorm:"column:schema_type;type:text;not null;default:'BlogPosting'"`
	Content    Content    `json:"content" gorm:"embedded"`
	Seo        SeoOverlay `json:"seo" gorm:"embedded"`
	Published  bool       `json:"published" db:"published" gorm:"column:published;not null;index:idx_posts_type_published"`
	Views      int64      `json:"views" db:"views" gorm:"column:views;not null;default:0"`

	RelatedPosts []Post `json:"related_posts,omitempty" gorm:"-"`
}

// EditableColumns are overwritten wholesale on every save from the authoring form.
// views, created_at and id are never written by an update.
var EditableColumns = []string{
	"slug", "type", "schema_type",
	"title", "description", "excerpt", "content", "tags", "cover_image",
	"meta_title", "meta_description", "keywords", "canonical_url",
	"noindex", "nofollow", "og_title", "og_description", "og_image",
	"published", "updated_at",
}

// PostRelation is a directed "see also" edge. Selecting B as related to A
// stores A -> B only.
type PostRelation struct {
	PostID        uuid.UUID `json:"post_id" db:"post_id" gorm:"column:post_id;type:uuid;primaryKey;index:idx_post_relations_post_id"`
	RelatedPostID uuid.UUID `json:"related_post_id" db:"related_post_id" gorm:"column:related_post_id;type:uuid;primaryKey"`
	Position      int       `json:"position" db:"position" gorm:"column:position;not null;default:0"`

	Post        *Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	RelatedPost *Post `json:"-" gorm:"foreignKey:RelatedPostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PostRelation) TableName() string {
	return "post_relations"
}
