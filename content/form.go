package content

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/models"
)

// PostForm is the state of the authoring form. It is a value: Reduce never
// mutates the form it receives, and slices are copied before they change.
type PostForm struct {
	ID         uuid.UUID         `json:"id"`
	Title      string            `json:"title"`
	Slug       string            `json:"slug"`
	Type       models.PostType   `json:"type"`
	SchemaType models.SchemaType `json:"schema_type"`

	Description string   `json:"description"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"cover_image"`

	Seo SeoFields `json:"seo"`

	Published bool        `json:"published"`
	Related   []uuid.UUID `json:"related"`
}

// SeoFields mirrors models.SeoOverlay with plain values; empty means unset.
type SeoFields struct {
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
	CanonicalURL    string   `json:"canonical_url"`
	NoIndex         bool     `json:"noindex"`
	NoFollow        bool     `json:"nofollow"`
	OGTitle         string   `json:"og_title"`
	OGDescription   string   `json:"og_description"`
	OGImage         string   `json:"og_image"`
}

// NewPostForm is the empty form of a new post: published blog post.
func NewPostForm() PostForm {
	return PostForm{
		Type:       models.PostTypeBlog,
		SchemaType: models.SchemaBlogPosting,
		Published:  true,
	}
}

// FormFromPost loads an existing post and its related ids into a form.
func FormFromPost(p models.Post, related []uuid.UUID) PostForm {
	return PostForm{
		ID:          p.ID,
		Title:       p.Content.Title,
		Slug:        deref(p.Slug),
		Type:        p.Type,
		SchemaType:  p.SchemaType,
		Description: p.Content.Description,
		Excerpt:     deref(p.Content.Excerpt),
		Body:        p.Content.Body,
		Tags:        slices.Clone([]string(p.Content.Tags)),
		CoverImage:  deref(p.Content.CoverImage),
		Seo: SeoFields{
			MetaTitle:       deref(p.Seo.MetaTitle),
			MetaDescription: deref(p.Seo.MetaDescription),
			Keywords:        slices.Clone([]string(p.Seo.Keywords)),
			CanonicalURL:    deref(p.Seo.CanonicalURL),
			NoIndex:         p.Seo.NoIndex,
			NoFollow:        p.Seo.NoFollow,
			OGTitle:         deref(p.Seo.OGTitle),
			OGDescription:   deref(p.Seo.OGDescription),
			OGImage:         deref(p.Seo.OGImage),
		},
		Published: p.Published,
		Related:   SanitizeRelated(p.ID, related),
	}
}

// ToPost builds the record persisted for this form. Views and timestamps are
// left to the store.
func (f PostForm) ToPost() models.Post {
	p := models.Post{
		Slug:       ptr(f.Slug),
		Type:       f.Type,
		SchemaType: f.SchemaType,
		Content: models.Content{
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
			Excerpt:     ptr(f.Excerpt),
			Body:        f.Body,
			Tags:        nonNil(f.Tags),
			CoverImage:  ptr(f.CoverImage),
		},
		Seo: models.SeoOverlay{
			MetaTitle:       ptr(f.Seo.MetaTitle),
			MetaDescription: ptr(f.Seo.MetaDescription),
			Keywords:        nonNil(f.Seo.Keywords),
			CanonicalURL:    ptr(f.Seo.CanonicalURL),
			NoIndex:         f.Seo.NoIndex,
			NoFollow:        f.Seo.NoFollow,
			OGTitle:         ptr(f.Seo.OGTitle),
			OGDescription:   ptr(f.Seo.OGDescription),
			OGImage:         ptr(f.Seo.OGImage),
		},
		Published: f.Published,
	}
	p.ID = f.ID
	return p
}

// Action is a change applied to a PostForm by Reduce.
type Action interface {
	apply(f PostForm) PostForm
}

type (
	SetTitle       struct{ Title string }
	SetSlug        struct{ Slug string }
	RegenerateSlug struct{}
	SetDescription struct{ Description string }
	SetExcerpt     struct{ Excerpt string }
	SetBody        struct{ Body string }
	SetTags        struct{ Tags []string }
	SetType        struct{ Type models.PostType }
	SetSchemaType  struct{ SchemaType models.SchemaType }
	SetCoverImage  struct{ URL string }
	SetPublished   struct{ Published bool }
	SetSeo         struct{ Seo SeoFields }
	AddRelated     struct{ ID uuid.UUID }
	RemoveRelated  struct{ ID uuid.UUID }
	Reset          struct{}
)

// Reduce returns the form that results from applying a to f.
func Reduce(f PostForm, a Action) PostForm {
	return a.apply(f)
}

// ReduceAll applies actions in order.
func ReduceAll(f PostForm, actions ...Action) PostForm {
	for _, a := range actions {
		f = a.apply(f)
	}
	return f
}

func (a SetTitle) apply(f PostForm) PostForm {
	f.Title = a.Title
	return f
}

// SetSlug keeps the slug as typed; ValidateSlug decides if it can be saved.
func (a SetSlug) apply(f PostForm) PostForm {
	f.Slug = strings.TrimSpace(a.Slug)
	return f
}

func (RegenerateSlug) apply(f PostForm) PostForm {
	f.Slug = GenerateSlug(f.Title)
	return f
}

func (a SetDescription) apply(f PostForm) PostForm {
	f.Description = a.Description
	return f
}

func (a SetExcerpt) apply(f PostForm) PostForm {
	f.Excerpt = a.Excerpt
	return f
}

func (a SetBody) apply(f PostForm) PostForm {
	f.Body = a.Body
	return f
}

// SetTags trims tags and drops blanks and exact repeats, keeping display order.
func (a SetTags) apply(f PostForm) PostForm {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(tags, t) {
			continue
		}
		tags = append(tags, t)
	}
	f.Tags = tags
	return f
}

func (a SetType) apply(f PostForm) PostForm {
	f.Type = a.Type
	return f
}

func (a SetSchemaType) apply(f PostForm) PostForm {
	f.SchemaType = a.SchemaType
	return f
}

func (a SetCoverImage) apply(f PostForm) PostForm {
	f.CoverImage = strings.TrimSpace(a.URL)
	return f
}

func (a SetPublished) apply(f PostForm) PostForm {
	f.Published = a.Published
	return f
}

func (a SetSeo) apply(f PostForm) PostForm {
	seo := a.Seo
	seo.Keywords = slices.Clone(a.Seo.Keywords)
	f.Seo = seo
	return f
}

// AddRelated ignores the post itself and ids already selected.
func (a AddRelated) apply(f PostForm) PostForm {
	if a.ID == uuid.Nil || a.ID == f.ID || slices.Contains(f.Related, a.ID) {
		return f
	}
	related := make([]uuid.UUID, len(f.Related), len(f.Related)+1)
	copy(related, f.Related)
	f.Related = append(related, a.ID)
	return f
}

func (a RemoveRelated) apply(f PostForm) PostForm {
	related := make([]uuid.UUID, 0, len(f.Related))
	for _, id := range f.Related {
		if id != a.ID {
			related = append(related, id)
		}
	}
	f.Related = related
	return f
}

// Reset clears the form, keeping the id of the post being edited.
func (Reset) apply(f PostForm) PostForm {
	fresh := NewPostForm()
	fresh.ID = f.ID
	return fresh
}

func ptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
