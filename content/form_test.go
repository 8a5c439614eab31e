package content

import (
	"testing"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostFormDefaults(t *testing.T) {
	f := NewPostForm()
	assert.True(t, f.Published)
	assert.Equal(t, models.PostTypeBlog, f.Type)
	assert.Equal(t, models.SchemaBlogPosting, f.SchemaType)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	original := ReduceAll(NewPostForm(), SetTitle{Title: "Original"}, AddRelated{ID: a}, SetTags{Tags: []string{"fé"}})

	next := ReduceAll(original,
		SetTitle{Title: "Novo"},
		AddRelated{ID: b},
		RemoveRelated{ID: a},
		SetTags{Tags: []string{"esperança"}},
	)

	assert.Equal(t, "Original", original.Title)
	assert.Equal(t, []uuid.UUID{a}, original.Related)
	assert.Equal(t, []string{"fé"}, original.Tags)

	assert.Equal(t, "Novo", next.Title)
	assert.Equal(t, []uuid.UUID{b}, next.Related)
	assert.Equal(t, []string{"esperança"}, next.Tags)
}

func TestAddRelatedRejectsSelfAndDuplicates(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	f := NewPostForm()
	f.ID = self

	f = ReduceAll(f, AddRelated{ID: self}, AddRelated{ID: other}, AddRelated{ID: other}, AddRelated{ID: uuid.Nil})

	assert.Equal(t, []uuid.UUID{other}, f.Related)
}

func TestRegenerateSlug(t *testing.T) {
	f := ReduceAll(NewPostForm(), SetTitle{Title: "Culto de Ação de Graças"}, RegenerateSlug{})
	assert.Equal(t, "culto-de-acao-de-gracas", f.Slug)

	f = Reduce(f, SetSlug{Slug: "  slug-manual "})
	assert.Equal(t, "slug-manual", f.Slug)
}

func TestSetTagsCleansInput(t *testing.T) {
	f := Reduce(NewPostForm(), SetTags{Tags: []string{" fé ", "", "oração", "fé"}})
	assert.Equal(t, []string{"fé", "oração"}, f.Tags)
}

func TestTypeAndSchemaTypeAreIndependent(t *testing.T) {
	f := ReduceAll(NewPostForm(), SetType{Type: models.PostTypeBlog}, SetSchemaType{SchemaType: models.SchemaStudy})
	p := f.ToPost()
	assert.Equal(t, models.PostTypeBlog, p.Type)
	assert.Equal(t, models.SchemaStudy, p.SchemaType)
}

func TestResetKeepsID(t *testing.T) {
	id := uuid.New()
	f := NewPostForm()
	f.ID = id
	f = ReduceAll(f, SetTitle{Title: "x"}, SetPublished{Published: false}, Reset{})

	assert.Equal(t, id, f.ID)
	assert.Empty(t, f.Title)
	assert.True(t, f.Published)
}

func TestToPostAndBack(t *testing.T) {
	id := uuid.New()
	related := uuid.New()
	f := NewPostForm()
	f.ID = id
	f = ReduceAll(f,
		SetTitle{Title: "  Estudo em Romanos  "},
		RegenerateSlug{},
		SetType{Type: models.PostTypeStudy},
		SetBody{Body: "<p>texto</p>"},
		SetSeo{Seo: SeoFields{MetaTitle: "Romanos", Keywords: []string{"romanos"}, NoIndex: true}},
		AddRelated{ID: related},
	)

	p := f.ToPost()
	assert.Equal(t, id, p.ID)
	require.NotNil(t, p.Slug)
	assert.Equal(t, "estudo-em-romanos", *p.Slug)
	assert.Equal(t, "Estudo em Romanos", p.Content.Title)
	assert.Nil(t, p.Content.Excerpt, "empty strings are stored as NULL")
	assert.Nil(t, p.Content.CoverImage)
	assert.NotNil(t, p.Content.Tags)
	require.NotNil(t, p.Seo.MetaTitle)
	assert.Equal(t, "Romanos", *p.Seo.MetaTitle)
	assert.True(t, p.Seo.NoIndex)
	assert.Nil(t, p.Seo.OGImage)

	back := FormFromPost(p, []uuid.UUID{related, id})
	assert.Equal(t, "estudo-em-romanos", back.Slug)
	assert.Equal(t, []uuid.UUID{related}, back.Related, "self edge is dropped on load")
	assert.Equal(t, f.Seo.Keywords, back.Seo.Keywords)
}

func TestSanitizeRelated(t *testing.T) {
	self := uuid.New()
	a, b := uuid.New(), uuid.New()

	got := SanitizeRelated(self, []uuid.UUID{a, self, b, a, uuid.Nil})
	assert.Equal(t, []uuid.UUID{a, b}, got)

	assert.Empty(t, SanitizeRelated(self, nil))
	assert.Empty(t, SanitizeRelated(self, []uuid.UUID{self}))
}
