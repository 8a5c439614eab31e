package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/igreja-site/cms-backend/content"
	"github.com/igreja-site/cms-backend/errs"
	"github.com/igreja-site/cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, uuid.UUID) *models.Post); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostStore) SlugTaken(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	args := m.Called(ctx, slug, exclude)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostStore) Search(ctx context.Context, query string, exclude uuid.UUID, limit int) ([]models.Post, error) {
	args := m.Called(ctx, query, exclude, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostStore) Add(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostStore) Update(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// fakeRelations keeps edges in memory with the same delete-then-insert
// contract as the database repository.
type fakeRelations struct {
	edges   map[uuid.UUID][]uuid.UUID
	calls   int
	failErr error
}

func newFakeRelations() *fakeRelations {
	return &fakeRelations{edges: map[uuid.UUID][]uuid.UUID{}}
}

func (f *fakeRelations) FindByPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	return slices.Clone(f.edges[postID]), nil
}

func (f *fakeRelations) ReplaceForPost(ctx context.Context, postID uuid.UUID, related []uuid.UUID) error {
	f.calls++
	if f.failErr != nil {
		return f.failErr
	}
	delete(f.edges, postID)
	for _, id := range related {
		f.edges[postID] = append(f.edges[postID], id)
	}
	return nil
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PostPublished(ctx context.Context, post models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func validForm() content.PostForm {
	return content.ReduceAll(content.NewPostForm(),
		content.SetTitle{Title: "Como cultivar uma vida de oração constante"},
		content.SetDescription{Description: strings.Repeat("Uma reflexão sobre oração. ", 5)},
		content.SetBody{Body: "<h2>Introdução</h2>" + strings.Repeat("<p>"+strings.Repeat("palavra ", 100)+"</p>", 4)},
	)
}

// expectCreate makes Add assign id and FindByID return what was added.
func expectCreate(store *MockPostStore, id uuid.UUID) {
	var added models.Post
	store.On("Add", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*models.Post)
			p.ID = id
			added = *p
		}).
		Return(nil).Once()
	store.On("FindByID", mock.Anything, id).
		Return(func(context.Context, uuid.UUID) *models.Post { p := added; return &p }, nil)
}

func TestSaveNewPostDerivesSlugAndExcerpt(t *testing.T) {
	store := new(MockPostStore)
	relations := newFakeRelations()
	svc := NewPostAuthoring(store, relations, content.DefaultThresholds())

	id := uuid.New()
	other := uuid.New()
	expectCreate(store, id)

	form := content.Reduce(validForm(), content.AddRelated{ID: other})
	result, err := svc.Save(context.Background(), form)
	require.NoError(t, err)

	require.NotNil(t, result.Post.Slug)
	assert.Equal(t, "como-cultivar-uma-vida-de-oracao-constante", *result.Post.Slug)
	require.NotNil(t, result.Post.Content.Excerpt)
	assert.True(t, strings.HasPrefix(*result.Post.Content.Excerpt, "Introdução palavra"))
	assert.Equal(t, []uuid.UUID{other}, relations.edges[id])
	assert.Equal(t, []uuid.UUID{other}, result.Related)
	assert.True(t, result.Report.CanSave())
	store.AssertExpectations(t)
}

func TestSaveBlockedByInvalidSlug(t *testing.T) {
	store := new(MockPostStore)
	relations := newFakeRelations()
	svc := NewPostAuthoring(store, relations, content.DefaultThresholds())

	form := content.Reduce(validForm(), content.SetSlug{Slug: "Meu Post"})
	result, err := svc.Save(context.Background(), form)

	require.Error(t, err)
	assert.True(t, errs.IsInvalidSlugError(err))
	assert.True(t, IsBlocked(err))
	assert.Equal(t, 400, errs.StatusCode(err))
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Report.Blocking)
	assert.Zero(t, relations.calls)
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSaveProceedsDespiteAdvisoryErrors(t *testing.T) {
	store := new(MockPostStore)
	svc := NewPostAuthoring(store, newFakeRelations(), content.DefaultThresholds())
	id := uuid.New()
	expectCreate(store, id)

	form := content.ReduceAll(validForm(),
		content.SetTitle{Title: "Curto"},
		content.SetBody{Body: "<h1>A</h1><h1>B</h1>"},
	)
	result, err := svc.Save(context.Background(), form)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Report.Errors)
	assert.NotEmpty(t, result.Report.Warnings)
	assert.Equal(t, id, result.Post.ID)
}

func TestSaveRequiresTitle(t *testing.T) {
	store := new(MockPostStore)
	svc := NewPostAuthoring(store, newFakeRelations(), content.DefaultThresholds())

	_, err := svc.Save(context.Background(), content.Reduce(validForm(), content.SetTitle{Title: ""}))
	require.Error(t, err)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSaveTwiceWithSameRelatedSetIsIdempotent(t *testing.T) {
	store := new(MockPostStore)
	relations := newFakeRelations()
	svc := NewPostAuthoring(store, relations, content.DefaultThresholds())

	id := uuid.New()
	b, c := uuid.New(), uuid.New()
	relations.edges[id] = []uuid.UUID{uuid.New()}

	existing := &models.Post{Published: true}
	existing.ID = id
	store.On("FindByID", mock.Anything, id).Return(existing, nil)
	store.On("Update", mock.Anything, mock.AnythingOfType("*models.Post")).Return(nil)

	form := validForm()
	form.ID = id
	form = content.ReduceAll(form, content.AddRelated{ID: b}, content.AddRelated{ID: c})

	for i := 0; i < 2; i++ {
		_, err := svc.Save(context.Background(), form)
		require.NoError(t, err)
	}

	assert.Equal(t, []uuid.UUID{b, c}, relations.edges[id])
	assert.Equal(t, 2, relations.calls)
}

func TestSaveFiltersSelfRelation(t *testing.T) {
	store := new(MockPostStore)
	relations := newFakeRelations()
	svc := NewPostAuthoring(store, relations, content.DefaultThresholds())

	id := uuid.New()
	other := uuid.New()
	existing := &models.Post{Published: true}
	existing.ID = id
	store.On("FindByID", mock.Anything, id).Return(existing, nil)
	store.On("Update", mock.Anything, mock.Anything).Return(nil)

	form := validForm()
	form.ID = id
	form.Related = []uuid.UUID{id, other}

	result, err := svc.Save(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other}, relations.edges[id])

	codes := []string{}
	for _, w := range result.Report.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, content.CodeSelfRelation)
}

func TestSaveUniqueSlugConflict(t *testing.T) {
	store := new(MockPostStore)
	svc := NewPostAuthoring(store, newFakeRelations(), content.DefaultThresholds(), WithUniqueSlugs(true))

	store.On("SlugTaken", mock.Anything, "como-cultivar-uma-vida-de-oracao-constante", uuid.Nil).Return(true, nil)

	_, err := svc.Save(context.Background(), validForm())
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
	store.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSaveNotifiesOnFirstPublication(t *testing.T) {
	store := new(MockPostStore)
	notifier := new(MockNotifier)
	svc := NewPostAuthoring(store, newFakeRelations(), content.DefaultThresholds(), WithNotifier(notifier))

	id := uuid.New()
	draft := &models.Post{Published: false}
	draft.ID = id
	published := &models.Post{Published: true}
	published.ID = id

	store.On("FindByID", mock.Anything, id).Return(draft, nil).Once()
	store.On("Update", mock.Anything, mock.Anything).Return(nil)
	store.On("FindByID", mock.Anything, id).Return(published, nil).Once()
	notifier.On("PostPublished", mock.Anything, *published).Return(errors.New("smtp down"))

	form := validForm()
	form.ID = id
	_, err := svc.Save(context.Background(), form)
	require.NoError(t, err, "a failed notice does not fail the save")
	notifier.AssertExpectations(t)
}

func TestSaveReportsRelationFailure(t *testing.T) {
	store := new(MockPostStore)
	relations := newFakeRelations()
	relations.failErr = errors.New("connection reset")
	svc := NewPostAuthoring(store, relations, content.DefaultThresholds())

	store.On("Add", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Save(context.Background(), validForm())
	require.Error(t, err)
	assert.Equal(t, 503, errs.StatusCode(err))
}

func TestLoadBuildsForm(t *testing.T) {
	store := new(MockPostStore)
	relations := newFakeRelations()
	svc := NewPostAuthoring(store, relations, content.DefaultThresholds())

	id, other := uuid.New(), uuid.New()
	slug := "estudo"
	post := &models.Post{Slug: &slug, Type: models.PostTypeStudy, Content: models.Content{Title: "Estudo"}}
	post.ID = id
	relations.edges[id] = []uuid.UUID{other}
	store.On("FindByID", mock.Anything, id).Return(post, nil)

	form, err := svc.Load(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "estudo", form.Slug)
	assert.Equal(t, []uuid.UUID{other}, form.Related)
}

func TestSearchCandidatesClampsLimit(t *testing.T) {
	store := new(MockPostStore)
	svc := NewPostAuthoring(store, newFakeRelations(), content.DefaultThresholds())

	id := uuid.New()
	hit := models.Post{Content: models.Content{Title: "Oração"}, Type: models.PostTypeBlog}
	hit.ID = uuid.New()
	store.On("Search", mock.Anything, "ora", id, maxCandidateLimit).Return([]models.Post{hit}, nil)
	store.On("Search", mock.Anything, "", id, defaultCandidateLimit).Return([]models.Post{}, nil)

	got, err := svc.SearchCandidates(context.Background(), id, "ora", 500)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Oração", got[0].Title)

	got, err = svc.SearchCandidates(context.Background(), id, "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestValidateUsesPreparedForm(t *testing.T) {
	svc := NewPostAuthoring(new(MockPostStore), newFakeRelations(), content.DefaultThresholds())

	report := svc.Validate(content.ReduceAll(validForm(), content.SetTitle{Title: "!!!"}))
	codes := []string{}
	for _, w := range report.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, content.CodeMissingSlug)
}
