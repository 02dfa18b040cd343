package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore fails every operation with err
type failingStore struct {
	err error
}

func (f *failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f *failingStore) Set(context.Context, string, []byte) error         { return f.err }
func (f *failingStore) Remove(context.Context, string) error              { return f.err }

func sampleDocument() *types.ResumeDocument {
	doc := types.NewDocument()
	doc.PersonalInfo = types.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com"}
	doc.Achievements = append(doc.Achievements, types.Achievement{ID: "a1", Title: "First program"})
	doc.WorkExperience = append(doc.WorkExperience, types.WorkExperience{
		ID:               "w1",
		Title:            "Analyst",
		Company:          "Analytical Engine",
		StartDate:        "1842-01",
		EndDate:          types.PresentEndDate,
		Current:          true,
		Responsibilities: []string{"Write notes", "Compute Bernoulli numbers"},
	})
	doc.Skills = append(doc.Skills, types.Skill{ID: "s1", Name: "Mathematics", Level: types.LevelExpert})
	return doc
}

func TestAdapter_LoadAbsent(t *testing.T) {
	adapter := NewAdapter(NewMemoryStore())

	doc, err := adapter.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAdapter_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(NewMemoryStore())

	original := sampleDocument()
	require.NoError(t, adapter.Save(ctx, original))

	loaded, err := adapter.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original, loaded)
}

func TestAdapter_SaveFiresHook(t *testing.T) {
	adapter := NewAdapter(NewMemoryStore())
	calls := 0
	adapter.OnSaved(func() { calls++ })

	require.NoError(t, adapter.Save(context.Background(), types.NewDocument()))
	require.NoError(t, adapter.Save(context.Background(), types.NewDocument()))
	assert.Equal(t, 2, calls)
}

func TestAdapter_SaveFailureSkipsHook(t *testing.T) {
	adapter := NewAdapter(&failingStore{err: errors.New("quota exceeded")})
	calls := 0
	adapter.OnSaved(func() { calls++ })

	err := adapter.Save(context.Background(), types.NewDocument())
	require.Error(t, err)
	var writeErr *WriteError
	assert.ErrorAs(t, err, &writeErr)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Zero(t, calls)
}

func TestAdapter_ClearRemovesKey(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	adapter := NewAdapter(store)

	require.NoError(t, adapter.Save(ctx, sampleDocument()))
	require.NoError(t, adapter.Clear(ctx))

	_, found, err := store.Get(ctx, DocumentKey)
	require.NoError(t, err)
	assert.False(t, found)

	doc, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestAdapter_LoadNormalizesMissingCollections(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, DocumentKey, []byte(`{"personalInfo":{"name":"Ada"}}`)))

	doc, err := NewAdapter(store).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Ada", doc.PersonalInfo.Name)
	assert.NotNil(t, doc.Achievements)
	assert.NotNil(t, doc.Skills)
}

func TestAdapter_LoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{not json`},
		{name: "missing personal info", data: `{"skills":[]}`},
		{name: "wrong collection type", data: `{"personalInfo":{},"skills":"Go"}`},
		{name: "skill without id", data: `{"personalInfo":{},"skills":[{"name":"Go"}]}`},
		{name: "unknown level", data: `{"personalInfo":{},"skills":[{"id":"s1","name":"Go","level":"Guru"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewMemoryStore()
			require.NoError(t, store.Set(ctx, DocumentKey, []byte(tt.data)))

			doc, err := NewAdapter(store).Load(ctx)
			assert.Nil(t, doc)
			var readErr *ReadError
			assert.ErrorAs(t, err, &readErr)
		})
	}
}

func TestAdapter_LoadStoreFailure(t *testing.T) {
	_, err := NewAdapter(&failingStore{err: errors.New("disk gone")}).Load(context.Background())
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, err.Error(), "disk gone")
}
