package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baokaotong/baokao-backend/internal/model"
)

type fakeCatalogRepo struct {
	tree     []*model.CategoryTree
	results  []model.SearchResult
	searches int
}

func (r *fakeCatalogRepo) Hierarchy(ctx context.Context) ([]*model.CategoryTree, error) {
	return r.tree, nil
}

func (r *fakeCatalogRepo) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	r.searches++
	return r.results, nil
}

func (r *fakeCatalogRepo) Import(ctx context.Context, categories []model.Category, subjects []model.Subject, majors []model.Major) error {
	return nil
}

func TestHierarchyWithoutCache(t *testing.T) {
	repo := &fakeCatalogRepo{tree: []*model.CategoryTree{
		{Code: "01", Name: "哲学", Subjects: []*model.SubjectTree{
			{Code: "0101", Name: "哲学", Majors: []model.Major{{Code: "010101", Name: "哲学"}}},
		}},
	}}
	svc := NewCatalogService(repo, nil, zerolog.Nop())

	tree, err := svc.Hierarchy(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "01", tree[0].Code)
	require.Len(t, tree[0].Subjects, 1)
	assert.Len(t, tree[0].Subjects[0].Majors, 1)
}

func TestSearchEmptyQuerySkipsDatabase(t *testing.T) {
	repo := &fakeCatalogRepo{results: []model.SearchResult{{Code: "010101"}}}
	svc := NewCatalogService(repo, nil, zerolog.Nop())

	results, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, repo.searches)
}

func TestSearchDelegates(t *testing.T) {
	repo := &fakeCatalogRepo{results: []model.SearchResult{{Code: "010101", Name: "哲学"}}}
	svc := NewCatalogService(repo, nil, zerolog.Nop())

	results, err := svc.Search(context.Background(), "哲")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "010101", results[0].Code)
	assert.Equal(t, 1, repo.searches)
}
