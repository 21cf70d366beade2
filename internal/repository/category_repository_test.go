package repository

import (
	"context"
	"testing"
	"time"

	"stitchfront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedCategories(t *testing.T, repo CategoryRepository, names ...string) []domain.Category {
	t.Helper()
	ctx := context.Background()

	categories := make([]domain.Category, len(names))
	for i, name := range names {
		categories[i] = domain.Category{Name: name, CreatedAt: time.Now().UTC()}
		require.NoError(t, repo.Create(ctx, &categories[i]))
	}
	t.Cleanup(func() {
		for i := range categories {
			repo.Delete(ctx, categories[i].ID)
		}
	})

	return categories
}

func TestCategoryRepository_DuplicateNameRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	seedCategories(t, repo, "Outerwear")

	dup := domain.Category{Name: "Outerwear", CreatedAt: time.Now().UTC()}
	err := repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, ErrCategoryAlreadyExists)
}

func TestCategoryRepository_FindByNameIsCaseInsensitiveExact(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	seeded := seedCategories(t, repo, "T-Shirts (Men)", "T-Shirts (Women)")

	found, err := repo.FindByName(ctx, "t-shirts (men)")
	require.NoError(t, err)
	assert.Equal(t, seeded[0].ID, found.ID)

	// Substring alone is not an exact match
	_, err = repo.FindByName(ctx, "T-Shirts")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryRepository_FindIDsByNameContains(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	seeded := seedCategories(t, repo, "Wool Sweaters", "Cotton Sweaters", "Raincoats")

	ids, err := repo.FindIDsByNameContains(ctx, "sweater")
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{seeded[0].ID, seeded[1].ID}, ids)

	ids, err = repo.FindIDsByNameContains(ctx, "tuxedo")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCategoryRepository_ListSortedByName(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	seedCategories(t, repo, "Zip Hoodies", "Aprons")

	categories, err := repo.List(ctx)
	require.NoError(t, err)

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "Aprons")
	assert.Contains(t, names, "Zip Hoodies")
}

func TestCategoryRepository_ListByIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	seeded := seedCategories(t, repo, "Belts", "Gloves")

	subset, err := repo.ListByIDs(ctx, []primitive.ObjectID{seeded[1].ID})
	require.NoError(t, err)
	require.Len(t, subset, 1)
	assert.Equal(t, "Gloves", subset[0].Name)

	empty, err := repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCategoryRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(testDB)

	seeded := seedCategories(t, repo, "Sandals")

	seeded[0].Name = "Slides"
	require.NoError(t, repo.Update(ctx, &seeded[0]))

	found, err := repo.FindByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Slides", found.Name)

	missing := domain.Category{ID: primitive.NewObjectID(), Name: "Ghost"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, missing.ID), ErrCategoryNotFound)
}
