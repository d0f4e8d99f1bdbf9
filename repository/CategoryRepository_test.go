package repository

import (
	"testing"

	"techStore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo, err := NewCategoryRepository(db)
	require.NoError(t, err)

	catId, err := repo.CreateCategory(models.Category_db{Name: "Phones", Slug: "phones", Description: "handsets"})
	require.NoError(t, err)

	_, err = repo.CreateCategory(models.Category_db{Name: "Laptops"})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	cat, exists, err := repo.GetCategoryBySlug("phones")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, catId, cat.Id)
	assert.Equal(t, "Phones", cat.Name)

	_, exists, err = repo.GetCategoryBySlug("missing")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.UpdateCategory(models.Category_db{Id: catId, Name: "Smartphones", Description: "handsets"}))
	cat, _, err = repo.GetCategoryById(catId)
	require.NoError(t, err)
	assert.Equal(t, "Smartphones", cat.Name)

	err = repo.UpdateCategory(models.Category_db{Id: catId + 100, Name: "Nope"})
	assert.ErrorIs(t, err, models.ErrNotFoundError)

	cats, err := repo.GetAllCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestBrandLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo, err := NewCategoryRepository(db)
	require.NoError(t, err)

	brandId, err := repo.CreateBrand(models.Brand_db{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)

	_, err = repo.CreateBrand(models.Brand_db{Slug: "no-name"})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	brand, exists, err := repo.GetBrandBySlug("acme")
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, brandId, brand.Id)

	brand, exists, err = repo.GetBrandById(brandId)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "Acme", brand.Name)

	brands, err := repo.GetAllBrands()
	require.NoError(t, err)
	assert.Len(t, brands, 1)
}
