package services

import (
	"database/sql"
	"testing"

	"techStore/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture() (ProductService, *fakeProductRepo, *fakeCategoryRepo, *fakeReviewRepo) {
	pr := newFakeProductRepo()
	cr := newFakeCategoryRepo()
	rr := newFakeReviewRepo()
	return NewProductService(pr, cr, rr), pr, cr, rr
}

func TestGetProductDetail(t *testing.T) {
	ps, pr, cr, rr := newProductFixture()
	catId, err := cr.CreateCategory(models.Category_db{Name: "Phones", Slug: "phones"})
	require.NoError(t, err)
	brandId, err := cr.CreateBrand(models.Brand_db{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	pr.put(models.Product_db{
		Id:          1,
		Name:        "phone",
		Slug:        "phone",
		Description: sql.NullString{String: "a phone", Valid: true},
		Price:       decimal.NewFromInt(100),
		Stock:       10,
		Active:      true,
		CategoryId:  catId,
		BrandId:     sql.NullInt64{Int64: int64(brandId), Valid: true},
	})
	_, err = rr.AddReview(models.Review_db{ProductId: 1, UserId: 7, Rating: 5})
	require.NoError(t, err)
	_, err = rr.AddReview(models.Review_db{ProductId: 1, UserId: 8, Rating: 4})
	require.NoError(t, err)

	detail, err := ps.GetProductById(1)
	require.NoError(t, err)
	assert.Equal(t, "phone", detail.Name)
	assert.Equal(t, "a phone", detail.Description)
	assert.Equal(t, "Phones", detail.Category.Name)
	require.NotNil(t, detail.Brand)
	assert.Equal(t, "Acme", detail.Brand.Name)
	assert.Equal(t, 4.5, detail.Rating)
	assert.Equal(t, 2, detail.ReviewCount)
}

func TestGetProductDetailWithoutBrandOrReviews(t *testing.T) {
	ps, pr, cr, _ := newProductFixture()
	catId, err := cr.CreateCategory(models.Category_db{Name: "Phones", Slug: "phones"})
	require.NoError(t, err)
	pr.put(models.Product_db{Id: 1, Name: "phone", Price: decimal.NewFromInt(100), Active: true, CategoryId: catId})

	detail, err := ps.GetProductById(1)
	require.NoError(t, err)
	assert.Nil(t, detail.Brand)
	assert.Zero(t, detail.Rating)
	assert.Zero(t, detail.ReviewCount)

	_, err = ps.GetProductById(99)
	assert.ErrorIs(t, err, models.ErrNotFoundError)
}

func TestCreateProductRequiresCategory(t *testing.T) {
	ps, _, cr, _ := newProductFixture()
	catId, err := cr.CreateCategory(models.Category_db{Name: "Phones", Slug: "phones"})
	require.NoError(t, err)

	_, err = ps.CreateProduct(models.ProductInput{Name: "phone", CategoryId: catId + 100})
	assert.ErrorIs(t, err, models.ErrBadRequest)

	productId, err := ps.CreateProduct(models.ProductInput{Name: "phone", CategoryId: catId})
	require.NoError(t, err)
	assert.Positive(t, productId)
}

func TestGetCategoryWithProducts(t *testing.T) {
	ps, pr, cr, _ := newProductFixture()
	catId, err := cr.CreateCategory(models.Category_db{Name: "Phones", Slug: "phones"})
	require.NoError(t, err)
	pr.put(models.Product_db{Id: 1, Name: "phone", Active: true, CategoryId: catId})

	cat, prods, err := ps.GetCategoryWithProducts("phones")
	require.NoError(t, err)
	assert.Equal(t, "Phones", cat.Name)
	assert.Len(t, prods, 1)

	_, _, err = ps.GetCategoryWithProducts("missing")
	assert.ErrorIs(t, err, models.ErrNotFoundError)
}

func TestUpdateCategoryRequiresId(t *testing.T) {
	ps, _, cr, _ := newProductFixture()
	catId, err := cr.CreateCategory(models.Category_db{Name: "Phones", Slug: "phones"})
	require.NoError(t, err)

	assert.ErrorIs(t, ps.UpdateCategory(models.Category_db{Name: "Renamed"}), models.ErrBadRequest)
	require.NoError(t, ps.UpdateCategory(models.Category_db{Id: catId, Name: "Renamed", Slug: "phones"}))
}
