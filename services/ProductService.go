package services

import (
	"math"

	"techStore/entities"
	"techStore/models"
	"techStore/repository"
)

type ProductService struct {
	pr repository.ProductRepository
	cr repository.CategoryRepository
	rr repository.ReviewRepository
}

func NewProductService(productRepo repository.ProductRepository, catRepo repository.CategoryRepository, reviewRepo repository.ReviewRepository) ProductService {
	return ProductService{
		pr: productRepo,
		cr: catRepo,
		rr: reviewRepo,
	}
}

func (ps *ProductService) GetProductById(prodId int) (detail entities.ProductDetail, err error) {
	pModel, exists, err := ps.pr.GetProductById(prodId)
	if err != nil {
		return
	}
	if !exists {
		err = models.ErrNotFoundError
		return
	}

	cat, _, err := ps.cr.GetCategoryById(pModel.CategoryId)
	if err != nil {
		return
	}
	detail = entities.ProductDetail{
		Id:          pModel.Id,
		Name:        pModel.Name,
		Slug:        pModel.Slug,
		Description: pModel.Description.String,
		Price:       pModel.Price,
		Stock:       pModel.Stock,
		Active:      pModel.Active,
		Category:    entities.Category{Id: cat.Id, Name: cat.Name, Slug: cat.Slug},
	}
	if pModel.BrandId.Valid {
		brand, ex, e := ps.cr.GetBrandById(int(pModel.BrandId.Int64))
		if e != nil {
			err = e
			return
		}
		if ex {
			detail.Brand = &entities.Brand{Id: brand.Id, Name: brand.Name, Slug: brand.Slug}
		}
	}

	average, count, err := ps.rr.GetRatingSummary(prodId)
	if err != nil {
		return
	}
	detail.Rating = RoundRating(average)
	detail.ReviewCount = count
	return
}

func (ps *ProductService) ListProducts(filter models.ProductFilter) (prods []entities.ProductPreview, err error) {
	prods, err = ps.pr.ListProducts(filter)
	return
}

func (ps *ProductService) CreateProduct(input models.ProductInput) (productId int, err error) {
	_, ex, e := ps.cr.GetCategoryById(input.CategoryId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrBadRequest
		return
	}
	productId, err = ps.pr.CreateProduct(input)
	return
}

func (ps *ProductService) UpdateProduct(input models.ProductInput) (updated models.Product_db, err error) {
	updated, err = ps.pr.UpdateProduct(input)
	return
}

func (ps *ProductService) GetAllCategories() (cats []models.Category_db, err error) {
	cats, err = ps.cr.GetAllCategories()
	return
}

// GetCategoryWithProducts resolves the category by slug and lists its
// active products.
func (ps *ProductService) GetCategoryWithProducts(slug string) (cat models.Category_db, prods []entities.ProductPreview, err error) {
	cat, ex, err := ps.cr.GetCategoryBySlug(slug)
	if err != nil {
		return
	}
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	prods, err = ps.pr.ListProducts(models.ProductFilter{CategorySlug: slug})
	return
}

func (ps *ProductService) GetAllBrands() (brands []models.Brand_db, err error) {
	brands, err = ps.cr.GetAllBrands()
	return
}

func (ps *ProductService) CreateCategory(cat models.Category_db) (categoryId int, err error) {
	categoryId, err = ps.cr.CreateCategory(cat)
	return
}

func (ps *ProductService) UpdateCategory(cat models.Category_db) (err error) {
	if cat.Id == 0 {
		err = models.ErrBadRequest
		return
	}
	err = ps.cr.UpdateCategory(cat)
	return
}

func (ps *ProductService) CreateBrand(brand models.Brand_db) (brandId int, err error) {
	brandId, err = ps.cr.CreateBrand(brand)
	return
}

// RoundRating rounds an average rating to one decimal place; a product
// without reviews reads 0.0.
func RoundRating(average float64) float64 {
	return math.Round(average*10) / 10
}
