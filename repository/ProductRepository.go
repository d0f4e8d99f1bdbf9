package repository

import (
	"database/sql"
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode"

	"techStore/entities"
	"techStore/models"
)

type ProductRepository interface {
	GetProductById(id int) (pModel models.Product_db, exists bool, err error)
	ListProducts(filter models.ProductFilter) (prods []entities.ProductPreview, err error)
	CreateProduct(input models.ProductInput) (productId int, err error)
	UpdateProduct(input models.ProductInput) (updated models.Product_db, err error)
	SetStock(productId int, stock int) (err error)
}

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepository(conn *sql.DB) (ProductRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &ProductRepo{
		db: conn,
	}, nil
}

func (p *ProductRepo) GetProductById(id int) (pModel models.Product_db, exists bool, err error) {
	row := p.db.QueryRow("SELECT Id, Name, Slug, Description, Price, Stock, Active, CategoryId, BrandId, Created, Updated FROM Products WHERE Id = $1", id)
	err = row.Scan(&pModel.Id, &pModel.Name, &pModel.Slug, &pModel.Description,
		&pModel.Price, &pModel.Stock, &pModel.Active, &pModel.CategoryId,
		&pModel.BrandId, &pModel.Created, &pModel.Updated)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetProductById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

// ListProducts builds the filtered catalog listing in one query. The
// review aggregate joins in so rating filters and the preview rating come
// from the live review set.
func (p *ProductRepo) ListProducts(filter models.ProductFilter) (prods []entities.ProductPreview, err error) {
	var queryParams []any
	var conds []string
	var having []string
	count := 0

	query := "SELECT Products.Id, Products.Name, Products.Slug, Products.Price, Products.Stock, " +
		"Categories.Name, COALESCE(Brands.Name, ''), " +
		"COALESCE(AVG(Reviews.Rating), 0), COUNT(Reviews.Id) " +
		"FROM Products " +
		"JOIN Categories ON Products.CategoryId = Categories.Id " +
		"LEFT JOIN Brands ON Products.BrandId = Brands.Id " +
		"LEFT JOIN Reviews ON Reviews.ProductId = Products.Id " +
		"WHERE Products.Active = TRUE"

	if filter.Query != "" {
		count++
		conds = append(conds, "(Products.Name LIKE '%' || $"+strconv.Itoa(count)+" || '%' OR Products.Description LIKE '%' || $"+strconv.Itoa(count)+" || '%')")
		queryParams = append(queryParams, filter.Query)
	}
	if filter.CategorySlug != "" {
		count++
		conds = append(conds, "Categories.Slug = $"+strconv.Itoa(count))
		queryParams = append(queryParams, filter.CategorySlug)
	}
	if filter.BrandSlug != "" {
		count++
		conds = append(conds, "Brands.Slug = $"+strconv.Itoa(count))
		queryParams = append(queryParams, filter.BrandSlug)
	}
	if filter.MinPrice != nil {
		count++
		conds = append(conds, "Products.Price >= $"+strconv.Itoa(count))
		queryParams = append(queryParams, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		count++
		conds = append(conds, "Products.Price <= $"+strconv.Itoa(count))
		queryParams = append(queryParams, *filter.MaxPrice)
	}
	if filter.InStock {
		conds = append(conds, "Products.Stock > 0")
	}
	if filter.MinRating != nil {
		count++
		having = append(having, "COALESCE(AVG(Reviews.Rating), 0) >= $"+strconv.Itoa(count))
		queryParams = append(queryParams, *filter.MinRating)
	}
	if filter.MaxRating != nil {
		count++
		having = append(having, "COALESCE(AVG(Reviews.Rating), 0) <= $"+strconv.Itoa(count))
		queryParams = append(queryParams, *filter.MaxRating)
	}

	if len(conds) > 0 {
		query = query + " AND " + strings.Join(conds, " AND ")
	}
	query = query + " GROUP BY Products.Id, Products.Name, Products.Slug, Products.Price, Products.Stock, Categories.Name, Brands.Name"
	if len(having) > 0 {
		query = query + " HAVING " + strings.Join(having, " AND ")
	}
	query = query + " ORDER BY Products.Id"

	rows, e := p.db.Query(query, queryParams...)
	if e != nil {
		log.Printf("ListProducts: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		prod := entities.ProductPreview{}
		var stock int
		var avg float64
		err = rows.Scan(&prod.Id, &prod.Name, &prod.Slug, &prod.Price, &stock,
			&prod.Category, &prod.Brand, &avg, &prod.Reviews)
		if err != nil {
			log.Printf("ListProducts: %v", err)
			err = models.ErrServerError
			return
		}
		prod.InStock = stock > 0
		prod.Rating = roundRating(avg)
		prods = append(prods, prod)
	}
	return
}

func (p *ProductRepo) CreateProduct(input models.ProductInput) (productId int, err error) {
	if e := validateProductInput(input, true); e != nil {
		err = e
		return
	}
	var brandId any
	if input.BrandId != nil {
		brandId = *input.BrandId
	}
	e := p.db.QueryRow("INSERT INTO Products (Name, Slug, Description, Price, Stock, Active, CategoryId, BrandId) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING Id",
		input.Name, input.Slug, input.Description, *input.Price, *input.Stock, *input.Active, input.CategoryId, brandId).Scan(&productId)
	if e != nil {
		log.Printf("CreateProduct: %v", e)
		err = models.ErrServerError
	}
	return
}

func (p *ProductRepo) UpdateProduct(input models.ProductInput) (updated models.Product_db, err error) {
	_, ex, e := p.GetProductById(input.Id)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFoundError
		return
	}

	queryParams := make([]any, 0, 8)
	var sets []string
	count := 0
	if isValidLen(input.Name, 3, 100) && isValidString(input.Name) {
		count++
		sets = append(sets, "Name = $"+strconv.Itoa(count))
		queryParams = append(queryParams, input.Name)
	}
	if input.Slug != "" {
		count++
		sets = append(sets, "Slug = $"+strconv.Itoa(count))
		queryParams = append(queryParams, input.Slug)
	}
	if input.Description != "" {
		count++
		sets = append(sets, "Description = $"+strconv.Itoa(count))
		queryParams = append(queryParams, input.Description)
	}
	if input.Price != nil && input.Price.IsPositive() {
		count++
		sets = append(sets, "Price = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *input.Price)
	}
	if input.Stock != nil && *input.Stock >= 0 {
		count++
		sets = append(sets, "Stock = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *input.Stock)
	}
	if input.Active != nil {
		count++
		sets = append(sets, "Active = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *input.Active)
	}
	if input.CategoryId > 0 {
		count++
		sets = append(sets, "CategoryId = $"+strconv.Itoa(count))
		queryParams = append(queryParams, input.CategoryId)
	}
	if input.BrandId != nil {
		count++
		sets = append(sets, "BrandId = $"+strconv.Itoa(count))
		queryParams = append(queryParams, *input.BrandId)
	}
	if len(sets) == 0 {
		err = models.ErrBadRequest
		return
	}
	count++
	query := "UPDATE Products SET " + strings.Join(sets, ", ") + ", Updated = CURRENT_TIMESTAMP WHERE Id = $" + strconv.Itoa(count)
	queryParams = append(queryParams, input.Id)
	_, e = p.db.Exec(query, queryParams...)
	if e != nil {
		log.Printf("UpdateProduct: %v", e)
		err = models.ErrServerError
		return
	}

	updated, _, err = p.GetProductById(input.Id)
	return
}

func (p *ProductRepo) SetStock(productId int, stock int) (err error) {
	if stock < 0 {
		err = models.ErrBadRequest
		return
	}
	_, e := p.db.Exec("UPDATE Products SET Stock = $1, Updated = CURRENT_TIMESTAMP WHERE Id = $2", stock, productId)
	if e != nil {
		log.Printf("SetStock: %v", e)
		err = models.ErrServerError
	}
	return
}

func validateProductInput(input models.ProductInput, creating bool) error {
	if !isValidLen(input.Name, 3, 100) || !isValidString(input.Name) {
		log.Printf("name field is invalid")
		return models.ErrNotAllowed
	}
	if input.Slug == "" {
		log.Printf("slug field is invalid")
		return models.ErrNotAllowed
	}
	if input.Price == nil || !input.Price.IsPositive() {
		log.Printf("price field is invalid")
		return models.ErrNotAllowed
	}
	if input.Stock == nil || *input.Stock < 0 {
		log.Printf("stock field is invalid")
		return models.ErrNotAllowed
	}
	if input.Active == nil {
		log.Printf("active field is invalid")
		return models.ErrNotAllowed
	}
	if creating && input.CategoryId <= 0 {
		log.Printf("category field is invalid")
		return models.ErrNotAllowed
	}
	return nil
}

func isValidLen(input string, minLen int, maxLen int) bool {
	inputLen := len([]rune(input))
	if inputLen < minLen || inputLen > maxLen {
		return false
	}
	return true
}

func isValidString(input string) bool {
	allowedSymbols := map[rune]bool{
		'-': true,
		' ': true,
		':': true,
		'.': true,
		',': true,
		'"': true,
		'+': true,
	}
	for _, char := range input {
		if !(unicode.IsLetter(char) || unicode.IsDigit(char) || allowedSymbols[char]) {
			return false
		}
	}
	return true
}

func roundRating(avg float64) float64 {
	return float64(int(avg*10+0.5)) / 10
}
