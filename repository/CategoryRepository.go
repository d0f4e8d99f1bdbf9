package repository

import (
	"database/sql"
	"errors"
	"log"

	"techStore/models"
)

type CategoryRepository interface {
	GetAllCategories() (cats []models.Category_db, err error)
	GetCategoryBySlug(slug string) (cat models.Category_db, exists bool, err error)
	GetCategoryById(id int) (cat models.Category_db, exists bool, err error)
	GetBrandById(id int) (brand models.Brand_db, exists bool, err error)
	CreateCategory(cat models.Category_db) (categoryId int, err error)
	UpdateCategory(cat models.Category_db) (err error)
	GetAllBrands() (brands []models.Brand_db, err error)
	GetBrandBySlug(slug string) (brand models.Brand_db, exists bool, err error)
	CreateBrand(brand models.Brand_db) (brandId int, err error)
}

type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepository(conn *sql.DB) (CategoryRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &CategoryRepo{
		db: conn,
	}, nil
}

func (c *CategoryRepo) GetAllCategories() (cats []models.Category_db, err error) {
	rows, e := c.db.Query("SELECT Id, Name, Slug, Description FROM Categories ORDER BY Name")
	if e != nil {
		log.Printf("GetAllCategories: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		cat := models.Category_db{}
		err = rows.Scan(&cat.Id, &cat.Name, &cat.Slug, &cat.Description)
		if err != nil {
			log.Printf("GetAllCategories: %v", err)
			err = models.ErrServerError
			return
		}
		cats = append(cats, cat)
	}
	return
}

func (c *CategoryRepo) GetCategoryBySlug(slug string) (cat models.Category_db, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Name, Slug, Description FROM Categories WHERE Slug = $1", slug)
	err = row.Scan(&cat.Id, &cat.Name, &cat.Slug, &cat.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetCategoryBySlug: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (c *CategoryRepo) GetCategoryById(id int) (cat models.Category_db, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Name, Slug, Description FROM Categories WHERE Id = $1", id)
	err = row.Scan(&cat.Id, &cat.Name, &cat.Slug, &cat.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetCategoryById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (c *CategoryRepo) GetBrandById(id int) (brand models.Brand_db, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Name, Slug, Description FROM Brands WHERE Id = $1", id)
	err = row.Scan(&brand.Id, &brand.Name, &brand.Slug, &brand.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetBrandById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (c *CategoryRepo) CreateCategory(cat models.Category_db) (categoryId int, err error) {
	if cat.Name == "" || cat.Slug == "" {
		err = models.ErrBadRequest
		return
	}
	e := c.db.QueryRow("INSERT INTO Categories (Name, Slug, Description) VALUES ($1, $2, $3) RETURNING Id",
		cat.Name, cat.Slug, cat.Description).Scan(&categoryId)
	if e != nil {
		log.Printf("CreateCategory: %v", e)
		err = models.ErrServerError
	}
	return
}

func (c *CategoryRepo) UpdateCategory(cat models.Category_db) (err error) {
	if cat.Name == "" {
		err = models.ErrBadRequest
		return
	}
	res, e := c.db.Exec("UPDATE Categories SET Name = $1, Description = $2 WHERE Id = $3",
		cat.Name, cat.Description, cat.Id)
	if e != nil {
		log.Printf("UpdateCategory: %v", e)
		err = models.ErrServerError
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = models.ErrNotFoundError
	}
	return
}

func (c *CategoryRepo) GetAllBrands() (brands []models.Brand_db, err error) {
	rows, e := c.db.Query("SELECT Id, Name, Slug, Description FROM Brands ORDER BY Name")
	if e != nil {
		log.Printf("GetAllBrands: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		brand := models.Brand_db{}
		err = rows.Scan(&brand.Id, &brand.Name, &brand.Slug, &brand.Description)
		if err != nil {
			log.Printf("GetAllBrands: %v", err)
			err = models.ErrServerError
			return
		}
		brands = append(brands, brand)
	}
	return
}

func (c *CategoryRepo) GetBrandBySlug(slug string) (brand models.Brand_db, exists bool, err error) {
	row := c.db.QueryRow("SELECT Id, Name, Slug, Description FROM Brands WHERE Slug = $1", slug)
	err = row.Scan(&brand.Id, &brand.Name, &brand.Slug, &brand.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetBrandBySlug: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (c *CategoryRepo) CreateBrand(brand models.Brand_db) (brandId int, err error) {
	if brand.Name == "" || brand.Slug == "" {
		err = models.ErrBadRequest
		return
	}
	e := c.db.QueryRow("INSERT INTO Brands (Name, Slug, Description) VALUES ($1, $2, $3) RETURNING Id",
		brand.Name, brand.Slug, brand.Description).Scan(&brandId)
	if e != nil {
		log.Printf("CreateBrand: %v", e)
		err = models.ErrServerError
	}
	return
}
