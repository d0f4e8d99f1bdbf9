package repository

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"techStore/entities"
	"techStore/models"
)

type ReviewRepository interface {
	AddReview(review models.Review_db) (reviewId int, err error)
	GetReviewById(reviewId int) (review models.Review_db, exists bool, err error)
	DeleteReview(reviewId int) (err error)
	GetProductReviews(productId int) (reviews []entities.ReviewView, err error)
	GetRatingSummary(productId int) (average float64, count int, err error)
}

type ReviewRepo struct {
	db *sql.DB
}

func NewReviewRepository(conn *sql.DB) (ReviewRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	return &ReviewRepo{
		db: conn,
	}, nil
}

// AddReview relies on the (ProductId, UserId) unique constraint for the
// one-review-per-user rule; a violation comes back as ErrDuplicateReview.
func (r *ReviewRepo) AddReview(review models.Review_db) (reviewId int, err error) {
	e := r.db.QueryRow("INSERT INTO Reviews (ProductId, UserId, Rating, Body, Created) VALUES ($1, $2, $3, $4, $5) RETURNING Id",
		review.ProductId, review.UserId, review.Rating, review.Body, time.Now().UTC()).Scan(&reviewId)
	if e != nil {
		if isUniqueViolation(e) {
			err = models.ErrDuplicateReview
			return
		}
		log.Printf("AddReview: %v", e)
		err = models.ErrServerError
	}
	return
}

func (r *ReviewRepo) GetReviewById(reviewId int) (review models.Review_db, exists bool, err error) {
	row := r.db.QueryRow("SELECT Id, ProductId, UserId, Rating, Body, Created FROM Reviews WHERE Id = $1", reviewId)
	err = row.Scan(&review.Id, &review.ProductId, &review.UserId, &review.Rating, &review.Body, &review.Created)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetReviewById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (r *ReviewRepo) DeleteReview(reviewId int) (err error) {
	_, e := r.db.Exec("DELETE FROM Reviews WHERE Id = $1", reviewId)
	if e != nil {
		log.Printf("DeleteReview: %v", e)
		err = models.ErrServerError
	}
	return
}

func (r *ReviewRepo) GetProductReviews(productId int) (reviews []entities.ReviewView, err error) {
	rows, e := r.db.Query("SELECT Reviews.Id, Users.Username, Reviews.Rating, Reviews.Body, Reviews.Created "+
		"FROM Reviews JOIN Users ON Reviews.UserId = Users.Id WHERE Reviews.ProductId = $1 ORDER BY Reviews.Created DESC", productId)
	if e != nil {
		log.Printf("GetProductReviews: %v", e)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	for rows.Next() {
		review := entities.ReviewView{}
		err = rows.Scan(&review.Id, &review.Username, &review.Rating, &review.Body, &review.Created)
		if err != nil {
			log.Printf("GetProductReviews: %v", err)
			err = models.ErrServerError
			return
		}
		reviews = append(reviews, review)
	}
	return
}

// GetRatingSummary recomputes the aggregate from the live review set on
// every call; the empty-state average is 0.
func (r *ReviewRepo) GetRatingSummary(productId int) (average float64, count int, err error) {
	e := r.db.QueryRow("SELECT COALESCE(AVG(CAST(Rating AS FLOAT)), 0), COUNT(Id) FROM Reviews WHERE ProductId = $1", productId).
		Scan(&average, &count)
	if e != nil {
		log.Printf("GetRatingSummary: %v", e)
		err = models.ErrServerError
	}
	return
}
