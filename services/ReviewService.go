package services

import (
	"log"

	"techStore/entities"
	"techStore/models"
	"techStore/repository"
)

type ReviewService struct {
	rr repository.ReviewRepository
	pr repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return ReviewService{
		rr: reviewRepo,
		pr: productRepo,
	}
}

func (rs *ReviewService) AddReview(productId int, userId int, rating int, body string) (reviewId int, err error) {
	if rating < 1 || rating > 5 {
		err = models.ErrInvalidRating
		return
	}
	_, ex, e := rs.pr.GetProductById(productId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		log.Printf("AddReview: product does not exist")
		err = models.ErrNotFoundError
		return
	}
	reviewId, err = rs.rr.AddReview(models.Review_db{
		ProductId: productId,
		UserId:    userId,
		Rating:    rating,
		Body:      body,
	})
	return
}

// DeleteReview removes a review, but only for its author.
func (rs *ReviewService) DeleteReview(reviewId int, userId int) (err error) {
	review, ex, e := rs.rr.GetReviewById(reviewId)
	if e != nil {
		err = e
		return
	}
	if !ex {
		err = models.ErrNotFoundError
		return
	}
	if review.UserId != userId {
		err = models.ErrNotOwner
		return
	}
	err = rs.rr.DeleteReview(reviewId)
	return
}

func (rs *ReviewService) GetProductReviews(productId int) (reviews []entities.ReviewView, err error) {
	reviews, err = rs.rr.GetProductReviews(productId)
	return
}

func (rs *ReviewService) GetRatingSummary(productId int) (summary entities.RatingSummary, err error) {
	average, count, err := rs.rr.GetRatingSummary(productId)
	if err != nil {
		return
	}
	summary = entities.RatingSummary{
		Average: RoundRating(average),
		Count:   count,
	}
	return
}
