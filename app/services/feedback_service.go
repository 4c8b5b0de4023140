package services

import (
	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// feedbackStore is the slice of FeedbackRepository the service needs.
type feedbackStore interface {
	Find(id uint) (*models.Feedback, error)
	Paginate(page, perPage int) ([]models.Feedback, orm.Pagination, error)
	ForProduct(productID uint) ([]models.Feedback, error)
	Create(f *models.Feedback) error
	Delete(id uint) error
}

// feedbackProductStore checks the product exists before accepting feedback.
type feedbackProductStore interface {
	Find(id uint) (*models.Product, error)
}

// FeedbackService lets customers rate products and admins moderate the
// results.
type FeedbackService struct {
	feedbacks feedbackStore
	products  feedbackProductStore
}

// NewFeedbackService wires feedback to its stores.
func NewFeedbackService(feedbacks feedbackStore, products feedbackProductStore) *FeedbackService {
	return &FeedbackService{feedbacks: feedbacks, products: products}
}

// Submit records a rating and optional comment for a product.
func (s *FeedbackService) Submit(userID, productID uint, rating int, comment string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.ValidationField("rating", "Rating must be between 1 and 5.")
	}
	if _, err := s.products.Find(productID); err != nil {
		return nil, err
	}

	f := &models.Feedback{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.feedbacks.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ForProduct returns a product's feedback for the storefront detail page.
func (s *FeedbackService) ForProduct(productID uint) ([]models.Feedback, error) {
	return s.feedbacks.ForProduct(productID)
}

// List returns one back-office page of all feedback.
func (s *FeedbackService) List(page, perPage int) ([]models.Feedback, orm.Pagination, error) {
	return s.feedbacks.Paginate(page, perPage)
}

// Remove deletes a feedback entry as a moderation action.
func (s *FeedbackService) Remove(id uint) error {
	return s.feedbacks.Delete(id)
}
