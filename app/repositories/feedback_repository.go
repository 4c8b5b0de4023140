package repositories

import (
	"errors"

	"github.com/thanhvudev/furnimart/app/apperr"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/orm"
)

// FeedbackRepository owns product feedback persistence.
type FeedbackRepository struct{}

// NewFeedbackRepository builds a FeedbackRepository.
func NewFeedbackRepository() *FeedbackRepository { return &FeedbackRepository{} }

// Find loads one feedback entry with its author and product.
func (r *FeedbackRepository) Find(id uint) (*models.Feedback, error) {
	var f models.Feedback
	err := orm.DB().Preload("User").Preload("Product").Where("feedback_id = ?", id).First(&f)
	if err != nil {
		if errors.Is(err, orm.ErrRecordNotFound) {
			return nil, apperr.NotFound("feedback")
		}
		return nil, err
	}
	return &f, nil
}

// Paginate returns one page of feedback across all products, newest first.
func (r *FeedbackRepository) Paginate(page, perPage int) ([]models.Feedback, orm.Pagination, error) {
	var items []models.Feedback
	p, err := orm.DB().Model(&models.Feedback{}).
		Preload("User").
		Preload("Product").
		Order("feedback_id desc").
		GetWithPagination(&items, page, perPage)
	return items, p, err
}

// ForProduct returns a product's feedback, newest first.
func (r *FeedbackRepository) ForProduct(productID uint) ([]models.Feedback, error) {
	var items []models.Feedback
	err := orm.DB().Preload("User").
		Where("product_id = ?", productID).
		Order("feedback_id desc").
		Get(&items)
	return items, err
}

// Create inserts a feedback entry.
func (r *FeedbackRepository) Create(f *models.Feedback) error {
	return orm.DB().Create(f)
}

// Count returns the total number of feedback entries.
func (r *FeedbackRepository) Count() (int64, error) {
	return orm.DB().Model(&models.Feedback{}).Count()
}

// Delete removes a feedback entry.
func (r *FeedbackRepository) Delete(id uint) error {
	if _, err := r.Find(id); err != nil {
		return err
	}
	return orm.DB().Where("feedback_id = ?", id).Delete(&models.Feedback{})
}
