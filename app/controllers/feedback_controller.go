package controllers

import (
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// FeedbackController lets signed-in customers rate products.
type FeedbackController struct {
	feedback *services.FeedbackService
}

// NewFeedbackController wires the feedback endpoint.
func NewFeedbackController(feedback *services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedback: feedback}
}

// Submit records a rating and optional comment for a product.
func (fc *FeedbackController) Submit(c *ctx.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in struct {
		ProductID uint   `json:"product_id" validate:"required"`
		Rating    int    `json:"rating" validate:"required,min=1,max=5"`
		Comment   string `json:"comment" validate:"nullable,max=2000"`
	}
	if !c.BindJSON(&in) {
		return
	}

	f, err := fc.feedback.Submit(userID, in.ProductID, in.Rating, in.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(f)
}
