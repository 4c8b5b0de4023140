package controllers

import (
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// AdminFeedbackController is the moderation surface for product feedback.
type AdminFeedbackController struct {
	feedback *services.FeedbackService
}

// NewAdminFeedbackController wires the moderation endpoints.
func NewAdminFeedbackController(feedback *services.FeedbackService) *AdminFeedbackController {
	return &AdminFeedbackController{feedback: feedback}
}

// Index lists feedback across all products.
func (fc *AdminFeedbackController) Index(c *ctx.Context) {
	page, perPage := pageQuery(c)

	items, pagination, err := fc.feedback.List(page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"items": items, "pagination": pagination})
}

// Destroy removes a feedback entry.
func (fc *AdminFeedbackController) Destroy(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := fc.feedback.Remove(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Feedback removed."})
}
