package controllers

import (
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// AdminCategoryController manages categories and their images. Create and
// update accept multipart form data (name + optional image file).
type AdminCategoryController struct {
	categories *repositories.CategoryRepository
}

// NewAdminCategoryController wires the category endpoints.
func NewAdminCategoryController(categories *repositories.CategoryRepository) *AdminCategoryController {
	return &AdminCategoryController{categories: categories}
}

// Index returns one page of categories with their product counts.
func (ac *AdminCategoryController) Index(c *ctx.Context) {
	page, perPage := pageQuery(c)

	cats, pagination, err := ac.categories.PaginateWithCounts(page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"items": cats, "pagination": pagination})
}

// Show returns one category.
func (ac *AdminCategoryController) Show(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	cat, err := ac.categories.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cat)
}

// Store creates a category from multipart form data.
func (ac *AdminCategoryController) Store(c *ctx.Context) {
	upload, ok := formUpload(c, "image")
	if !ok {
		return
	}

	cat, err := ac.categories.Create(c.PostForm("name"), upload)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(cat)
}

// Update renames a category and optionally swaps its image.
func (ac *AdminCategoryController) Update(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	upload, ok := formUpload(c, "image")
	if !ok {
		return
	}

	cat, err := ac.categories.Update(id, c.PostForm("name"), upload)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cat)
}

// Destroy deletes a category. Categories that still have products are
// protected; the client gets the reason, not a fault.
func (ac *AdminCategoryController) Destroy(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ac.categories.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Category deleted."})
}
