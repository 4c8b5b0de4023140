package controllers

import (
	"strconv"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/pkg/ctx"
)

// AdminProductController manages the catalog from the back office. Create
// and update accept multipart form data so the image rides along.
type AdminProductController struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

// NewAdminProductController wires the product endpoints.
func NewAdminProductController(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *AdminProductController {
	return &AdminProductController{products: products, categories: categories}
}

// Index lists products with the same filters as the storefront.
func (pc *AdminProductController) Index(c *ctx.Context) {
	page, perPage := pageQuery(c)
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 32)

	filter := repositories.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: uint(categoryID),
	}

	products, pagination, err := pc.products.Paginate(filter, page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]interface{}{"items": products, "pagination": pagination})
}

// Show returns one product.
func (pc *AdminProductController) Show(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := pc.products.Find(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Store creates a product from multipart form data.
func (pc *AdminProductController) Store(c *ctx.Context) {
	upload, ok := formUpload(c, "image")
	if !ok {
		return
	}

	product, errs := pc.bindForm(c, &models.Product{})
	if errs != nil {
		c.ValidationError(errs)
		return
	}

	if err := pc.products.Create(product, upload); err != nil {
		fail(c, err)
		return
	}
	c.Created(product)
}

// Update edits a product, optionally replacing its image.
func (pc *AdminProductController) Update(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	upload, ok := formUpload(c, "image")
	if !ok {
		return
	}

	existing, err := pc.products.Find(id)
	if err != nil {
		fail(c, err)
		return
	}

	product, errs := pc.bindForm(c, existing)
	if errs != nil {
		c.ValidationError(errs)
		return
	}

	if err := pc.products.Update(product, upload); err != nil {
		fail(c, err)
		return
	}
	c.Success(product)
}

// Destroy removes a product.
func (pc *AdminProductController) Destroy(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := pc.products.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Product deleted."})
}

// bindForm fills product from the multipart form fields. An empty stock
// field means the product does not track stock.
func (pc *AdminProductController) bindForm(c *ctx.Context, product *models.Product) (*models.Product, map[string]string) {
	errs := map[string]string{}

	name := c.PostForm("name")
	if name == "" {
		errs["name"] = "The product name is required."
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		errs["price"] = "A non-negative price is required."
	}

	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 32)
	if err != nil || categoryID == 0 {
		errs["category_id"] = "A category is required."
	} else if _, err := pc.categories.Find(uint(categoryID)); err != nil {
		errs["category_id"] = "The selected category does not exist."
	}

	var stock *int
	if raw := c.PostForm("stock"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs["stock"] = "Stock must be a non-negative number."
		} else {
			stock = &n
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	product.Name = name
	product.Description = c.PostForm("description")
	product.Price = price
	product.CategoryID = uint(categoryID)
	product.Stock = stock
	return product, nil
}
