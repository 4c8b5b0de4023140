package controllers

import (
	"net/http"
	"strconv"

	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/app/resources"
	"github.com/thanhvudev/furnimart/app/services"
	"github.com/thanhvudev/furnimart/pkg/ctx"
	"github.com/thanhvudev/furnimart/pkg/resource"
)

// CatalogController serves the public storefront: product listings, product
// detail with feedback, categories and shipping quotes.
type CatalogController struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	feedback   *services.FeedbackService
	shipping   *services.ShippingService
}

// NewCatalogController wires the storefront reads.
func NewCatalogController(products *repositories.ProductRepository, categories *repositories.CategoryRepository, feedback *services.FeedbackService, shipping *services.ShippingService) *CatalogController {
	return &CatalogController{products: products, categories: categories, feedback: feedback, shipping: shipping}
}

// Products lists the catalog with optional ?search= and ?category= filters.
func (cc *CatalogController) Products(c *ctx.Context) {
	page, perPage := pageQuery(c)
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 32)

	filter := repositories.ProductFilter{
		Search:     c.Query("search"),
		CategoryID: uint(categoryID),
	}

	products, pagination, err := cc.products.Paginate(filter, page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.ProductResource{}, products).
		WithPagination(pagination).
		Respond(c.W)
}

// Product shows one product with its feedback.
func (cc *CatalogController) Product(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	product, err := cc.products.Find(id)
	if err != nil {
		fail(c, err)
		return
	}

	feedback, err := cc.feedback.ForProduct(id)
	if err != nil {
		fail(c, err)
		return
	}

	c.Success(map[string]interface{}{"product": product, "feedback": feedback})
}

// Categories lists every category for the storefront navigation.
func (cc *CatalogController) Categories(c *ctx.Context) {
	cats, err := cc.categories.All()
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.CategoryResource{}, cats).Respond(c.W)
}

// ShippingQuote prices shipping for an arbitrary subtotal, so the storefront
// can show the fee and the distance to the next tier while the cart changes.
func (cc *CatalogController) ShippingQuote(c *ctx.Context) {
	subtotal, err := strconv.ParseFloat(c.Query("subtotal"), 64)
	if err != nil || subtotal < 0 {
		c.Error(http.StatusBadRequest, "A non-negative subtotal is required.")
		return
	}

	info := cc.shipping.Info(subtotal)
	c.Success(map[string]interface{}{
		"subtotal":                info.Subtotal,
		"fee":                     info.Fee,
		"total":                   info.Total,
		"is_free":                 info.IsFree,
		"tier":                    info.Tier,
		"amount_to_free_shipping": cc.shipping.AmountToFreeShipping(subtotal),
	})
}
