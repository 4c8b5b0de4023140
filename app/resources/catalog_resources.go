// Package resources shapes the public storefront JSON. The admin API returns
// models directly; the storefront goes through these transformers so internal
// fields never leak and image paths become absolute URLs.
package resources

import (
	"fmt"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/pkg/resource"
	"github.com/thanhvudev/furnimart/pkg/storage"
)

// ProductResource transforms a product for the storefront.
// ToArray accepts both the model and its JSON map form, since collections
// round-trip items through JSON before transforming.
type ProductResource struct{ resource.Base }

func (ProductResource) ToArray(v interface{}) resource.Map {
	switch p := v.(type) {
	case models.Product:
		out := resource.Map{
			"id":          p.ProductID,
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"in_stock":    !p.TracksStock() || *p.Stock > 0,
			"image":       imageURL(p.Image),
			"links":       resource.Map{"self": fmt.Sprintf("/api/products/%d", p.ProductID)},
		}
		if p.Category != nil {
			out["category"] = resource.Map{"id": p.Category.CategoryID, "name": p.Category.Name}
		}
		return out
	case map[string]interface{}:
		out := resource.Map{
			"id":          p["product_id"],
			"name":        p["name"],
			"description": p["description"],
			"price":       p["price"],
			"in_stock":    p["stock"] == nil || num(p["stock"]) > 0,
			"image":       imageURL(str(p["image"])),
			"links":       resource.Map{"self": fmt.Sprintf("/api/products/%v", num(p["product_id"]))},
		}
		if cat, ok := p["category"].(map[string]interface{}); ok {
			out["category"] = resource.Map{"id": cat["category_id"], "name": cat["name"]}
		}
		return out
	default:
		return resource.Map{}
	}
}

// CategoryResource transforms a category for the storefront navigation.
type CategoryResource struct{ resource.Base }

func (CategoryResource) ToArray(v interface{}) resource.Map {
	switch c := v.(type) {
	case models.Category:
		return resource.Map{
			"id":    c.CategoryID,
			"name":  c.Name,
			"image": imageURL(c.Image),
			"links": resource.Map{"self": fmt.Sprintf("/api/products?category=%d", c.CategoryID)},
		}
	case map[string]interface{}:
		return resource.Map{
			"id":    c["category_id"],
			"name":  c["name"],
			"image": imageURL(str(c["image"])),
			"links": resource.Map{"self": fmt.Sprintf("/api/products?category=%v", num(c["category_id"]))},
		}
	default:
		return resource.Map{}
	}
}

func imageURL(path string) string {
	if path == "" {
		return ""
	}
	return storage.URL(path)
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func num(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
