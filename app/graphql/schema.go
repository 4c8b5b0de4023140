// Package graphql exposes a read-only catalog query surface alongside the
// REST API, for storefront clients that want to shape their own responses.
package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/repositories"
	"github.com/thanhvudev/furnimart/app/services"
	gql "github.com/thanhvudev/furnimart/pkg/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.Int},
		"name":  &graphql.Field{Type: graphql.String},
		"image": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"stock":       &graphql.Field{Type: graphql.Int},
		"image":       &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: categoryType},
	},
})

var quoteType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ShippingQuote",
	Fields: graphql.Fields{
		"subtotal": &graphql.Field{Type: graphql.Float},
		"fee":      &graphql.Field{Type: graphql.Float},
		"total":    &graphql.Field{Type: graphql.Float},
		"isFree":   &graphql.Field{Type: graphql.Boolean},
		"tier":     &graphql.Field{Type: graphql.String},
	},
})

// NewHandler builds the /graphql endpoint over the catalog repositories.
func NewHandler(products *repositories.ProductRepository, categories *repositories.CategoryRepository, shipping *services.ShippingService) (http.HandlerFunc, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := repositories.ProductFilter{}
					if s, ok := p.Args["search"].(string); ok {
						filter.Search = s
					}
					if id, ok := p.Args["category"].(int); ok {
						filter.CategoryID = uint(id)
					}
					items, _, err := products.Paginate(filter, 1, 100)
					if err != nil {
						return nil, err
					}
					return mapProducts(items), nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					product, err := products.Find(uint(id))
					if err != nil {
						return nil, err
					}
					return mapProduct(*product), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					cats, err := categories.All()
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, 0, len(cats))
					for _, c := range cats {
						out = append(out, map[string]interface{}{
							"id": int(c.CategoryID), "name": c.Name, "image": c.Image,
						})
					}
					return out, nil
				},
			},
			"shippingQuote": &graphql.Field{
				Type: quoteType,
				Args: graphql.FieldConfigArgument{
					"subtotal": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					subtotal, _ := p.Args["subtotal"].(float64)
					info := shipping.Info(subtotal)
					return map[string]interface{}{
						"subtotal": info.Subtotal,
						"fee":      info.Fee,
						"total":    info.Total,
						"isFree":   info.IsFree,
						"tier":     info.Tier,
					}, nil
				},
			},
		},
	})

	schema, err := gql.NewSchema(root)
	if err != nil {
		return nil, err
	}
	return gql.Handler(schema), nil
}

func mapProducts(items []models.Product) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, p := range items {
		out = append(out, mapProduct(p))
	}
	return out
}

func mapProduct(p models.Product) map[string]interface{} {
	m := map[string]interface{}{
		"id":          int(p.ProductID),
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"image":       p.Image,
	}
	if p.Stock != nil {
		m["stock"] = *p.Stock
	}
	if p.Category != nil {
		m["category"] = map[string]interface{}{
			"id": int(p.Category.CategoryID), "name": p.Category.Name, "image": p.Category.Image,
		}
	}
	return m
}
