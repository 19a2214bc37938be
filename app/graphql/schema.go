// Package graphql exposes a read-only catalog query surface at
// /api/graphql, backed by the same catalog service as the REST routes.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/response"
)

var sizeEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SizeEntry",
	Fields: graphql.Fields{
		"size":     &graphql.Field{Type: graphql.Float},
		"quantity": &graphql.Field{Type: graphql.Int},
		"isEU":     &graphql.Field{Type: graphql.Boolean},
	},
})

var attributesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Attributes",
	Fields: graphql.Fields{
		"color":    &graphql.Field{Type: graphql.String},
		"material": &graphql.Field{Type: graphql.String},
		"style":    &graphql.Field{Type: graphql.String},
	},
})

var imageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Image",
	Fields: graphql.Fields{
		"url": &graphql.Field{Type: graphql.String},
	},
})

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod, ok := p.Source.(models.Product); ok {
						return prod.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":        &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"description": &graphql.Field{Type: graphql.String},
			"gender":      &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"brand":       &graphql.Field{Type: graphql.String},
			"attributes":  &graphql.Field{Type: attributesType},
			"sizes":       &graphql.Field{Type: graphql.NewList(sizeEntryType)},
			"images":      &graphql.Field{Type: graphql.NewList(imageType)},
			"ratings":     &graphql.Field{Type: graphql.Float},
			"onSale":      &graphql.Field{Type: graphql.Boolean},
			"salePrice":   &graphql.Field{Type: graphql.Float},
			"totalStock": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if prod, ok := p.Source.(models.Product); ok {
						return prod.TotalStock(), nil
					}
					return 0, nil
				},
			},
		},
	})
}

// NewSchema builds the catalog query schema over the given service.
func NewSchema(catalog *services.CatalogService) (graphql.Schema, error) {
	productType := newProductType()

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"gender":   &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"brand":    &graphql.ArgumentConfig{Type: graphql.String},
					"style":    &graphql.ArgumentConfig{Type: graphql.String},
					"onSale":   &graphql.ArgumentConfig{Type: graphql.Boolean},
					"minPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.Float},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := services.ProductFilter{}
					if v, ok := p.Args["gender"].(string); ok {
						filter.Gender = v
					}
					if v, ok := p.Args["category"].(string); ok {
						filter.Category = v
					}
					if v, ok := p.Args["brand"].(string); ok {
						filter.Brand = v
					}
					if v, ok := p.Args["style"].(string); ok {
						filter.Style = v
					}
					if v, ok := p.Args["onSale"].(bool); ok {
						filter.OnSale = &v
					}
					if v, ok := p.Args["minPrice"].(float64); ok {
						filter.MinPrice = &v
					}
					if v, ok := p.Args["maxPrice"].(float64); ok {
						filter.MaxPrice = &v
					}

					products, _, err := catalog.List(p.Context, filter)
					return products, err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, err := catalog.Get(p.Context, id)
					if err != nil {
						return nil, err
					}
					return *product, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Handler returns the POST /api/graphql endpoint for the given schema.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
