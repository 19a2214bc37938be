package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/stride/app/models"
	"github.com/shashiranjanraj/stride/app/services"
	"github.com/shashiranjanraj/stride/pkg/bind"
	"github.com/shashiranjanraj/stride/pkg/response"
	"github.com/shashiranjanraj/stride/pkg/storage"
)

// maxUploadBytes caps product image uploads at 10 MB.
const maxUploadBytes = 10 << 20

type ProductController struct {
	catalog *services.CatalogService
}

func NewProductController(catalog *services.CatalogService) *ProductController {
	return &ProductController{catalog: catalog}
}

// productRequest is the create/update schema.
type productRequest struct {
	Name        string             `json:"name" validate:"required"`
	Price       float64            `json:"price" validate:"required,gt=0"`
	Description string             `json:"description"`
	Gender      string             `json:"gender" validate:"required,in=men,women,unisex"`
	Category    string             `json:"category" validate:"required,in=casual,training"`
	Attributes  models.Attributes  `json:"attributes"`
	Sizes       []models.SizeEntry `json:"sizes" validate:"required"`
	Brand       string             `json:"brand" validate:"required"`
	OnSale      bool               `json:"onSale"`
	SalePrice   *float64           `json:"salePrice"`
}

func (in *productRequest) toModel() *models.Product {
	return &models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Gender:      in.Gender,
		Category:    in.Category,
		Attributes:  in.Attributes,
		Sizes:       in.Sizes,
		Brand:       in.Brand,
		OnSale:      in.OnSale,
		SalePrice:   in.SalePrice,
	}
}

// Index handles GET /api/products — the catalog query.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	products, count, err := c.catalog.List(r.Context(), filter)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{
		"products":     products,
		"productCount": count,
	})
}

// Show handles GET /api/product/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	product, err := c.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{
		"product":    product,
		"totalStock": product.TotalStock(),
	})
}

// Create handles POST /api/admin/product/new.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in productRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product := in.toModel()
	if err := c.catalog.Create(r.Context(), product); err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, response.M{"product": product})
}

// Update handles PUT /api/admin/product/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in productRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.Update(r.Context(), chi.URLParam(r, "id"), in.toModel())
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"product": product})
}

// Delete handles DELETE /api/admin/product/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, response.M{"message": "Product deleted"})
}

// UpdateStock handles PUT /api/admin/product/{id}/stock. The body is a
// JSON array of {size, quantity}; anything else is an invalid request.
func (c *ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var updates []services.StockUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUploadBytes)).Decode(&updates); err != nil {
		response.Error(w, http.StatusBadRequest, "stock update must be a list of {size, quantity}")
		return
	}
	for _, u := range updates {
		if u.Quantity < 0 {
			response.Error(w, http.StatusBadRequest, "quantity must not be negative")
			return
		}
	}

	product, err := c.catalog.UpdateStock(r.Context(), chi.URLParam(r, "id"), updates)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{
		"product":    product,
		"totalStock": product.TotalStock(),
	})
}

// saleRequest is the toggle-sale schema.
type saleRequest struct {
	OnSale    bool     `json:"onSale"`
	SalePrice *float64 `json:"salePrice"`
}

// ToggleSale handles PUT /api/admin/product/{id}/toggle-sale.
func (c *ProductController) ToggleSale(w http.ResponseWriter, r *http.Request) {
	var in saleRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.catalog.ToggleSale(r.Context(), chi.URLParam(r, "id"), in.OnSale, in.SalePrice)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"product": product})
}

// UploadImage handles POST /api/admin/product/{id}/images (multipart,
// field "image"). The file lands on the configured storage disk and its
// public URL is appended to the product's gallery.
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(header.Filename))
	path := "products/" + id + "/" + name

	if err := storage.PutStream(path, file); err != nil {
		fail(w, r, err)
		return
	}

	url := storage.URL(path)
	if err := c.catalog.AddImage(r.Context(), id, url); err != nil {
		// Don't leave the uploaded file orphaned.
		_ = storage.Delete(path)
		fail(w, r, err)
		return
	}

	response.Created(w, response.M{"url": url})
}

// imageRequest is the delete-image schema.
type imageRequest struct {
	URL string `json:"url" validate:"required"`
}

// DeleteImage handles DELETE /api/admin/product/{id}/images.
func (c *ProductController) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var in imageRequest
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := c.catalog.RemoveImage(r.Context(), chi.URLParam(r, "id"), in.URL); err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, response.M{"message": "Image removed"})
}

// parseProductFilter reads the optional catalog query parameters.
func parseProductFilter(r *http.Request) (services.ProductFilter, error) {
	q := r.URL.Query()
	filter := services.ProductFilter{
		Gender:   q.Get("gender"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Style:    q.Get("style"),
	}

	if raw := q.Get("onSale"); raw != "" {
		onSale, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("onSale must be true or false")
		}
		filter.OnSale = &onSale
	}
	if raw := q.Get("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("minPrice must be a number")
		}
		filter.MinPrice = &min
	}
	if raw := q.Get("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, fmt.Errorf("maxPrice must be a number")
		}
		filter.MaxPrice = &max
	}

	return filter, nil
}
