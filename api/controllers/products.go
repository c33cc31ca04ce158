package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thitipat-dev/petshop-backend/api/responses"
	"github.com/thitipat-dev/petshop-backend/api/validators"
	"github.com/thitipat-dev/petshop-backend/internal/pricing"
	"github.com/thitipat-dev/petshop-backend/internal/products"
	"github.com/thitipat-dev/petshop-backend/pkg/db/models"
	pkgerrors "github.com/thitipat-dev/petshop-backend/pkg/errors"
	"github.com/thitipat-dev/petshop-backend/pkg/logger"
)

// ProductList returns active catalog entries, optionally by category.
func ProductList(repo products.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product repository unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category := strings.TrimSpace(r.URL.Query().Get("category"))

		records, err := repo.ListActive(r.Context(), category, limit, offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products"))
			return
		}

		out := make([]productResponse, 0, len(records))
		for i := range records {
			out = append(out, newProductResponse(&records[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// ProductGet returns one catalog entry.
func ProductGet(repo products.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product repository unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product"))
			return
		}
		responses.WriteSuccess(w, newProductResponse(product))
	}
}

type productResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	SalePrice       *float64  `json:"sale_price,omitempty"`
	DiscountPercent *float64  `json:"discount_percent,omitempty"`
	EffectivePrice  float64   `json:"effective_price"`
	Stock           int       `json:"stock"`
	IsAnimal        bool      `json:"is_animal"`
	ImageURL        *string   `json:"image_url,omitempty"`
}

func newProductResponse(product *models.Product) productResponse {
	effective := pricing.EffectiveUnitPrice(pricing.CartLine{
		UnitPrice:       product.Price,
		SalePrice:       product.SalePrice,
		DiscountPercent: product.DiscountPercent,
		Quantity:        1,
	})
	return productResponse{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Category:        product.Category,
		Price:           product.Price,
		SalePrice:       product.SalePrice,
		DiscountPercent: product.DiscountPercent,
		EffectivePrice:  effective,
		Stock:           product.Stock,
		IsAnimal:        pricing.IsAnimalCategory(product.Category),
		ImageURL:        product.ImageURL,
	}
}
