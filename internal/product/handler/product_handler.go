package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/cosmassist/platform/internal/middleware"
	"github.com/cosmassist/platform/internal/product"
	"github.com/cosmassist/platform/internal/product/service"
	"github.com/gin-gonic/gin"
)

// ProductServicer defines the catalog operations used by ProductHandler.
type ProductServicer interface {
	List(ctx context.Context, params product.ListParams) ([]product.Product, error)
	Get(ctx context.Context, id int) (*product.Product, error)
	Create(ctx context.Context, req product.CreateProductRequest) (*product.Product, error)
	Update(ctx context.Context, id int, req product.UpdateProductRequest) (*product.Product, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// ProductImporter defines the import operation used by ProductHandler.
type ProductImporter interface {
	Import(ctx context.Context, req service.ImportRequest) ([]product.Product, error)
}

type ProductHandler struct {
	products ProductServicer
	importer ProductImporter
}

func NewProductHandler(products ProductServicer, importer ProductImporter) *ProductHandler {
	return &ProductHandler{products: products, importer: importer}
}

// RegisterRoutes mounts the catalog API. Mutating routes can be wrapped with
// auth middleware by the caller before registration.
func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProduct)
		api.POST("/products", h.CreateProduct)
		api.PUT("/products/:id", h.UpdateProduct)
		api.DELETE("/products/:id", h.DeleteProduct)
		api.POST("/products/import", h.ImportProducts)
		api.GET("/health", h.Health)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		middleware.RespondWithError(c, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "offset must be non-negative")
		return
	}

	sortBy, sortDesc := parseSort(c.DefaultQuery("sort", "created_at:desc"))

	products, err := h.products.List(c.Request.Context(), product.ListParams{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
		SortBy:   sortBy,
		SortDesc: sortDesc,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list products")
		return
	}
	if products == nil {
		products = []product.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondProductError(c, err, "Failed to get product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	p, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IsEmpty() {
		middleware.RespondWithError(c, http.StatusBadRequest, "No fields to update")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		respondProductError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondProductError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) ImportProducts(c *gin.Context) {
	// An empty body runs an import with defaults.
	var req service.ImportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
			middleware.RespondWithValidationError(c, validationErrors)
			return
		}
	}

	products, err := h.importer.Import(c.Request.Context(), req)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadGateway, "Import failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Health(c *gin.Context) {
	count, err := h.products.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "productCount": count})
}

func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "id must be a numeric identifier")
		return 0, false
	}
	return id, true
}

func parseSort(sort string) (string, bool) {
	field, direction, found := strings.Cut(sort, ":")
	if !found {
		return field, false
	}
	return field, strings.EqualFold(direction, "desc")
}

func respondProductError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, product.ErrNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}
	middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
}
