package transport

import (
	"net/http"

	"gomarket/internal/middleware"
	"gomarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product listing payload
type CreateProductRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	CategoryID  int64           `json:"category_id" validate:"required"`
}

// UpdateProductRequest represents the product update payload. Absent fields
// are left unchanged.
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity" validate:"omitempty,gte=0"`
}

// CategoryRequest represents the category create/rename payload
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProductHandler handles HTTP requests for the catalog
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/categories", h.ListCategories)
		r.Get("/{id}", h.GetByID)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Create)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/categories", h.CreateCategory)
			r.Patch("/categories/{id}", h.RenameCategory)
		})
	})
}

// List returns all active products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, products)
}

// GetByID returns a single active product
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, product)
}

// Create lists a new product owned by the acting user
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var req CreateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if !req.Price.IsPositive() {
		middleware.RespondWithError(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), user, req.Title, req.Description, req.Price, req.Quantity, req.CategoryID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("user_id", user.ID),
	)
	middleware.RespondWithData(w, http.StatusCreated, product)
}

// Update changes an active product owned by the acting user
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req UpdateProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Price != nil && !req.Price.IsPositive() {
		middleware.RespondWithError(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), user, id, service.ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product updated", zap.Int64("product_id", product.ID))
	middleware.RespondWithData(w, http.StatusOK, product)
}

// Delete soft-deletes an active product owned by the acting user
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), user, id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithData(w, http.StatusOK, nil)
}

// ListCategories returns all active categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, categories)
}

// CreateCategory creates a new category
func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID))
	middleware.RespondWithData(w, http.StatusCreated, category)
}

// RenameCategory renames an active category
func (h *ProductHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category, err := h.catalogService.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, category)
}
