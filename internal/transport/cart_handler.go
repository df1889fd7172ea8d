package transport

import (
	"net/http"

	"gomarket/internal/middleware"
	"gomarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddProductRequest represents the add-to-cart payload
type AddProductRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartRequest represents the line-item update payload. A new quantity
// of zero removes the item from the cart.
type UpdateCartRequest struct {
	ProductID   int64 `json:"product_id" validate:"required"`
	NewQuantity int   `json:"new_quantity" validate:"gte=0"`
}

// CartHandler handles HTTP requests for the cart and its purchase
type CartHandler struct {
	cartService  service.CartService
	orderService service.OrderService
	logger       *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, orderService service.OrderService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all cart routes. Every cart operation requires
// authentication.
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/add-product", h.AddProduct)
		r.Patch("/update-cart", h.UpdateProduct)
		r.Post("/purchase", h.Purchase)
		r.Delete("/{productId}", h.RemoveProduct)
	})
}

// AddProduct puts a product into the acting user's cart
func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var req AddProductRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	item, err := h.cartService.AddItem(r.Context(), user, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product added to cart",
		zap.Int64("user_id", user.ID),
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	middleware.RespondWithData(w, http.StatusOK, item)
}

// UpdateProduct changes the quantity of a line item in the acting user's cart
func (h *CartHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var req UpdateCartRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	item, err := h.cartService.UpdateItem(r.Context(), user, req.ProductID, req.NewQuantity)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, item)
}

// RemoveProduct drops a line item from the acting user's cart
func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	productID, ok := urlID(r, "productId")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.cartService.RemoveItem(r.Context(), user, productID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, nil)
}

// Purchase settles the acting user's active cart into an order
func (h *CartHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	order, err := h.orderService.Purchase(r.Context(), user)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Cart purchased",
		zap.Int64("user_id", user.ID),
		zap.Int64("order_id", order.ID),
		zap.String("total_price", order.TotalPrice.String()),
	)
	middleware.RespondWithData(w, http.StatusOK, order)
}
