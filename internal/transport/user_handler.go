package transport

import (
	"net/http"

	"gomarket/internal/middleware"
	"gomarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateUserRequest represents the registration request payload
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=customer seller admin"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents the profile update payload. Only username
// and email can change.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginResponse carries the signed token together with the account
type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// UserHandler handles HTTP requests for accounts and the routes nested
// under them (own products, own orders).
type UserHandler struct {
	userService    service.UserService
	catalogService service.CatalogService
	orderService   service.OrderService
	logger         *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, catalogService service.CatalogService, orderService service.OrderService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService:    userService,
		catalogService: catalogService,
		orderService:   orderService,
		logger:         logger,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		// Public routes
		r.Post("/", h.Create)
		r.Post("/login", h.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", h.List)
			r.Get("/me", h.GetOwnProducts)
			r.Get("/orders", h.ListOrders)
			r.Get("/orders/{id}", h.GetOrder)
			r.Get("/check-token", h.CheckToken)
			r.Get("/{id}", h.GetByID)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Create handles account registration
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		h.logger.Error("Registration failed", zap.Error(err))
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("User registered", zap.Int64("user_id", user.ID))
	middleware.RespondWithData(w, http.StatusCreated, user)
}

// Login handles authentication and token issuance
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	token, user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	middleware.RespondWithData(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// List returns all accounts
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, users)
}

// GetByID returns a single account
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, user)
}

// Update changes the acting user's own username/email
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	actingUser, _ := middleware.GetUser(r.Context())

	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), actingUser, id, req.Username, req.Email)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("User updated", zap.Int64("user_id", user.ID))
	middleware.RespondWithData(w, http.StatusOK, user)
}

// Delete soft-deletes the acting user's own account
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actingUser, _ := middleware.GetUser(r.Context())

	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.Deactivate(r.Context(), actingUser, id); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("User deactivated", zap.Int64("user_id", id))
	middleware.RespondWithData(w, http.StatusOK, nil)
}

// CheckToken confirms the bearer token and echoes the acting user
func (h *UserHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	middleware.RespondWithData(w, http.StatusOK, user)
}

// GetOwnProducts returns the acting user's active products
func (h *UserHandler) GetOwnProducts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	products, err := h.catalogService.ListOwnProducts(r.Context(), user)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, products)
}

// ListOrders returns the acting user's orders with their cart contents
func (h *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	orders, err := h.orderService.ListOrders(r.Context(), user)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, orders)
}

// GetOrder returns one of the acting user's orders
func (h *UserHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	id, ok := urlID(r, "id")
	if !ok {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), user, id)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithData(w, http.StatusOK, order)
}
