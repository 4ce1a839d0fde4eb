package create_product

import (
	"errors"
	"net/http"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/api/middleware"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные товара"
	msgForbidden          = "создавать товары может только администратор"
)

type Handler struct {
	service   ProductService
	validator RequestValidator
	logger    Logger
}

func NewHandler(service ProductService, validator RequestValidator, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/products
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req CreateProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.logger.Warn("POST /products - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	product, err := h.service.Create(r.Context(), req.ToServiceRequest(session))
	if err != nil {
		switch {
		case errors.Is(err, products.ErrAccessDenied):
			h.logger.Warn("POST /products - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, products.ErrInvalidInput):
			h.logger.Warn("POST /products - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /products - Failed to create product: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /products - Product created: product_id=%s", product.ID)
	handlers.RespondJSON(w, http.StatusCreated, product)
}
