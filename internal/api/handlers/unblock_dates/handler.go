package unblock_dates

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/api/middleware"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products"
)

const (
	msgInvalidProductID   = "некорректный ID товара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный список дат, ожидается YYYY-MM-DD"
	msgNotFound           = "товар не найден"
	msgForbidden          = "снимать блокировки может только администратор"
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

// Handle DELETE /api/v1/products/{productId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("DELETE /products/{id}/blocks - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req DatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /products/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.logger.Warn("DELETE /products/{id}/blocks - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	serviceReq, err := req.ToServiceRequest(session, productID)
	if err != nil {
		h.logger.Warn("DELETE /products/{id}/blocks - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.service.UnblockDates(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, products.ErrAccessDenied):
			h.logger.Warn("DELETE /products/{id}/blocks - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, products.ErrProductNotFound):
			h.logger.Warn("DELETE /products/{id}/blocks - Product not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, products.ErrInvalidInput):
			h.logger.Warn("DELETE /products/{id}/blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		default:
			h.logger.Error("DELETE /products/{id}/blocks - Failed to unblock dates: product_id=%s, error=%v", productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /products/{id}/blocks - Dates unblocked: product_id=%s, count=%d", productID, result.Affected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
