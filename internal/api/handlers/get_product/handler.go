package get_product

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/products"
)

const (
	msgInvalidProductID = "некорректный ID товара"
	msgNotFound         = "товар не найден"
)

type Handler struct {
	service ProductService
	logger  Logger
}

func NewHandler(service ProductService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("GET /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	product, err := h.service.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, products.ErrProductNotFound) {
			h.logger.Warn("GET /products/{id} - Product not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /products/{id} - Failed to get product: product_id=%s, error=%v", productID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, product)
}
