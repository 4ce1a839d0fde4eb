package get_blocked_dates

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	getBlockedDates "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/get_blocked_dates"
)

const (
	msgInvalidProductID = "некорректный ID товара"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWindow    = "дата 'to' раньше даты 'from'"
	msgProductNotFound  = "товар не найден"
)

type Handler struct {
	useCase GetBlockedDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetBlockedDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/products/{productId}/blocked-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		h.logger.Warn("GET /products/{id}/blocked-dates - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	query := r.URL.Query()
	from, err := parseOptionalDate(query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /products/{id}/blocked-dates - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := parseOptionalDate(query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /products/{id}/blocked-dates - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBlockedDates.Request{
		ProductID: productID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBlockedDates.ErrProductNotFound):
			h.logger.Warn("GET /products/{id}/blocked-dates - Product not found: product_id=%s", productID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, getBlockedDates.ErrInvalidInput):
			h.logger.Warn("GET /products/{id}/blocked-dates - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /products/{id}/blocked-dates - Failed to get blocked dates: product_id=%s, error=%v",
				productID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /products/{id}/blocked-dates - Blocked dates retrieved: product_id=%s, count=%d",
		productID, len(result.BlockedDates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
