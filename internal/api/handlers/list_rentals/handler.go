package list_rentals

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/api/middleware"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals/models"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/types"
)

const (
	msgInvalidProductID = "некорректный ID товара"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтрации"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service RentalService
	logger  Logger
}

func NewHandler(service RentalService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rentals?status=...&productId=...&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	query := r.URL.Query()
	req := &models.ListRentalsRequest{Session: session}

	if s := query.Get("productId"); s != "" {
		productID, err := uuid.Parse(s)
		if err != nil {
			h.logger.Warn("GET /rentals - Invalid product ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProductID)
			return
		}
		req.ProductID = &productID
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	for name, dst := range map[string]**types.Date{"from": &req.From, "to": &req.To} {
		s := query.Get(name)
		if s == "" {
			continue
		}
		d, err := types.ParseDate(s)
		if err != nil {
			h.logger.Warn("GET /rentals - Invalid %s: %v", name, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		*dst = &d
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrAccessDenied):
			h.logger.Warn("GET /rentals - Access denied: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rentals.ErrInvalidInput):
			h.logger.Warn("GET /rentals - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /rentals - Failed to list rentals: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rentals - Rentals retrieved successfully: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
