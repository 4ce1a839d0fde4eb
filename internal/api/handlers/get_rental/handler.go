package get_rental

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/api/middleware"
	"github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals"
)

const (
	msgInvalidRentalID = "некорректный ID аренды"
	msgNotFound        = "аренда не найдена"
	msgForbidden       = "доступ запрещен"
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

// Handle GET /api/v1/rentals/{rentalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	rentalID, err := uuid.Parse(mux.Vars(r)["rentalId"])
	if err != nil {
		h.logger.Warn("GET /rentals/{id} - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	rental, err := h.service.GetByID(r.Context(), session, rentalID)
	if err != nil {
		switch {
		case errors.Is(err, rentals.ErrRentalNotFound):
			h.logger.Warn("GET /rentals/{id} - Rental not found: rental_id=%s", rentalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rentals.ErrAccessDenied):
			h.logger.Warn("GET /rentals/{id} - Access denied: rental_id=%s, user_id=%s", rentalID, session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /rentals/{id} - Failed to get rental: rental_id=%s, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rentals/{id} - Rental retrieved successfully: rental_id=%s", rentalID)
	handlers.RespondJSON(w, http.StatusOK, rental)
}
