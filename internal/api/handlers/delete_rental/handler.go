package delete_rental

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
	msgForbidden       = "удалять аренды может только администратор"
	msgCannotDelete    = "удалить можно только возвращенную или отмененную аренду"
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

// Handle DELETE /api/v1/rentals/{rentalId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	rentalID, err := uuid.Parse(mux.Vars(r)["rentalId"])
	if err != nil {
		h.logger.Warn("DELETE /rentals/{id} - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	if err := h.service.Delete(r.Context(), session, rentalID); err != nil {
		switch {
		case errors.Is(err, rentals.ErrAccessDenied):
			h.logger.Warn("DELETE /rentals/{id} - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rentals.ErrRentalNotFound):
			h.logger.Warn("DELETE /rentals/{id} - Rental not found: rental_id=%s", rentalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rentals.ErrCannotDelete):
			h.logger.Warn("DELETE /rentals/{id} - Cannot delete: %v", err)
			handlers.RespondConflict(w, msgCannotDelete)

		default:
			h.logger.Error("DELETE /rentals/{id} - Failed to delete rental: rental_id=%s, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /rentals/{id} - Rental deleted: rental_id=%s", rentalID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
