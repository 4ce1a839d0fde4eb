package update_rental_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	"github.com/nguyendangquyen/MAP-DRESS/internal/api/middleware"
	updateRentalStatus "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/update_rental_status"
)

const (
	msgInvalidRentalID    = "некорректный ID аренды"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус аренды"
	msgNotFound           = "аренда не найдена"
	msgForbidden          = "менять статус может только администратор"
	msgInvalidTransition  = "недопустимый переход статуса"
	msgConcurrentUpdate   = "аренда была изменена, повторите попытку"
)

type Handler struct {
	useCase UpdateRentalStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateRentalStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rentals/{rentalId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	rentalID, err := uuid.Parse(mux.Vars(r)["rentalId"])
	if err != nil {
		h.logger.Warn("PATCH /rentals/{id}/status - Invalid rental ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRentalID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rentals/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateRentalStatus.Request{
		Session:  session,
		RentalID: rentalID,
		Status:   req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateRentalStatus.ErrForbidden):
			h.logger.Warn("PATCH /rentals/{id}/status - Forbidden: user_id=%s", session.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateRentalStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /rentals/{id}/status - Invalid status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateRentalStatus.ErrRentalNotFound):
			h.logger.Warn("PATCH /rentals/{id}/status - Rental not found: rental_id=%s", rentalID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateRentalStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /rentals/{id}/status - %v", err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, updateRentalStatus.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /rentals/{id}/status - Concurrent update: rental_id=%s", rentalID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /rentals/{id}/status - Failed to update status: rental_id=%s, error=%v", rentalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /rentals/{id}/status - Status updated: rental_id=%s, %s -> %s",
		rentalID, result.PreviousStatus, result.Rental.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
