package create_booking

import (
	"errors"
	"net/http"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers"
	createBooking "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные данные бронирования"
	msgProductNotFound    = "товар не найден"
	msgProductUnavailable = "товар сейчас недоступен для аренды"
	msgDateInPast         = "нельзя бронировать прошедшие даты"
	msgDatesNotAvailable  = "выбранные даты уже заняты"
	msgPriceMismatch      = "сумма не совпадает с ценой товара, обновите страницу"
	msgTotalDaysMismatch  = "количество дней не совпадает с выбранными датами"
	msgConcurrentRequest  = "запрос выполняется параллельно, повторите попытку"
)

type Handler struct {
	useCase   CreateBookingUseCase
	validator RequestValidator
	logger    Logger
}

func NewHandler(useCase CreateBookingUseCase, validator RequestValidator, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		validator: validator,
		logger:    logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgValidationFailed)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDatesNotAvailable):
			h.logger.Warn("POST /bookings - Dates not available: product_id=%s, error=%v", req.ProductID, err)
			handlers.RespondConflict(w, msgDatesNotAvailable)

		case errors.Is(err, createBooking.ErrConcurrentRequest):
			h.logger.Warn("POST /bookings - Concurrent request: product_id=%s", req.ProductID)
			handlers.RespondConflict(w, msgConcurrentRequest)

		case errors.Is(err, createBooking.ErrProductNotFound):
			h.logger.Warn("POST /bookings - Product not found: product_id=%s", req.ProductID)
			handlers.RespondNotFound(w, msgProductNotFound)

		case errors.Is(err, createBooking.ErrProductUnavailable):
			h.logger.Warn("POST /bookings - Product unavailable: product_id=%s", req.ProductID)
			handlers.RespondConflict(w, msgProductUnavailable)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: product_id=%s, error=%v", req.ProductID, err)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrPriceMismatch):
			h.logger.Warn("POST /bookings - Price mismatch: product_id=%s, error=%v", req.ProductID, err)
			handlers.RespondBadRequest(w, msgPriceMismatch)

		case errors.Is(err, createBooking.ErrTotalDaysMismatch):
			h.logger.Warn("POST /bookings - Total days mismatch: product_id=%s, error=%v", req.ProductID, err)
			handlers.RespondBadRequest(w, msgTotalDaysMismatch)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: product_id=%s, error=%v", req.ProductID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: rental_id=%s, user_id=%s, product_id=%s",
		result.ID, result.UserID, result.ProductID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
