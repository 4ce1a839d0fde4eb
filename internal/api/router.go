// Package api маршрутизация HTTP API
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	blockDatesHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/block_dates"
	createBookingHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/create_booking"
	createProductHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/create_product"
	deleteRentalHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/delete_rental"
	getBlockedDatesHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/get_blocked_dates"
	getProductHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/get_product"
	getRentalHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/get_rental"
	getUserRentalsHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/get_user_rentals"
	listRentalsHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/list_rentals"
	unblockDatesHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/unblock_dates"
	updateRentalStatusHandler "github.com/nguyendangquyen/MAP-DRESS/internal/api/handlers/update_rental_status"
	"github.com/nguyendangquyen/MAP-DRESS/internal/api/middleware"
)

// Handlers обработчики всех маршрутов
type Handlers struct {
	GetBlockedDates    *getBlockedDatesHandler.Handler
	CreateBooking      *createBookingHandler.Handler
	UpdateRentalStatus *updateRentalStatusHandler.Handler
	GetRental          *getRentalHandler.Handler
	ListRentals        *listRentalsHandler.Handler
	GetUserRentals     *getUserRentalsHandler.Handler
	DeleteRental       *deleteRentalHandler.Handler
	GetProduct         *getProductHandler.Handler
	CreateProduct      *createProductHandler.Handler
	BlockDates         *blockDatesHandler.Handler
	UnblockDates       *unblockDatesHandler.Handler
}

// Options общие зависимости роутера. Metrics и MetricsHandler опциональны.
type Options struct {
	Verifier       middleware.TokenVerifier
	Logger         middleware.Logger
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter собирает роутер: публичные маршруты каталога и бронирования,
// защищенные JWT маршруты аренд и администрирования
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Recover(opts.Logger), middleware.RequestLogger(opts.Logger))

	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые дни товара для календаря
	api.HandleFunc("/products/{productId}/blocked-dates", h.GetBlockedDates.Handle).Methods(http.MethodGet)

	// Карточка товара
	api.HandleFunc("/products/{productId}", h.GetProduct.Handle).Methods(http.MethodGet)

	// Бронирование, в том числе гостевое
	api.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(opts.Verifier, opts.Logger))

	// --- Аренды ---
	protected.HandleFunc("/rentals", h.ListRentals.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{rentalId}", h.GetRental.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{rentalId}/status", h.UpdateRentalStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/rentals/{rentalId}", h.DeleteRental.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/rentals", h.GetUserRentals.Handle).Methods(http.MethodGet)

	// --- Каталог (администратор) ---
	protected.HandleFunc("/products", h.CreateProduct.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/products/{productId}/blocks", h.BlockDates.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/products/{productId}/blocks", h.UnblockDates.Handle).Methods(http.MethodDelete)

	return r
}
