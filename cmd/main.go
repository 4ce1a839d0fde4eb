package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nguyendangquyen/MAP-DRESS/internal/api"
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
	"github.com/nguyendangquyen/MAP-DRESS/internal/config"
	availabilityRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/availability"
	productRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/product"
	rentalRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/rental"
	userRepo "github.com/nguyendangquyen/MAP-DRESS/internal/infra/storage/user"
	productsService "github.com/nguyendangquyen/MAP-DRESS/internal/service/products"
	rentalsService "github.com/nguyendangquyen/MAP-DRESS/internal/service/rentals"
	createBookingUC "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/create_booking"
	getBlockedDatesUC "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/get_blocked_dates"
	updateRentalStatusUC "github.com/nguyendangquyen/MAP-DRESS/internal/usecase/update_rental_status"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/authtoken"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/dbmetrics"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/logger"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/metrics"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/txmanager"
	"github.com/nguyendangquyen/MAP-DRESS/pkg/validation"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MAP-DRESS rental service...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (если включены). *metrics.Metrics безопасен при nil.
	var (
		metricsCollector *metrics.Metrics
		queryRecorder    dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		queryRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, queryRecorder, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	products := productRepo.NewRepository(wrappedDB)
	users := userRepo.NewRepository(wrappedDB)
	rentals := rentalRepo.NewRepository(wrappedDB)
	availability := availabilityRepo.NewRepository(wrappedDB)

	// Сервисы
	rentalSvc := rentalsService.NewService(rentals, availability, txManager, log)
	productSvc := productsService.NewService(products, availability, rentals, txManager, log)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		products,
		users,
		rentals,
		availability,
		txManager,
		metricsCollector,
		createBookingUC.Policy{
			DepositPercent: cfg.Booking.DepositPercent,
			PriceTolerance: cfg.Booking.Tolerance(),
		},
		log,
	)
	getBlockedDatesUseCase := getBlockedDatesUC.NewUseCase(products, availability, rentals, log)
	updateRentalStatusUseCase := updateRentalStatusUC.NewUseCase(rentals, availability, txManager, metricsCollector, log)

	// Handlers
	v := validation.New()
	handlers := api.Handlers{
		GetBlockedDates:    getBlockedDatesHandler.NewHandler(getBlockedDatesUseCase, log),
		CreateBooking:      createBookingHandler.NewHandler(createBookingUseCase, v, log),
		UpdateRentalStatus: updateRentalStatusHandler.NewHandler(updateRentalStatusUseCase, log),
		GetRental:          getRentalHandler.NewHandler(rentalSvc, log),
		ListRentals:        listRentalsHandler.NewHandler(rentalSvc, log),
		GetUserRentals:     getUserRentalsHandler.NewHandler(rentalSvc, log),
		DeleteRental:       deleteRentalHandler.NewHandler(rentalSvc, log),
		GetProduct:         getProductHandler.NewHandler(productSvc, log),
		CreateProduct:      createProductHandler.NewHandler(productSvc, v, log),
		BlockDates:         blockDatesHandler.NewHandler(productSvc, v, log),
		UnblockDates:       unblockDatesHandler.NewHandler(productSvc, v, log),
	}

	opts := api.Options{
		Verifier: authtoken.NewManager(
			cfg.Auth.JWTSecret,
			cfg.Auth.Issuer,
			time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		),
		Logger: log,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metricsCollector
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handlers, opts),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики пула
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
