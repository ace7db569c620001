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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignManagerHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/assign_manager"
	cancelBookingHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/create_booking"
	createStationHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/create_station"
	createUserHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/create_user"
	getAvailableSlotsHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/get_available_slots"
	getOperatorBookingsHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/get_operator_bookings"
	getStationBookingsHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/get_station_bookings"
	getStationsHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/get_stations"
	rescheduleBookingHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/reschedule_booking"
	updateStationHandler "github.com/dkurganov/BSS-BookingService/internal/api/handlers/update_station"
	"github.com/dkurganov/BSS-BookingService/internal/api/middleware"
	"github.com/dkurganov/BSS-BookingService/internal/config"
	"github.com/dkurganov/BSS-BookingService/internal/domain"
	bookingRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/station"
	userRepo "github.com/dkurganov/BSS-BookingService/internal/infra/storage/user"
	bookingsService "github.com/dkurganov/BSS-BookingService/internal/service/bookings"
	stationsService "github.com/dkurganov/BSS-BookingService/internal/service/stations"
	usersService "github.com/dkurganov/BSS-BookingService/internal/service/users"
	createBookingUC "github.com/dkurganov/BSS-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/dkurganov/BSS-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/dkurganov/BSS-BookingService/internal/usecase/reschedule_booking"
	"github.com/dkurganov/BSS-BookingService/pkg/dbmetrics"
	"github.com/dkurganov/BSS-BookingService/pkg/logger"
	"github.com/dkurganov/BSS-BookingService/pkg/metrics"
	"github.com/dkurganov/BSS-BookingService/pkg/simpletxmanager"
	"github.com/dkurganov/BSS-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting BSS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		stationRepository *stationRepo.Repository
		userRepository    *userRepo.Repository
	)

	// Интерфейс transaction manager, общий для двух реализаций
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		stationRepository = stationRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		stationRepository = stationRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	windowHours := cfg.Booking.WindowHours
	cancelLeadTime := time.Duration(cfg.Booking.CancelLeadTimeMinutes) * time.Minute

	// Инициализируем сервисы
	bookingSvc := bookingsService.New(
		bookingRepository,
		stationRepository,
		&bookingsService.RealTimeProvider{},
		log,
		cancelLeadTime,
	)
	stationSvc := stationsService.New(stationRepository, userRepository, log)
	userSvc := usersService.New(userRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		txMgr,
		windowHours,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		stationRepository,
		windowHours,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		stationRepository,
		txMgr,
		windowHours,
		cancelLeadTime,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getOperatorBookings := getOperatorBookingsHandler.NewHandler(bookingSvc, log)
	getStationBookings := getStationBookingsHandler.NewHandler(bookingSvc, log)
	getStations := getStationsHandler.NewHandler(stationSvc, log)
	createStation := createStationHandler.NewHandler(stationSvc, log)
	updateStation := updateStationHandler.NewHandler(stationSvc, log)
	assignManager := assignManagerHandler.NewHandler(stationSvc, log)
	createUser := createUserHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health endpoint (публичный)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status":"unhealthy"}`)
			return
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	}).Methods(http.MethodGet)

	// Все API маршруты требуют аутентификации по X-User-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	auth := middleware.NewAuth(userRepository, log)
	api.Use(auth.Middleware)

	// --- Станции и слоты (любая роль) ---
	api.HandleFunc("/stations", getStations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id:[0-9]+}", getStations.HandleByID).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id:[0-9]+}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования (операторы) ---
	operator := api.PathPrefix("").Subrouter()
	operator.Use(middleware.RequireRole(domain.RoleOperator))
	operator.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/my", getOperatorBookings.Handle).Methods(http.MethodGet)
	operator.HandleFunc("/bookings/{id:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	operator.HandleFunc("/bookings/{id:[0-9]+}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// --- Операции станции (менеджеры) ---
	manager := api.PathPrefix("").Subrouter()
	manager.Use(middleware.RequireRole(domain.RoleManager))
	manager.HandleFunc("/bookings/{id:[0-9]+}/complete", completeBooking.Handle).Methods(http.MethodPost)
	manager.HandleFunc("/stations/{id:[0-9]+}/bookings", getStationBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/stations", createStation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/stations/{id:[0-9]+}", updateStation.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/stations/{id:[0-9]+}/managers", assignManager.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/stations/{id:[0-9]+}/managers/{managerId:[0-9]+}", assignManager.HandleUnassign).Methods(http.MethodDelete)
	admin.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/users", createUser.HandleList).Methods(http.MethodGet)

	// Фоновый перевод просроченных бронирований в NO_SHOW
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		interval := time.Duration(cfg.Booking.SweepIntervalSeconds) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("No-show sweeper started, interval=%s", interval)
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				swept, err := bookingSvc.SweepExpiredNoShows(sweepCtx)
				if err != nil {
					log.Error("No-show sweep failed: %v", err)
					continue
				}
				if swept > 0 && metricsCollector != nil {
					metricsCollector.NoShowsSweptTotal.Add(float64(swept))
				}
			}
		}
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	stopSweep()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
