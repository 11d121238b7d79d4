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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RealtyService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/create_booking"
	createPropertyHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/create_property"
	deletePropertyHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/delete_property"
	getAgentBookingsHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_agent_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_booking"
	getFavoriteStatusHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_favorite_status"
	getFavoritesHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_favorites"
	getLatestPropertiesHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_latest_properties"
	getPropertyHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_property"
	getUserBookingsHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/get_user_bookings"
	searchPropertiesHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/search_properties"
	toggleFavoriteHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/toggle_favorite"
	updateBookingStatusHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/update_booking_status"
	updatePropertyHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/update_property"
	viewFileHandler "github.com/m04kA/SMC-RealtyService/internal/api/handlers/view_file"
	"github.com/m04kA/SMC-RealtyService/internal/api/middleware"
	"github.com/m04kA/SMC-RealtyService/internal/config"
	"github.com/m04kA/SMC-RealtyService/internal/infra/cache/propertycache"
	"github.com/m04kA/SMC-RealtyService/internal/infra/filestorage/gridfs"
	bookingRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/booking"
	favoriteRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/favorite"
	propertyRepo "github.com/m04kA/SMC-RealtyService/internal/infra/storage/property"
	bookingsService "github.com/m04kA/SMC-RealtyService/internal/service/bookings"
	favoritesService "github.com/m04kA/SMC-RealtyService/internal/service/favorites"
	propertiesService "github.com/m04kA/SMC-RealtyService/internal/service/properties"
	checkAvailabilityUC "github.com/m04kA/SMC-RealtyService/internal/usecase/check_availability"
	createBookingUC "github.com/m04kA/SMC-RealtyService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-RealtyService/internal/usecase/get_available_slots"
	searchPropertiesUC "github.com/m04kA/SMC-RealtyService/internal/usecase/search_properties"
	toggleFavoriteUC "github.com/m04kA/SMC-RealtyService/internal/usecase/toggle_favorite"
	"github.com/m04kA/SMC-RealtyService/migrations"
	"github.com/m04kA/SMC-RealtyService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RealtyService/pkg/jwtauth"
	"github.com/m04kA/SMC-RealtyService/pkg/logger"
	"github.com/m04kA/SMC-RealtyService/pkg/metrics"
	"github.com/m04kA/SMC-RealtyService/pkg/txmanager"
)

// searchCache общий интерфейс redis кеша и заглушки
type searchCache interface {
	searchPropertiesUC.SearchCache
	propertiesService.SearchCache
}

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

	log.Info("Starting SMC-RealtyService...")

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if err := migrations.Apply(context.Background(), db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Без коллектора обертка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	propertyRepository := propertyRepo.NewRepository(wrappedDB)
	favoriteRepository := favoriteRepo.NewRepository(wrappedDB)

	// Файловое хранилище
	mongoClient, err := gridfs.Connect(context.Background(), cfg.Storage.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("Failed to disconnect from MongoDB: %v", err)
		}
	}()

	fileStorage, err := gridfs.New(mongoClient.Database(cfg.Storage.Database), cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal("Failed to initialize file storage: %v", err)
	}
	log.Info("File storage initialized (db=%s, bucket=%s)", cfg.Storage.Database, cfg.Storage.Bucket)

	// Кеш поиска
	var cache searchCache = propertycache.Disabled{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, search cache disabled: %v", err)
		} else {
			cache = propertycache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, metricsCollector)
			log.Info("Search cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
		}
	}

	// JWT
	tokens, err := jwtauth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	if err != nil {
		log.Fatal("Failed to initialize JWT manager: %v", err)
	}

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, propertyRepository, fileStorage, log)
	propertySvc := propertiesService.NewService(propertyRepository, fileStorage, cache, log, cfg.Storage.UploadWorkers)
	favoriteSvc := favoritesService.NewService(favoriteRepository, propertyRepository, fileStorage, log)

	// Use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		propertyRepository,
		checkAvailabilityUseCase,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, propertyRepository, log)
	searchPropertiesUseCase := searchPropertiesUC.NewUseCase(propertyRepository, cache, log)
	toggleFavoriteUseCase := toggleFavoriteUC.NewUseCase(favoriteRepository, propertyRepository, log)

	// Handlers
	maxUploadBytes := int64(cfg.Storage.MaxUploadSizeMB) << 20

	searchProperties := searchPropertiesHandler.NewHandler(searchPropertiesUseCase, fileStorage, log)
	getLatestProperties := getLatestPropertiesHandler.NewHandler(propertySvc, log)
	getProperty := getPropertyHandler.NewHandler(propertySvc, log)
	createProperty := createPropertyHandler.NewHandler(propertySvc, maxUploadBytes, log)
	updateProperty := updatePropertyHandler.NewHandler(propertySvc, maxUploadBytes, log)
	deleteProperty := deletePropertyHandler.NewHandler(propertySvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	viewFile := viewFileHandler.NewHandler(fileStorage, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAgentBookings := getAgentBookingsHandler.NewHandler(bookingSvc, log)
	toggleFavorite := toggleFavoriteHandler.NewHandler(toggleFavoriteUseCase, log)
	getFavorites := getFavoritesHandler.NewHandler(favoriteSvc, log)
	getFavoriteStatus := getFavoriteStatusHandler.NewHandler(favoriteSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// /properties/latest регистрируется раньше /properties/{propertyId}
	api.HandleFunc("/properties", searchProperties.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/latest", getLatestProperties.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}", getProperty.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/files/{fileId}/view", viewFile.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, log))

	// --- Объекты (для агентов) ---
	protected.HandleFunc("/properties", createProperty.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/properties/{propertyId}", updateProperty.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/properties/{propertyId}", deleteProperty.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/agents/me/bookings", getAgentBookings.Handle).Methods(http.MethodGet)

	// --- Избранное ---
	protected.HandleFunc("/favorites/{propertyId}/toggle", toggleFavorite.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/favorites/{propertyId}", getFavoriteStatus.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/favorites", getFavorites.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
