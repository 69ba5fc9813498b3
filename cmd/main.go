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

	confirmBookingHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/create_booking"
	getArtistBookingsHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/get_artist_bookings"
	getArtistSettingsHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/get_artist_settings"
	getAvailableSlotsHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/get_client_bookings"
	paymentWebhookHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/payment_webhook"
	rescheduleBookingHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/reschedule_booking"
	resolveBookingHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/resolve_booking"
	updateArtistSettingsHandler "github.com/m04kA/INK-BookingService/internal/api/handlers/update_artist_settings"
	"github.com/m04kA/INK-BookingService/internal/api/middleware"
	"github.com/m04kA/INK-BookingService/internal/config"
	"github.com/m04kA/INK-BookingService/internal/domain"
	"github.com/m04kA/INK-BookingService/internal/infra/cache/slotcache"
	bookingRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/INK-BookingService/internal/infra/storage/config"
	payprocClient "github.com/m04kA/INK-BookingService/internal/integrations/payproc"
	bookingsService "github.com/m04kA/INK-BookingService/internal/service/bookings"
	configService "github.com/m04kA/INK-BookingService/internal/service/config"
	createBookingUC "github.com/m04kA/INK-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/INK-BookingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/INK-BookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/INK-BookingService/pkg/dbmetrics"
	"github.com/m04kA/INK-BookingService/pkg/logger"
	"github.com/m04kA/INK-BookingService/pkg/metrics"
	"github.com/m04kA/INK-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/INK-BookingService/pkg/txmanager"
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

	log.Info("Starting INK-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Кеш слотов: Redis или заглушка
	type SlotCache interface {
		Get(ctx context.Context, artistID int64, from, to string) ([]domain.AvailabilitySlot, bool)
		Set(ctx context.Context, artistID int64, from, to string, slots []domain.AvailabilitySlot)
		Invalidate(ctx context.Context, artistID int64)
	}
	var slotCache SlotCache

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		slotCache = slotcache.New(redisClient, time.Duration(cfg.Redis.SlotCacheTTL)*time.Second, log)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotCacheTTL)
	} else {
		slotCache = slotcache.NewNoop()
		log.Info("Slot cache disabled, availability is computed per request")
	}

	// Клиент платёжного процессора
	payClient := payprocClient.NewClient(
		cfg.PayProc.URL,
		cfg.PayProc.APIKey,
		time.Duration(cfg.PayProc.Timeout)*time.Second,
		log,
	)
	log.Info("Payment processor client initialized (url=%s, timeout=%ds)", cfg.PayProc.URL, cfg.PayProc.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, slotCache, log)
	configSvc := configService.NewService(settingsRepository, slotCache, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		payClient,
		slotCache,
		txMgr,
		log,
		cfg.PayProc.Currency,
		cfg.PayProc.SuccessURL,
		cfg.PayProc.CancelURL,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		slotCache,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.New(
		bookingRepository,
		slotCache,
		txMgr,
		&rescheduleBookingUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	resolveBooking := resolveBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getArtistBookings := getArtistBookingsHandler.NewHandler(bookingSvc, log)
	getArtistSettings := getArtistSettingsHandler.NewHandler(configSvc, log)
	updateArtistSettings := updateArtistSettingsHandler.NewHandler(configSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(bookingSvc, cfg.PayProc.WebhookSecret, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на диапазон дат
	api.HandleFunc("/artists/{artistId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичные настройки мастера (расписание, депозит)
	api.HandleFunc("/artists/{artistId}/settings",
		getArtistSettings.Handle).Methods(http.MethodGet)

	// Платёжные события процессора (авторизация через webhook secret)
	api.HandleFunc("/payments/webhook",
		paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования (клиентская заявка или ручная запись мастера)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение заявки мастером
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Перевод в терминальный статус (rejected / completed / cancelled / no_show)
	protected.HandleFunc("/bookings/{bookingId}/resolve", resolveBooking.Handle).Methods(http.MethodPatch)

	// Перенос бронирования на новый интервал
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет мастера ---
	// Календарь мастера с фильтрацией
	protected.HandleFunc("/artists/{artistId}/bookings", getArtistBookings.Handle).Methods(http.MethodGet)

	// Обновление настроек мастера
	protected.HandleFunc("/artists/{artistId}/settings", updateArtistSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
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
