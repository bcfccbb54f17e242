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

	"github.com/m04kA/QuickCourt-SlotService/internal/api/handlers"
	blockSlotsHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/block_slots"
	checkAvailabilityHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/check_availability"
	deleteOldSlotsHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/delete_old_slots"
	findConflictsHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/find_conflicts"
	generateSlotsHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/generate_slots"
	getCourtSlotsHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/get_court_slots"
	getSlotHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/get_slot"
	getUserNotificationsHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/get_user_notifications"
	markNotificationReadHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/mark_notification_read"
	releaseSlotHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/release_slot"
	reserveSlotHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/reserve_slot"
	unblockSlotHandler "github.com/m04kA/QuickCourt-SlotService/internal/api/handlers/unblock_slot"
	"github.com/m04kA/QuickCourt-SlotService/internal/api/middleware"
	"github.com/m04kA/QuickCourt-SlotService/internal/config"
	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/internal/infra/migrations"
	notificationRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/notification"
	slotRepo "github.com/m04kA/QuickCourt-SlotService/internal/infra/storage/slot"
	"github.com/m04kA/QuickCourt-SlotService/internal/integrations/eventbus"
	venueServiceClient "github.com/m04kA/QuickCourt-SlotService/internal/integrations/venueservice"
	notificationsService "github.com/m04kA/QuickCourt-SlotService/internal/service/notifications"
	slotsService "github.com/m04kA/QuickCourt-SlotService/internal/service/slots"
	blockSlotsUC "github.com/m04kA/QuickCourt-SlotService/internal/usecase/block_slots"
	generateSlotsUC "github.com/m04kA/QuickCourt-SlotService/internal/usecase/generate_slots"
	reserveSlotUC "github.com/m04kA/QuickCourt-SlotService/internal/usecase/reserve_slot"
	"github.com/m04kA/QuickCourt-SlotService/pkg/dbconn"
	"github.com/m04kA/QuickCourt-SlotService/pkg/dbmetrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
	"github.com/m04kA/QuickCourt-SlotService/pkg/metrics"
	"github.com/m04kA/QuickCourt-SlotService/pkg/txmanager"
)

const msgDatabaseUnavailable = "база данных недоступна"

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

	log.Info("Starting QuickCourt SlotService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil коллектор безопасен: методы *metrics.Metrics ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Соединение с БД устанавливается лениво при первом запросе
	// и переустанавливается, если предыдущая попытка не удалась
	dbOptions := []dbconn.Option{dbconn.WithObserver(metricsCollector)}
	if cfg.Metrics.Enabled {
		dbOptions = append(dbOptions, dbconn.WithWrap(func(db *sql.DB) dbmetrics.DBExecutor {
			return dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		}))
	}

	dbCache := dbconn.New(
		dbconn.PostgresOpener(cfg.Database.DSN(), dbconn.PoolOptions{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
			ConnectTimeout:  5 * time.Second,
		}),
		dbOptions...,
	)
	defer dbCache.Close()

	// Миграции применяются при старте, если включены
	if cfg.Slots.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		db, err := dbCache.DB(migrateCtx)
		if err != nil {
			cancel()
			log.Fatal("Failed to connect to database for migrations: %v", err)
		}
		if err := migrations.Up(migrateCtx, db); err != nil {
			cancel()
			log.Fatal("Failed to apply migrations: %v", err)
		}
		cancel()
		log.Info("Database migrations applied (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}

	// Инициализируем интеграционных клиентов
	venueClient := venueServiceClient.NewClient(
		cfg.VenueService.URL,
		time.Duration(cfg.VenueService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (VenueService=%s timeout=%ds)",
		cfg.VenueService.URL, cfg.VenueService.Timeout)

	// Шина событий опциональна, без нее уведомления только сохраняются в БД
	var publisher notificationsService.EventPublisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := eventbus.NewNatsPublisher(cfg.NATS.URL, cfg.NATS.ClientName, log)
		if err != nil {
			log.Warn("NATS unavailable, events disabled: %v", err)
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
			log.Info("NATS publisher connected to %s", cfg.NATS.URL)
		}
	}

	// Инициализируем репозитории и transaction manager
	slotRepository := slotRepo.NewRepository(dbCache)
	notificationRepository := notificationRepo.NewRepository(dbCache)
	txMgr := txmanager.NewTransactionManager(dbCache)

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(notificationRepository, publisher, log)
	slotSvc := slotsService.NewService(
		slotRepository,
		notificationSvc,
		metricsCollector,
		cfg.Slots.RetentionDays,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		venueClient,
		txMgr,
		metricsCollector,
		log,
	)
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		slotRepository,
		notificationSvc,
		txMgr,
		metricsCollector,
		log,
	)
	blockSlotsUseCase := blockSlotsUC.NewUseCase(
		slotRepository,
		venueClient,
		notificationSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getCourtSlots := getCourtSlotsHandler.NewHandler(slotSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(slotSvc, log)
	findConflicts := findConflictsHandler.NewHandler(slotSvc, log)
	getSlot := getSlotHandler.NewHandler(slotSvc, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(slotSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	blockSlots := blockSlotsHandler.NewHandler(blockSlotsUseCase, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotSvc, log)
	deleteOldSlots := deleteOldSlotsHandler.NewHandler(slotSvc, log)
	getUserNotifications := getUserNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Liveness и доступность БД
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := dbCache.Ping(ctx); err != nil {
			log.Warn("GET /health - Database unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDatabaseUnavailable)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь корта, проверка доступности и конфликтов
	api.HandleFunc("/courts/{courtId}/slots", getCourtSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/conflicts", findConflicts.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирование мест ---
	protected.HandleFunc("/slots/{slotId}/reserve", reserveSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}/release", releaseSlot.Handle).Methods(http.MethodPost)

	// --- Уведомления ---
	protected.HandleFunc("/users/{userId}/notifications", getUserNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (администратор или владелец площадки)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth, middleware.RequireRole(domain.RoleAdmin, domain.RoleOwner))

	admin.HandleFunc("/courts/{courtId}/slots/generate", generateSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/courts/{courtId}/slots/block", blockSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/old", deleteOldSlots.Handle).Methods(http.MethodDelete)

	// Публичный просмотр слота регистрируется последним: /slots/old не должен попасть в {slotId}
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
