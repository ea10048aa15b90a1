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
	"github.com/rs/cors"

	addAppointmentServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/add_appointment_service"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/complete_appointment"
	createTimeBlockHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_time_block"
	deleteTimeBlockHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_time_block"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAppointmentCommissionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment_commission"
	getCommissionReportHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_commission_report"
	getCommissionRulesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_commission_rules"
	getDayCalendarHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_day_calendar"
	getFeeScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_fee_schedule"
	listTimeBlocksHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_time_blocks"
	previewCommissionHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/preview_commission"
	removeAppointmentServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/remove_appointment_service"
	updateCommissionRulesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_commission_rules"
	updateFeeScheduleHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_fee_schedule"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	feeCache "github.com/m04kA/SMC-SalonService/internal/infra/cache/feeschedule"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	commissionRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/commission"
	feeScheduleRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/feeschedule"
	professionalRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/professional"
	timeBlockRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/timeblock"
	"github.com/m04kA/SMC-SalonService/internal/integrations/events"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	commissionService "github.com/m04kA/SMC-SalonService/internal/service/commission"
	feeScheduleService "github.com/m04kA/SMC-SalonService/internal/service/feeschedule"
	timeBlocksService "github.com/m04kA/SMC-SalonService/internal/service/timeblocks"
	completeAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/complete_appointment"
	getDayCalendarUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_day_calendar"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// publisher событийный паблишер с освобождением ресурсов
type publisher interface {
	completeAppointmentUC.EventPublisher
	Close() error
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.App.Timezone, err)
	}

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

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	professionalRepository := professionalRepo.NewRepository(wrappedDB)
	ruleRepository := commissionRepo.NewRuleRepository(wrappedDB)
	entryRepository := commissionRepo.NewEntryRepository(wrappedDB)
	feeScheduleRepository := feeScheduleRepo.NewRepository(wrappedDB)
	timeBlockRepository := timeBlockRepo.NewRepository(wrappedDB, log)

	// Кэш расписания сборов
	fees, closeCache, err := newFeeScheduleCache(cfg.Cache, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize fee schedule cache: %v", err)
	}
	defer closeCache()
	log.Info("Fee schedule cache initialized (driver=%s, ttl=%ds)", cfg.Cache.Driver, cfg.Cache.TTL)

	// Публикация событий о завершении записей
	eventPublisher, err := newPublisher(cfg.Events, log)
	if err != nil {
		log.Fatal("Failed to initialize event publisher: %v", err)
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			log.Warn("Failed to close event publisher: %v", err)
		}
	}()
	log.Info("Event publisher initialized (driver=%s)", cfg.Events.Driver)

	// Инициализируем сервисы
	feeScheduleSvc := feeScheduleService.NewService(
		feeScheduleRepository,
		fees,
		metricsCollector,
		log,
	)
	commissionSvc := commissionService.NewService(
		appointmentRepository,
		professionalRepository,
		ruleRepository,
		entryRepository,
		feeScheduleSvc,
		txMgr,
		metricsCollector,
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		txMgr,
		log,
	)
	timeBlocksSvc := timeBlocksService.NewService(
		timeBlockRepository,
		professionalRepository,
		log,
	)

	// Инициализируем use cases
	completeAppointmentUseCase := completeAppointmentUC.NewUseCase(
		appointmentRepository,
		professionalRepository,
		ruleRepository,
		entryRepository,
		feeScheduleSvc,
		eventPublisher,
		txMgr,
		metricsCollector,
		log,
	)
	getDayCalendarUseCase := getDayCalendarUC.NewUseCase(
		timeBlockRepository,
		appointmentRepository,
		location,
		log,
	)

	// Инициализируем handlers
	previewCommission := previewCommissionHandler.NewHandler(commissionSvc, log)
	getAppointmentCommission := getAppointmentCommissionHandler.NewHandler(commissionSvc, log)
	getCommissionRules := getCommissionRulesHandler.NewHandler(commissionSvc, log)
	updateCommissionRules := updateCommissionRulesHandler.NewHandler(commissionSvc, log)
	getCommissionReport := getCommissionReportHandler.NewHandler(commissionSvc, location, log)
	completeAppointment := completeAppointmentHandler.NewHandler(completeAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	addAppointmentService := addAppointmentServiceHandler.NewHandler(appointmentsSvc, log)
	removeAppointmentService := removeAppointmentServiceHandler.NewHandler(appointmentsSvc, log)
	getDayCalendar := getDayCalendarHandler.NewHandler(getDayCalendarUseCase, log)
	getFeeSchedule := getFeeScheduleHandler.NewHandler(feeScheduleSvc, log)
	updateFeeSchedule := updateFeeScheduleHandler.NewHandler(feeScheduleSvc, log)
	createTimeBlock := createTimeBlockHandler.NewHandler(timeBlocksSvc, log)
	deleteTimeBlock := deleteTimeBlockHandler.NewHandler(timeBlocksSvc, log)
	listTimeBlocks := listTimeBlocksHandler.NewHandler(timeBlocksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Liveness
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.Auth.Enabled {
		api.Use(middleware.NewAuthenticator(cfg.Auth.JWTSecret, log).Middleware)
		log.Info("JWT authentication enabled (admin role=%s)", cfg.Auth.AdminRole)
	} else {
		log.Warn("JWT authentication disabled, API is open")
	}

	// Изменение ставок и сборов доступно только администратору
	admin := api.PathPrefix("").Subrouter()
	if cfg.Auth.Enabled {
		admin.Use(middleware.RequireRole(cfg.Auth.AdminRole, log))
	}

	// --- Комиссии ---
	// Предпросмотр комиссии
	api.HandleFunc("/commissions/preview", previewCommission.Handle).Methods(http.MethodPost)

	// Комиссия по записи
	api.HandleFunc("/appointments/{appointmentId}/commission", getAppointmentCommission.Handle).Methods(http.MethodGet)

	// Ставки специалиста
	api.HandleFunc("/professionals/{professionalId}/commission-rules", getCommissionRules.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/professionals/{professionalId}/commission-rules", updateCommissionRules.Handle).Methods(http.MethodPut)

	// Отчет по комиссиям за период
	api.HandleFunc("/professionals/{professionalId}/commissions", getCommissionReport.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{appointmentId}/services", addAppointmentService.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/services/{serviceId}", removeAppointmentService.Handle).Methods(http.MethodDelete)

	// --- Календарь ---
	api.HandleFunc("/calendar", getDayCalendar.Handle).Methods(http.MethodGet)

	// --- Сборы платежных методов ---
	api.HandleFunc("/fee-schedule", getFeeSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/fee-schedule", updateFeeSchedule.Handle).Methods(http.MethodPut)

	// --- Блокировки времени ---
	api.HandleFunc("/time-blocks", createTimeBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/time-blocks/{blockId}", deleteTimeBlock.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/professionals/{professionalId}/time-blocks", listTimeBlocks.Handle).Methods(http.MethodGet)

	// CORS для фронтенда
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s (timezone=%s)", addr, location)
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

// newFeeScheduleCache выбирает драйвер кэша по конфигурации
func newFeeScheduleCache(cacheCfg config.CacheConfig, redisCfg config.RedisConfig) (feeScheduleService.Cache, func(), error) {
	switch cacheCfg.Driver {
	case config.CacheDriverRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cache, err := feeCache.NewRedisCache(ctx, feeCache.RedisOptions{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		}, cacheCfg.TTLDuration())
		if err != nil {
			return nil, nil, err
		}
		return cache, func() { _ = cache.Close() }, nil
	default:
		cache, err := feeCache.NewMemoryCache(cacheCfg.Size, cacheCfg.TTLDuration())
		if err != nil {
			return nil, nil, err
		}
		return cache, func() {}, nil
	}
}

// newPublisher выбирает транспорт событий по конфигурации
func newPublisher(eventsCfg config.EventsConfig, log *logger.Logger) (publisher, error) {
	switch eventsCfg.Driver {
	case config.EventsDriverRabbitMQ:
		amqpPublisher, err := events.NewAMQPPublisher(eventsCfg.AMQPURL, eventsCfg.Exchange, log)
		if err != nil {
			return nil, err
		}
		return amqpPublisher, nil
	case config.EventsDriverWebhook:
		return events.NewWebhookPublisher(
			eventsCfg.WebhookURL,
			eventsCfg.WebhookSecret,
			time.Duration(eventsCfg.WebhookTimeout)*time.Second,
			log,
		), nil
	default:
		return events.NoopPublisher{}, nil
	}
}
