package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "real-estate-service/internal/adapters/logger"
	minio_adapter "real-estate-service/internal/adapters/minio"
	postgres_adapter "real-estate-service/internal/adapters/postgres"
	rabbitmq_adapter "real-estate-service/internal/adapters/rabbitmq"
	"real-estate-service/internal/adapters/rest"
	"real-estate-service/internal/configs"
	"real-estate-service/internal/core/port"
	"real-estate-service/internal/core/usecase"
	fluentlogger "real-estate-service/pkg/fluent_logger"
	"real-estate-service/pkg/postgres"
	"real-estate-service/pkg/rabbitmq"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server

	dbPool         *pgxpool.Pool
	eventPublisher *rabbitmq.Publisher
	logger         port.LoggerPort
	fluentClient   *fluent.Fluent
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelInit()

	// --- 3. ИНФРАСТРУКТУРА: POSTGRES ---
	dbPool, err := postgres.NewClient(initCtx, postgres.Config{
		DatabaseURL:     appConfig.Database.URL,
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("PostgreSQL connection pool initialized.", nil)

	uowFactory, err := postgres_adapter.NewUnitOfWorkFactory(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create unit of work factory: %w", err)
	}

	// --- 4. ИНФРАСТРУКТУРА: MINIO ---
	imageStorage, err := minio_adapter.NewImageStorage(initCtx, minio_adapter.Config{
		Endpoint:          appConfig.Minio.Endpoint,
		AccessKey:         appConfig.Minio.AccessKey,
		SecretKey:         appConfig.Minio.SecretKey,
		Bucket:            appConfig.Minio.Bucket,
		UseSSL:            appConfig.Minio.UseSSL,
		MaxBytes:          appConfig.Images.MaxBytes,
		AllowedExtensions: appConfig.Images.AllowedExtensions,
	}, baseLogger.WithFields(port.Fields{"component": "image_storage"}))
	if err != nil {
		dbPool.Close()
		appLogger.Error("Failed to initialize image storage", err, nil)
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	appLogger.Info("Image storage initialized.", port.Fields{"bucket": appConfig.Minio.Bucket})

	// --- 5. ИНФРАСТРУКТУРА: RABBITMQ (опционально) ---
	var propertyEvents port.PropertyEventsPort = rabbitmq_adapter.NoopPropertyEvents{}
	var eventPublisher *rabbitmq.Publisher
	if appConfig.RabbitMQ.URL != "" {
		publisherLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_publisher"})
		eventPublisher, err = rabbitmq.NewPublisher(rabbitmq.PublisherConfig{
			URL:                      appConfig.RabbitMQ.URL,
			ExchangeName:             appConfig.RabbitMQ.ExchangeName,
			ExchangeType:             "topic",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(publisherLogger),
		})
		if err != nil {
			dbPool.Close()
			appLogger.Error("Failed to create event publisher", err, nil)
			return nil, fmt.Errorf("failed to create event publisher: %w", err)
		}

		propertyEvents, err = rabbitmq_adapter.NewPropertyEventsAdapter(eventPublisher)
		if err != nil {
			eventPublisher.Close()
			dbPool.Close()
			return nil, err
		}
		appLogger.Info("RabbitMQ Event Publisher initialized.", port.Fields{"exchange": appConfig.RabbitMQ.ExchangeName})
	} else {
		appLogger.Warn("RABBITMQ_URL is not set, domain events are disabled.", nil)
	}

	urlBuilder := rest.NewPublicURLBuilder(appConfig.Images.PublicPath)

	// ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики)
	createPropertyUseCase := usecase.NewCreatePropertyUseCase(uowFactory, propertyEvents)
	updatePropertyUseCase := usecase.NewUpdatePropertyUseCase(uowFactory)
	changePriceUseCase := usecase.NewChangePriceUseCase(uowFactory, propertyEvents)
	addPropertyImageUseCase := usecase.NewAddPropertyImageUseCase(uowFactory, imageStorage)
	getPropertyDetailsUseCase := usecase.NewGetPropertyDetailsUseCase(uowFactory, urlBuilder)
	listPropertiesUseCase := usecase.NewListPropertiesUseCase(uowFactory)

	appLogger.Info("All use cases initialized", nil)

	apiHandlers := rest.NewPropertyHandler(
		createPropertyUseCase,
		updatePropertyUseCase,
		changePriceUseCase,
		addPropertyImageUseCase,
		getPropertyDetailsUseCase,
		listPropertiesUseCase,
	)
	apiServer := rest.NewServer(appConfig.Rest.PORT, apiHandlers, appConfig.Rest.AllowedOrigins, baseLogger)

	application := &App{
		config:         appConfig,
		apiServer:      apiServer,
		dbPool:         dbPool,
		eventPublisher: eventPublisher,
		logger:         appLogger,
		fluentClient:   fluentClient,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
			cancelShutdown()
		}

		if a.eventPublisher != nil {
			if err := a.eventPublisher.Close(); err != nil {
				a.logger.Error("Error closing event publisher", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
