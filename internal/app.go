package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	artifacts_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/artifacts"
	email_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/email"
	extract_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/extract"
	gemini_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/gemini"
	googlesearch_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/googlesearch"
	token_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/jwt"
	logger_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/logger"
	marketdata_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/marketdata"
	postgres_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/postgres"
	render_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/render"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/rest"
	taxdata_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/taxdata"
	zillow_adapter "github.com/fortunatoman/Real-estate-AI-backend/internal/adapters/zillow"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/configs"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/port"
	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/usecase"
	fluentlogger "github.com/fortunatoman/Real-estate-AI-backend/pkg/fluent_logger"
	"github.com/fortunatoman/Real-estate-AI-backend/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	artifacts    *artifacts_adapter.Registry
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
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
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
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

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИНИЦИАЛИЗАЦИЯ НИЗКОУРОВНЕВЫХ ЗАВИСИМОСТЕЙ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	historyRepository, err := postgres_adapter.NewHistoryRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres history repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres history repository: %w", err)
	}

	userRepository, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create postgres user repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
	}
	appLogger.Info("Postgres repositories initialized.", nil)

	// --- 4. ИНИЦИАЛИЗАЦИЯ ИСХОДЯЩИХ АДАПТЕРОВ ---
	geminiClient, err := gemini_adapter.NewClient(context.Background(), appConfig.Gemini.APIKey, appConfig.Gemini.Model, appConfig.Gemini.Timeout)
	if err != nil {
		appLogger.Error("Failed to create Gemini client", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	zillowClient := zillow_adapter.NewClient(appConfig.RapidAPI.Key, appConfig.RapidAPI.Timeout)
	marketClient := marketdata_adapter.NewClient(appConfig.RapidAPI.Key, appConfig.RapidAPI.Timeout)
	taxClient := taxdata_adapter.NewClient(appConfig.RapidAPI.Timeout)
	searchClient := googlesearch_adapter.NewClient(appConfig.GoogleSearch.APIKey, appConfig.GoogleSearch.CSEID)

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		appLogger.Error("Failed to create token service", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	emailSender := email_adapter.NewSMTPSender(
		appConfig.Email.Host,
		strconv.Itoa(appConfig.Email.Port),
		appConfig.Email.User,
		appConfig.Email.Password,
		appConfig.Email.From,
	)

	textExtractor := extract_adapter.NewExtractor()

	artifactsRegistry, err := artifacts_adapter.NewRegistry(
		appConfig.Report.Dir,
		appConfig.Report.TTL,
		baseLogger.WithFields(port.Fields{"component": "artifacts_registry"}),
	)
	if err != nil {
		appLogger.Error("Failed to create artifacts registry", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create artifacts registry: %w", err)
	}

	pdfRenderer := render_adapter.NewChromedpRenderer(appConfig.Report.RenderTimeout, appConfig.Report.SettleDelay)
	reportComposer := render_adapter.NewComposer()
	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 5. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	classifier := usecase.NewClassifier(geminiClient)
	aggregator := usecase.NewMarketAggregator(marketClient, searchClient)
	narrativeGenerator := usecase.NewNarrativeGenerator(geminiClient, usecase.NarrativeConfig{
		MaxOutputTokens:      appConfig.Gemini.MaxOutputTokens,
		RetryMaxOutputTokens: appConfig.Gemini.RetryMaxTokens,
		TruncationThreshold:  appConfig.Analysis.TruncationThreshold,
		DefaultResultLimit:   appConfig.Analysis.DefaultResultLimit,
	})

	analyzePropertyUseCase := usecase.NewAnalyzePropertyUseCase(
		classifier, zillowClient, aggregator, narrativeGenerator, historyRepository,
		appConfig.Analysis.DefaultResultLimit,
	)
	analyzeFileUseCase := usecase.NewAnalyzeFileUseCase(
		textExtractor, classifier, zillowClient, aggregator, narrativeGenerator,
		appConfig.Analysis.DefaultResultLimit,
	)
	getHistoriesUseCase := usecase.NewGetHistoriesUseCase(historyRepository)
	getHistoryUseCase := usecase.NewGetHistoryUseCase(historyRepository)
	getHomeDetailsUseCase := usecase.NewGetHomeDetailsUseCase(zillowClient)

	generateReportUseCase := usecase.NewGenerateReportUseCase(
		zillowClient, taxClient, narrativeGenerator, reportComposer, pdfRenderer, artifactsRegistry,
		usecase.ReportConfig{
			MaxRenderAttempts: appConfig.Report.MaxAttempts,
			BackoffBase:       appConfig.Report.BackoffBase,
			BackoffCap:        appConfig.Report.BackoffCap,
			ArtifactTTL:       appConfig.Report.TTL,
			BaseURL:           appConfig.Rest.BaseURL,
		},
	)

	authCfg := usecase.AuthConfig{
		TokenTTL:    appConfig.Auth.TokenTTL,
		FrontendURL: appConfig.Email.FrontendURL,
	}
	registerUserUseCase := usecase.NewRegisterUserUseCase(userRepository, tokenService, emailSender, authCfg)
	loginUserUseCase := usecase.NewLoginUserUseCase(userRepository, tokenService, authCfg)
	verifyEmailUseCase := usecase.NewVerifyEmailUseCase(userRepository, tokenService)
	requestPasswordResetUseCase := usecase.NewRequestPasswordResetUseCase(userRepository, tokenService, emailSender, authCfg)
	resetPasswordUseCase := usecase.NewResetPasswordUseCase(userRepository, tokenService)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. REST API Server ---
	analysisHandlers := rest.NewAnalysisHandler(
		analyzePropertyUseCase, analyzeFileUseCase,
		getHistoriesUseCase, getHistoryUseCase, getHomeDetailsUseCase,
	)
	reportHandlers := rest.NewReportHandler(generateReportUseCase, artifactsRegistry)
	authHandlers := rest.NewAuthHandler(
		registerUserUseCase, loginUserUseCase, verifyEmailUseCase,
		requestPasswordResetUseCase, resetPasswordUseCase,
	)

	apiServer := rest.NewServer(appConfig.Rest.PORT, analysisHandlers, reportHandlers, authHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	// --- 7. Собираем приложение ---
	application := &App{
		config:       appConfig,
		dbPool:       dbPool,
		apiServer:    apiServer,
		artifacts:    artifactsRegistry,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Создаем единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	// Используем WaitGroup для ожидания завершения всех фоновых задач
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		// Останавливаем обходчик просроченных отчетов
		if a.artifacts != nil {
			a.artifacts.Stop()
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
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

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
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
