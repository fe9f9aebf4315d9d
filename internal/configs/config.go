package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT string
	// BaseURL нужен для формирования downloadUrl отчетов
	BaseURL string
}

type DatabaseConfig struct {
	URL string
}

// GeminiConfig хранит настройки LLM-провайдера
type GeminiConfig struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int32
	// RetryMaxTokens - увеличенный лимит для повторной генерации
	// после обнаружения обрезанного ответа
	RetryMaxTokens int32
}

// RapidAPIConfig - общий ключ для zillow-хостов на RapidAPI
type RapidAPIConfig struct {
	Key     string
	Timeout time.Duration
}

// GoogleSearchConfig - креды Google Custom Search. Опциональны:
// без них поиск сниппетов просто пропускается.
type GoogleSearchConfig struct {
	APIKey string
	CSEID  string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// FrontendURL используется в ссылках верификации/сброса пароля
	FrontendURL string
}

// AnalysisConfig - настраиваемые константы пайплайна анализа.
// Дефолты (15 объектов, порог 500 символов) взяты из продуктовых
// требований и могут быть переопределены через env.
type AnalysisConfig struct {
	DefaultResultLimit  int
	TruncationThreshold int
}

// ReportConfig - настройки генерации PDF-отчетов
type ReportConfig struct {
	Dir           string
	TTL           time.Duration
	MaxAttempts   int
	BackoffBase   time.Duration
	BackoffCap    time.Duration
	RenderTimeout time.Duration
	// SettleDelay - пауза после загрузки контента перед экспортом,
	// чтобы верстка успела стабилизироваться
	SettleDelay time.Duration
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	Database     DatabaseConfig
	Gemini       GeminiConfig
	RapidAPI     RapidAPIConfig
	GoogleSearch GoogleSearchConfig
	Auth         AuthConfig
	Email        EmailConfig
	Analysis     AnalysisConfig
	Report       ReportConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// .env опционален: в контейнере конфигурация приходит из окружения
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "real-estate-ai-backend")

	cfg.Rest.PORT = getEnvAsString("PORT", "1001")
	cfg.Rest.BaseURL = getEnvAsString("BASE_URL", "http://localhost:"+cfg.Rest.PORT)

	cfg.Database.URL = os.Getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	cfg.Gemini.Model = getEnvAsString("GEMINI_MODEL", "gemini-2.0-flash")
	cfg.Gemini.Timeout = getEnvAsDuration("GEMINI_TIMEOUT", 90*time.Second)
	cfg.Gemini.MaxOutputTokens = int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 1500))
	cfg.Gemini.RetryMaxTokens = int32(getEnvAsInt("GEMINI_RETRY_MAX_TOKENS", 2000))

	cfg.RapidAPI.Key = os.Getenv("RAPIDAPI_API_KEY")
	if cfg.RapidAPI.Key == "" {
		return nil, fmt.Errorf("RAPIDAPI_API_KEY environment variable is required")
	}
	cfg.RapidAPI.Timeout = getEnvAsDuration("RAPIDAPI_TIMEOUT", 15*time.Second)

	// Google Search опционален
	cfg.GoogleSearch.APIKey = os.Getenv("GOOGLE_API_KEY")
	cfg.GoogleSearch.CSEID = os.Getenv("GOOGLE_CSE_ID")

	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.Auth.TokenTTL = getEnvAsDuration("JWT_TTL", 24*time.Hour)

	cfg.Email.Host = getEnvAsString("SMTP_HOST", "")
	cfg.Email.Port = getEnvAsInt("SMTP_PORT", 587)
	cfg.Email.User = os.Getenv("SMTP_USER")
	cfg.Email.Password = os.Getenv("SMTP_PASSWORD")
	cfg.Email.From = getEnvAsString("EMAIL_FROM", cfg.Email.User)
	cfg.Email.FrontendURL = getEnvAsString("FRONTEND_URL", cfg.Rest.BaseURL)

	cfg.Analysis.DefaultResultLimit = getEnvAsInt("DEFAULT_RESULT_LIMIT", 15)
	cfg.Analysis.TruncationThreshold = getEnvAsInt("TRUNCATION_THRESHOLD", 500)

	cfg.Report.Dir = getEnvAsString("REPORTS_DIR", "temp-pdfs")
	cfg.Report.TTL = getEnvAsDuration("REPORT_TTL", 10*time.Minute)
	cfg.Report.MaxAttempts = getEnvAsInt("RENDER_MAX_ATTEMPTS", 3)
	cfg.Report.BackoffBase = getEnvAsDuration("RENDER_BACKOFF_BASE", 5*time.Second)
	cfg.Report.BackoffCap = getEnvAsDuration("RENDER_BACKOFF_CAP", 30*time.Second)
	cfg.Report.RenderTimeout = getEnvAsDuration("RENDER_TIMEOUT", 2*time.Minute)
	cfg.Report.SettleDelay = getEnvAsDuration("RENDER_SETTLE_DELAY", 3*time.Second)

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию.
// Логирует ошибку, если переменная есть, но не может быть преобразована в int.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valDur, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valDur
}
