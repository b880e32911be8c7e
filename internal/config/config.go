package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	// APIKey is the shared key callers must present in X-API-Key.
	APIKey string

	FMCSAWebKey  string
	FMCSABaseURL string

	LoadsFile string

	// MaxOverPct bounds how far a settlement may exceed the listed rate.
	MaxOverPct float64

	PublicDashboard bool
	EnableNLP       bool

	OTLPEndpoint string
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:         getenv("APP_SERVICE", "carriergate"),
		AppVersion:      getenv("APP_VERSION", "0.1.0"),
		Environment:     getenv("ENVIRONMENT", "development"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		APIKey:          getenv("API_KEY", "test-api-key"),
		FMCSAWebKey:     strings.TrimSpace(getenv("FMCSA_WEBKEY", "")),
		FMCSABaseURL:    getenv("FMCSA_BASE_URL", "https://mobile.fmcsa.dot.gov/qc/services/"),
		LoadsFile:       getenv("LOADS_FILE", "./data/loads.json"),
		MaxOverPct:      getenvFloat("MAX_OVER_PCT", 0.10),
		PublicDashboard: getenvBool("PUBLIC_DASHBOARD", false),
		EnableNLP:       getenvBool("ENABLE_NLP", true),
		OTLPEndpoint:    getenv("OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
