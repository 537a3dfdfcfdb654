package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Backend  BackendConfig
	Booking  BookingConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	SSLMode        string
	MaxConns       int32
	MigrationsPath string
}

type JWTConfig struct {
	Secret string
}

type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type BookingConfig struct {
	PaymentDelay    time.Duration
	DismissDelay    time.Duration
	SlotStart       string
	SlotEnd         string
	SubmitToBackend bool
}

type HTTPConfig struct {
	RateLimitPerMinute int
	AllowedOrigins     []string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "servicehub")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 20)
	viper.SetDefault("BOOKING_PAYMENT_DELAY_MS", 2000)
	viper.SetDefault("BOOKING_DISMISS_DELAY_MS", 3000)
	viper.SetDefault("BOOKING_SLOT_START", "09:00")
	viper.SetDefault("BOOKING_SLOT_END", "17:30")
	viper.SetDefault("BOOKING_SUBMIT_TO_BACKEND", false)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 200)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// .env is optional; real environment variables win either way
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			Name:           viper.GetString("DB_NAME"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASS"),
			SSLMode:        viper.GetString("DB_SSLMODE"),
			MaxConns:       viper.GetInt32("DB_MAX_CONNS"),
			MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
		},
		Booking: BookingConfig{
			PaymentDelay:    time.Duration(viper.GetInt("BOOKING_PAYMENT_DELAY_MS")) * time.Millisecond,
			DismissDelay:    time.Duration(viper.GetInt("BOOKING_DISMISS_DELAY_MS")) * time.Millisecond,
			SlotStart:       viper.GetString("BOOKING_SLOT_START"),
			SlotEnd:         viper.GetString("BOOKING_SLOT_END"),
			SubmitToBackend: viper.GetBool("BOOKING_SUBMIT_TO_BACKEND"),
		},
		HTTP: HTTPConfig{
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			AllowedOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
