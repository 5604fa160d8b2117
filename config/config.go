package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables,
// an optional .env file and an optional config file.
//
// It is composed of smaller structs that represent different concerns of the run,
// such as the market-data source, the output artifacts and the optional run archive.
//
// Example ENV equivalent:
//
//	COINGECKO_API_URL=https://api.coingecko.com/api/v3/coins/markets
//	VS_CURRENCY=usd
//	PER_PAGE=50
//	SPREADSHEET_PATH=./out/crypto_data.xlsx
//	REPORT_PATH=./out/crypto_report.pdf
//	ARCHIVE_DRIVER=sqlite
type Config struct {
	Source   SourceConfig   // Market-data API settings
	Output   OutputConfig   // Spreadsheet and report destinations
	Archive  ArchiveConfig  // Optional run history
	Postgres PostgresConfig // PostgreSQL connection settings (ARCHIVE_DRIVER=postgres)
	Log      LogConfig      // Logger settings
}

// SourceConfig describes the single request made to the markets endpoint.
//
// Fields:
//   - URL: full /coins/markets endpoint.
//   - APIKey: optional demo/pro key, sent as x-cg-demo-api-key.
//   - VsCurrency: reference currency for prices.
//   - PerPage / Page: page size (1..250) and page number of the ranking.
//   - Timeout: HTTP client timeout for the whole request.
//   - UserAgent: User-Agent header value.
type SourceConfig struct {
	URL        string        `env:"COINGECKO_API_URL" validate:"required,url"`
	APIKey     string        `env:"COINGECKO_API_KEY"`
	VsCurrency string        `env:"VS_CURRENCY" validate:"required"`
	PerPage    int           `env:"PER_PAGE" validate:"min=1,max=250"`
	Page       int           `env:"PAGE" validate:"min=1"`
	Timeout    time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`
	UserAgent  string        `env:"USER_AGENT" validate:"required"`
}

// OutputConfig holds artifact destinations. Existing files are replaced.
type OutputConfig struct {
	SpreadsheetPath string `env:"SPREADSHEET_PATH" validate:"required"`
	SheetName       string `env:"SHEET_NAME" validate:"required,max=31,excludesall=:\\/?*[]"`
	ReportPath      string `env:"REPORT_PATH" validate:"required"`
}

// ArchiveConfig enables the run archive. An empty Driver disables it.
type ArchiveConfig struct {
	Driver     string `env:"ARCHIVE_DRIVER" validate:"omitempty,oneof=postgres sqlite"`
	SQLitePath string `env:"SQLITE_PATH" validate:"required_if=Driver sqlite"`
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST"`
	Port     int    `env:"POSTGRES_PORT"`
	User     string `env:"POSTGRES_USER"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB"`
	SSLMode  string `env:"POSTGRES_SSLMODE"`
	URL      string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Pretty bool   `env:"LOG_PRETTY"`
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures by their environment key instead of the Go field name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// LoadConfig initializes the global AppConfig.
//
// Sources, in load order:
//  1. Defaults set in this function.
//  2. .env file (if present), loaded into the process environment without
//     overriding variables that are already set.
//  3. The file named by CONFIG_FILE (yaml, toml or json), if set.
//  4. Environment variables, including those from .env.
//
// Later sources win, so environment values (real or from .env) beat the file.
//
// Returns an error naming every invalid or missing key.
func LoadConfig() error {
	viper.Reset()

	// Default values
	viper.SetDefault("COINGECKO_API_URL", "https://api.coingecko.com/api/v3/coins/markets")
	viper.SetDefault("COINGECKO_API_KEY", "")
	viper.SetDefault("VS_CURRENCY", "usd")
	viper.SetDefault("PER_PAGE", 50)
	viper.SetDefault("PAGE", 1)
	viper.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	viper.SetDefault("USER_AGENT", "cryptoreport/1.0")

	viper.SetDefault("SPREADSHEET_PATH", "crypto_data.xlsx")
	viper.SetDefault("SHEET_NAME", "Live Data")
	viper.SetDefault("REPORT_PATH", "crypto_report.pdf")

	viper.SetDefault("ARCHIVE_DRIVER", "")
	viper.SetDefault("SQLITE_PATH", "cryptoreport.db")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "cryptoreport")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally load .env into the process environment (common in local dev)
	_ = godotenv.Load()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Source: SourceConfig{
			URL:        viper.GetString("COINGECKO_API_URL"),
			APIKey:     viper.GetString("COINGECKO_API_KEY"),
			VsCurrency: strings.ToLower(viper.GetString("VS_CURRENCY")),
			PerPage:    viper.GetInt("PER_PAGE"),
			Page:       viper.GetInt("PAGE"),
			Timeout:    viper.GetDuration("REQUEST_TIMEOUT"),
			UserAgent:  viper.GetString("USER_AGENT"),
		},
		Output: OutputConfig{
			SpreadsheetPath: viper.GetString("SPREADSHEET_PATH"),
			SheetName:       viper.GetString("SHEET_NAME"),
			ReportPath:      viper.GetString("REPORT_PATH"),
		},
		Archive: ArchiveConfig{
			Driver:     strings.ToLower(viper.GetString("ARCHIVE_DRIVER")),
			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	return validateConfig(AppConfig)
}

// validateConfig checks struct-tag rules and the Postgres fields when the
// postgres archive is selected. All problems are reported in one error.
func validateConfig(cfg Config) error {
	var problems []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
	}

	if cfg.Archive.Driver == "postgres" {
		if cfg.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST (required)")
		}
		if cfg.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT (required)")
		}
		if cfg.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER (required)")
		}
		if cfg.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB (required)")
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}
