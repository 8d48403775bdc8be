package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendSheets = "sheets"
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
)

type Config struct {
	TelegramToken   string
	TelegramDebug   bool
	BaseAdminChatID int64
	DatabaseURL     string

	LedgerBackend   string
	SpreadsheetID   string
	SheetName       string
	AuditSheetName  string
	CredentialsFile string
	WorkbookPath    string

	PlanningYear     int
	RedGreenAnchor   time.Time
	BlueYellowAnchor time.Time

	RosterFile string
	HTTPAddr   string
	LogLevel   string
}

var instance *Config
var once sync.Once

// GetConfig возвращает конфиг процесса, при ошибке завершает работу
func GetConfig() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %s", err.Error())
	}

	return loadFromEnv()
}

func loadFromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDebug:   getEnvAsBool("TELEGRAM_DEBUG", false),
		BaseAdminChatID: getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		DatabaseURL:     getEnv("DATABASE_URL", "leave.db"),
		LedgerBackend:   getEnv("LEDGER_BACKEND", BackendSheets),
		SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
		SheetName:       getEnv("SHEET_NAME", "holiday"),
		AuditSheetName:  getEnv("AUDIT_SHEET_NAME", "audit"),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS", "creds.json"),
		WorkbookPath:    getEnv("WORKBOOK_PATH", "holiday_book.xlsx"),
		PlanningYear:    int(getEnvAsInt("PLANNING_YEAR", 2024)),
		RosterFile:      getEnv("ROSTER_FILE", "roster.json"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	defaultAnchor := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)

	var err error
	if cfg.RedGreenAnchor, err = getEnvAsDate("RED_GREEN_ANCHOR", defaultAnchor); err != nil {
		return nil, err
	}
	if cfg.BlueYellowAnchor, err = getEnvAsDate("BLUE_YELLOW_ANCHOR", defaultAnchor); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет настройки книги отпусков
func (c *Config) Validate() error {
	switch c.LedgerBackend {
	case BackendSheets:
		if c.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required for the %s backend", BackendSheets)
		}
	case BackendXLSX:
		if c.WorkbookPath == "" {
			return fmt.Errorf("WORKBOOK_PATH is required for the %s backend", BackendXLSX)
		}
	case BackendSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s backend", BackendSQLite)
		}
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.LedgerBackend)
	}

	if c.PlanningYear < 2000 || c.PlanningYear > 2100 {
		return fmt.Errorf("PLANNING_YEAR %d is out of range", c.PlanningYear)
	}
	return nil
}

// RequireTelegram проверяет настройки, нужные только боту
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("could not get bot token")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("could not get db url")
	}
	return nil
}

// ApplyLogLevel настраивает уровень логирования logrus
func (c *Config) ApplyLogLevel() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}

func getEnvAsDate(name string, defaultVal time.Time) (time.Time, error) {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal, nil
	}

	val, err := time.Parse("2006-01-02", valStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", name, err)
	}
	return val, nil
}
