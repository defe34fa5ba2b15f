package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"nanny-payroll-bot/internal/payroll"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken   string
	BaseAdminChatID int64
	DatabaseURL     string
	Debug           bool
	LogLevel        string
	EventsSeedFile  string
	Location        *time.Location

	RegularHoursCap    float64
	OvertimeMultiplier decimal.Decimal
}

var (
	ErrMissingToken       = errors.New("could not get bot token")
	ErrMissingDatabaseURL = errors.New("could not get db url")
)

var instance *BotConfig
var once sync.Once

// Load читает .env (если он есть) и переменные окружения.
// Токен бота не проверяется: CLI работает без него.
func Load() (*BotConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := &BotConfig{
		TelegramToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		BaseAdminChatID:    getEnvAsInt("BASE_ADMIN_CHAT_ID", 0),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Debug:              getEnvAsBool("BOT_DEBUG", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		EventsSeedFile:     getEnv("EVENTS_SEED_FILE", ""),
		Location:           time.Local,
		RegularHoursCap:    getEnvAsFloat("REGULAR_HOURS_CAP", payroll.DefaultRegularHoursCap),
		OvertimeMultiplier: getEnvAsDecimal("OVERTIME_MULTIPLIER", payroll.DefaultOvertimeMultiplier),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	if tz := getEnv("TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, err
		}
		cfg.Location = loc
	}

	return cfg, nil
}

// GetBotConfig возвращает конфиг бота, завершая процесс при отсутствии обязательных настроек
func GetBotConfig() *BotConfig {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}

		if cfg.TelegramToken == "" {
			logrus.Fatal(ErrMissingToken)
		}

		instance = cfg
	})

	return instance
}

// Policy возвращает параметры расчета зарплаты
func (c *BotConfig) Policy() payroll.Policy {
	return payroll.Policy{
		RegularHoursCap:    c.RegularHoursCap,
		OvertimeMultiplier: c.OvertimeMultiplier,
	}
}

// Today возвращает текущую дату в часовом поясе конфига
func (c *BotConfig) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return payroll.DateOf(time.Now().In(loc))
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
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil && val > 0 {
		return val
	}

	return defaultVal
}

func getEnvAsDecimal(name string, defaultVal decimal.Decimal) decimal.Decimal {
	valStr := getEnv(name, "")
	if val, err := decimal.NewFromString(valStr); err == nil && val.IsPositive() {
		return val
	}

	return defaultVal
}
