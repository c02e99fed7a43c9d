package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBTimezone string

	LogLevel        string
	SecurityLogPath string
	PasswordCost    int

	// LoginAttemptsPerMinute limits logins per client IP; zero disables the limit.
	LoginAttemptsPerMinute float64
	LoginBurst             int

	// DBConnectTimeout bounds the retries while waiting for the database at startup.
	DBConnectTimeout time.Duration

	// DeclinedPrefix marks transaction IDs the payment stub rejects.
	DeclinedPrefix string

	MonthlyBillingSchedule string
	DelayedOrdersSchedule  string
	OrdersFlushSchedule    string
}

var defaults = map[string]any{
	"HTTP_PORT":                 "8080",
	"DB_HOST":                   "localhost",
	"DB_PORT":                   "5432",
	"DB_USER":                   "postgres",
	"DB_PASSWORD":               "postgres",
	"DB_NAME":                   "parcel",
	"DB_SSLMODE":                "disable",
	"DB_TIMEZONE":               "UTC",
	"DB_CONNECT_TIMEOUT":        "30s",
	"LOG_LEVEL":                 "info",
	"LOGIN_ATTEMPTS_PER_MINUTE": 10,
	"LOGIN_BURST":               5,
	"SECURITY_LOG_PATH":         "security.log",
	"PASSWORD_COST":             bcrypt.DefaultCost,
	"PAYMENT_DECLINED_PREFIX":   "DECLINED",
	"MONTHLY_BILLING_SCHEDULE":  "0 0 0 1 * *",
	"DELAYED_ORDERS_SCHEDULE":   "0 0 * * * *",
	"ORDERS_FLUSH_SCHEDULE":     "*/30 * * * * *",
}

// LoadConfig reads envFile into the environment when it exists, then builds
// the configuration from environment variables and defaults.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	config := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		DBTimezone:             v.GetString("DB_TIMEZONE"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		SecurityLogPath:        v.GetString("SECURITY_LOG_PATH"),
		PasswordCost:           v.GetInt("PASSWORD_COST"),
		LoginAttemptsPerMinute: v.GetFloat64("LOGIN_ATTEMPTS_PER_MINUTE"),
		LoginBurst:             v.GetInt("LOGIN_BURST"),
		DBConnectTimeout:       v.GetDuration("DB_CONNECT_TIMEOUT"),
		DeclinedPrefix:         v.GetString("PAYMENT_DECLINED_PREFIX"),
		MonthlyBillingSchedule: v.GetString("MONTHLY_BILLING_SCHEDULE"),
		DelayedOrdersSchedule:  v.GetString("DELAYED_ORDERS_SCHEDULE"),
		OrdersFlushSchedule:    v.GetString("ORDERS_FLUSH_SCHEDULE"),
	}

	if config.PasswordCost < bcrypt.MinCost || config.PasswordCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("PASSWORD_COST must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, config.PasswordCost)
	}
	return config, nil
}

// DSN returns the postgres connection string for gorm.
func (c Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSslMode +
		" TimeZone=" + c.DBTimezone
}
