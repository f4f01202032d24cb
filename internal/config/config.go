package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`
	AppEnv  string `env:"APP_ENV"  envDefault:"development"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	MySQLHost string `env:"MYSQL_HOST" envDefault:"mysql"`
	MySQLPort string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLDB   string `env:"MYSQL_DB"   envDefault:"creditos"`
	MySQLUser string `env:"MYSQL_USER" envDefault:"creditos"`
	MySQLPass string `env:"MYSQL_PASS" envDefault:"creditos"`
	DBMigrate bool   `env:"DB_MIGRATE" envDefault:"true"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisDB   int    `env:"REDIS_DB"   envDefault:"0"`

	IdempTTLSecs    int    `env:"IDEMPOTENCY_TTL_SECONDS" envDefault:"300"`
	MoraCron        string `env:"MORA_CRON"               envDefault:"0 15 2 * * *"`
	DefaultPageSize int    `env:"DEFAULT_PAGE_SIZE"       envDefault:"10"`
}

// Load reads the environment. Call Validate before use.
func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := strconv.ParseUint(c.MySQLPort, 10, 16); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > 100 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be in 1..100, got %d", c.DefaultPageSize)
	}
	if c.MoraCron != "" {
		if _, err := cron.NewParser(CronSpec).Parse(c.MoraCron); err != nil {
			return fmt.Errorf("invalid MORA_CRON %q: %w", c.MoraCron, err)
		}
	}
	return nil
}

// CronSpec is the MORA_CRON format: six fields, seconds first.
const CronSpec = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// MigrateURL is the golang-migrate database URL for the same database.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("mysql://%s:%s@tcp(%s)/%s?multiStatements=true",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
