package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort  string
	LogLevel string

	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs        int
	PendingCacheTTLSecs int

	// when set, editing an assignment's status also moves its product
	UpdateSyncsStatus bool

	// CIDRs of reverse proxies whose X-Forwarded-For is believed. Empty means
	// the client IP is always the TCP peer.
	TrustedProxies []string
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return d
}

func getlist(k string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(k), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return d
}

// Load reads the environment. A .env file in the working directory, or the
// files named, is applied first without overriding variables already set.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("config: ignoring unreadable env file")
	}
	return &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		SQLitePath: getenv("SQLITE_PATH", "custody.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "custody"),
		MySQLUser: getenv("MYSQL_USER", "custody"),
		MySQLPass: getenv("MYSQL_PASS", "custody"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs:        getint("IDEMPOTENCY_TTL_SECONDS", 300),
		PendingCacheTTLSecs: getint("PENDING_CACHE_TTL_SECONDS", 60),

		UpdateSyncsStatus: getbool("ASSIGNMENT_UPDATE_SYNCS_STATUS", false),

		TrustedProxies: getlist("TRUSTED_PROXIES"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if c.PendingCacheTTLSecs <= 0 {
		return fmt.Errorf("PENDING_CACHE_TTL_SECONDS must be positive, got %d", c.PendingCacheTTLSecs)
	}
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", cidr, err)
		}
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
		return nil
	case DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}
