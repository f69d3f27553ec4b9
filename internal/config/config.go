package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

const (
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string

	// StoreDriver picks the record store backend: redis, mysql or sqlite.
	StoreDriver string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	RedisAddr     string
	RedisDB       int
	RedisPassword string

	IdempTTLSecs   int
	MaxRecordBytes int
	LockTTLSecs    int

	JWTSecret       string
	TokenTTLMinutes int

	AdminUsername     string
	AdminPasswordHash string
	// AdminPassword is hashed at startup when no hash is configured.
	AdminPassword string

	OTPFixedCode  string
	OTPTTLSeconds int

	NotifyChannel string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:     getenv("APP_PORT", "8080"),
		StoreDriver: getenv("STORE_DRIVER", DriverRedis),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loans"),
		MySQLUser: getenv("MYSQL_USER", "loans"),
		MySQLPass: getenv("MYSQL_PASS", "loans"),

		SQLitePath: getenv("SQLITE_PATH", "loans.db"),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:       getenvInt("REDIS_DB", 0),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		IdempTTLSecs:   getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		MaxRecordBytes: getenvInt("MAX_RECORD_BYTES", 100*1024),
		LockTTLSecs:    getenvInt("LOCK_TTL_SECONDS", 10),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTLMinutes: getenvInt("TOKEN_TTL_MINUTES", 60),

		AdminUsername:     getenv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),

		OTPFixedCode:  os.Getenv("OTP_FIXED_CODE"),
		OTPTTLSeconds: getenvInt("OTP_TTL_SECONDS", 300),

		NotifyChannel: getenv("NOTIFY_CHANNEL", "loan:status"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.StoreDriver {
	case DriverRedis:
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q (redis|mysql|sqlite)", c.StoreDriver)
	}
	if c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.MaxRecordBytes <= 0 || c.LockTTLSecs <= 0 || c.TokenTTLMinutes <= 0 || c.OTPTTLSeconds <= 0 || c.IdempTTLSecs <= 0 {
		return errors.New("MAX_RECORD_BYTES, LOCK_TTL_SECONDS, TOKEN_TTL_MINUTES, OTP_TTL_SECONDS and IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	if c.OTPFixedCode != "" && !isSixDigits(c.OTPFixedCode) {
		return errors.New("OTP_FIXED_CODE must be 6 digits")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// SQLDSN is the dsn for the configured sql driver.
func (c *Config) SQLDSN() string {
	if c.StoreDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }
func (c *Config) LockTTL() time.Duration        { return time.Duration(c.LockTTLSecs) * time.Second }
func (c *Config) TokenTTL() time.Duration       { return time.Duration(c.TokenTTLMinutes) * time.Minute }
func (c *Config) OTPTTL() time.Duration         { return time.Duration(c.OTPTTLSeconds) * time.Second }

func isSixDigits(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
