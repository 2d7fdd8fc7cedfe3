package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env, Port string

	DBDSN     string // empty means in-memory repositories with demo seed
	RedisAddr string // empty disables the catalog cache

	PaymentMinDelay time.Duration
	PaymentMaxDelay time.Duration
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvMillis(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return d
}

func LoadConfig() Config {
	return Config{
		Env:             getEnv("APP_ENV", "dev"),
		Port:            getEnv("APP_PORT", "8080"),
		DBDSN:           os.Getenv("DB_DSN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		PaymentMinDelay: getEnvMillis("PAYMENT_MIN_DELAY_MS", 100*time.Millisecond),
		PaymentMaxDelay: getEnvMillis("PAYMENT_MAX_DELAY_MS", time.Second),
	}
}
