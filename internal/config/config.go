// Package config reads settings from the environment, after loading a .env
// file when one exists.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/notify"
)

// Config holds every runtime setting.
type Config struct {
	Port           string
	Store          db.Options
	MQTT           notify.MQTTOptions
	AdvisorEnabled bool
	RateLimit      int // requests per minute per client
	LogLevel       string
	LogFormat      string
}

// Load reads .env (if present) and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port: getenv("PORT", "8080"),
		Store: db.Options{
			Backend:     strings.ToLower(getenv("STORE_BACKEND", db.BackendSQLite)),
			Prefix:      getenv("SLOT_PREFIX", "fleetmaint:"),
			SQLitePath:  getenv("SQLITE_PATH", "fleet.db"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			MongoURI:    os.Getenv("MONGO_URI"),
			MongoDB:     getenv("MONGO_DB", "fleet"),
			RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
			RedisPass:   os.Getenv("REDIS_PASSWORD"),
			RedisDB:     getint("REDIS_DB", 0),
		},
		MQTT: notify.MQTTOptions{
			Broker:   os.Getenv("MQTT_BROKER"),
			ClientID: getenv("MQTT_CLIENT_ID", "fleet-maintenance"),
			Topic:    getenv("MQTT_TOPIC", "fleet/events"),
		},
		AdvisorEnabled: getbool("ADVISOR_ENABLED", false),
		RateLimit:      getint("RATE_LIMIT", 120),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
	}
}

// ConfigureLogging applies the log level and format to the standard logrus logger.
func (c Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.WithField("key", key).Warn("Ignoring non-numeric setting")
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.WithField("key", key).Warn("Ignoring non-boolean setting")
	}
	return def
}
