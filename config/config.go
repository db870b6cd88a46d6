// Package config reads settings from the environment and an optional .env
// file. Variables already set in the environment win over the file.
package config

import (
	"log"
	"os"
	"strconv"

	"apu/database"

	"github.com/joho/godotenv"
)

// Config holds the settings of a period export
type Config struct {
	DB       database.Config
	Dialect  string
	Encoding string
	Workers  int
}

var defaultPorts = map[string]int{
	"mysql":    3306,
	"postgres": 5432,
}

// Load reads the given .env files (".env" when none is given) and the
// environment. A missing or unreadable file is logged and skipped.
func Load(files ...string) Config {
	values, err := godotenv.Read(files...)
	if err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
		values = nil
	}
	return FromLookup(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return values[key]
	})
}

// FromLookup builds a Config from a variable lookup function, applying
// defaults for unset values.
func FromLookup(getenv func(string) string) Config {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	dbType := get("DB_TYPE", "mysql")
	cfg := Config{
		DB: database.Config{
			Type:     dbType,
			Host:     get("DB_HOST", "localhost"),
			Port:     intValue(getenv, "DB_PORT", defaultPorts[dbType]),
			User:     get("DB_USER", "root"),
			Password: getenv("DB_PASSWORD"),
			Database: getenv("DB_NAME"),
			SSLMode:  getenv("DB_SSLMODE"),
		},
		Dialect:  get("CSV_DIALECT", "excel"),
		Encoding: get("CSV_ENCODING", "utf-8"),
		Workers:  intValue(getenv, "WORKERS", 4),
	}
	return cfg
}

func intValue(getenv func(string) string, key string, def int) int {
	raw := getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("Warning: Invalid %s %q, using default %d", key, raw, def)
		return def
	}
	return v
}
