package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envServerURL           = "FLASHLY_SERVER_URL"
	envOnlineCheckInterval = "FLASHLY_ONLINE_CHECK_INTERVAL"
	envRequestTimeout      = "FLASHLY_REQUEST_TIMEOUT"
	envDataDir             = "FLASHLY_DATA_DIR"
	envDatabasePath        = "FLASHLY_DB_PATH"
	envLogFile             = "FLASHLY_LOG_FILE"
	envLogLevel            = "FLASHLY_LOG_LEVEL"
)

var lookupEnv = os.LookupEnv

// parseEnv overlays Config with FLASHLY_* variables. Values from dotenv are
// used only when the process environment does not set the same key. A
// missing dotenv file is not an error.
//
// Panics on an unreadable dotenv file or a malformed duration.
func parseEnv(cfg *Config, dotenv string, lookup func(string) (string, bool)) {
	file := map[string]string{}
	if dotenv != "" {
		m, err := godotenv.Read(dotenv)
		switch {
		case err == nil:
			file = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			panic(err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok && v != ""
	}

	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := get(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}

	str(envServerURL, &cfg.ServerURL)
	dur(envOnlineCheckInterval, &cfg.OnlineCheckInterval)
	dur(envRequestTimeout, &cfg.RequestTimeout)
	str(envDataDir, &cfg.DataDir)
	str(envDatabasePath, &cfg.DatabasePath)
	str(envLogFile, &cfg.LogFile)
	str(envLogLevel, &cfg.LogLevel)
}
