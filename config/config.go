package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS         = ""                  // e.g. "sandymacrame.com,www.sandymacrame.com"
	MYSQL_DSN           = ""                  // MySQL will be used if this is set
	SQLITE_FILE         = "sandy.db"          // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS        = "0.0.0.0:8080"
	UPLOADS_DIR         = "./uploads"         // Default disk bucket location
	PUBLIC_BASE_URL     = ""                  // Prepended to media URLs, e.g. "https://sandymacrame.com"
	TMP_DIR             = "/tmp"              // Scratch space for S3 bucket uploads
	PUSH_SERVER         = ""                  // Push relay for admin notifications; disabled if empty
	ADMIN_PASSWORD_HASH = ""                  // sha512 hex of the admin password; admin login disabled if empty
	SESSION_KEY         = "sandy-session-key" // TODO: refuse to boot with the default key outside DEBUG_MODE
	THUMB_SIZE          = 480
	MAX_UPLOAD_MB       = 15
	DEBUG_MODE          = true
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("UPLOADS_DIR", &UPLOADS_DIR)
	readEnvString("PUBLIC_BASE_URL", &PUBLIC_BASE_URL)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("PUSH_SERVER", &PUSH_SERVER)
	readEnvString("ADMIN_PASSWORD_HASH", &ADMIN_PASSWORD_HASH)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
