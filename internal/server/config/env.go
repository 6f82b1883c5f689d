package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. A variable
// that is unset or fails to parse leaves the current value untouched.
//
// Recognized variables:
//
//	ADDRESS                  HTTP bind address
//	DATABASE_DSN             PostgreSQL DSN
//	SECRET_KEY               JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY    Go duration string, e.g. "15m"
//	REFRESH_TOKEN_VALIDITY   Go duration string, e.g. "168h"
//	PASSWORD_MIN_LENGTH      integer
//	MIN_PARTICIPANTS         integer
//	MAX_PARTICIPANTS         integer
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("SECRET_KEY"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.AccessTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_VALIDITY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.RefreshTokenValidityDuration = d
		}
	}
	if v, ok := os.LookupEnv("PASSWORD_MIN_LENGTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.PasswordMinLength = n
		}
	}
	if v, ok := os.LookupEnv("MIN_PARTICIPANTS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.MinParticipants = n
		}
	}
	if v, ok := os.LookupEnv("MAX_PARTICIPANTS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.MaxParticipants = n
		}
	}
}
