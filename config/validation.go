package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable for the current
// environment. Defaults are acceptable everywhere except production, where
// the sensitive values must be provided explicitly.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must be numeric"}.Error())
	}
	if cfg.DBHost == "" {
		errors = append(errors, ValidationError{Field: "DB_HOST", Message: "is required"}.Error())
	}
	if cfg.DBName == "" {
		errors = append(errors, ValidationError{Field: "DB_NAME", Message: "is required"}.Error())
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: "is required"}.Error())
	}

	if IsProduction() {
		if cfg.JWTSecret == "your-secret-key" {
			errors = append(errors, ValidationError{Field: "JWT_SECRET", Message: "default value not allowed in production"}.Error())
		}
		if cfg.DBPassword == "postgres" {
			errors = append(errors, ValidationError{Field: "DB_PASSWORD", Message: "default value not allowed in production"}.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
