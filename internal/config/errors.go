package config

import "fmt"

// ConfigurationError reports an invalid or incomplete engine configuration.
// Configuration errors are fatal and surfaced to the caller at startup.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}
