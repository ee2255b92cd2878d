package env

import "os"

// Get reads an environment variable, falling back when it is unset or
// empty. Used for knobs needed before config is parsed (log format).
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
