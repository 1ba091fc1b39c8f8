// Package config exposes the process environment as a plain map with typed
// accessors, so call sites can take a snapshot once and read from it.
package config

import (
	"os"
	"strconv"
	"strings"
)

// New snapshots the current environment
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		envAsMap[key] = value
	}
	return envAsMap
}

// GetString returns the value for key, or defaultValue when unset
func GetString(config map[string]string, key string, defaultValue string) string {
	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns the value for key parsed as an integer, or defaultValue when
// unset or unparseable
func GetInt(config map[string]string, key string, defaultValue int) int {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}
	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return asInt
}
