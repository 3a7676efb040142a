// Package dotenv loads optional .env files for local development. Real
// deployments set environment variables directly.
package dotenv

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error, and variables already present in the
// environment always win over the file.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file %q: %w", path, err)
	}

	for _, raw := range strings.Split(string(data), "\n") {
		key, val, ok := parseLine(raw)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, val); err != nil {
			return fmt.Errorf("set env %q from %q: %w", key, path, err)
		}
	}
	return nil
}

// parseLine extracts a key/value pair from one dotenv line. Comments,
// blank lines, and lines without a key are skipped.
func parseLine(raw string) (key, val string, ok bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, val, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, unquote(strings.TrimSpace(val)), true
}

func unquote(val string) string {
	if len(val) < 2 {
		return val
	}
	if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
		return val[1 : len(val)-1]
	}
	return val
}
