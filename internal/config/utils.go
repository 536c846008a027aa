package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/rclone/rclone/fs/config/obscure"
)

const obscuredPrefix = "XXX:"

// Empty values count as unset so a blank line in .env does not wipe
// a value from the YAML file.
func stringLookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func intLookup(key string) (int, bool) {
	valueStr, ok := stringLookup(key)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, false
	}
	return value, true
}

func boolLookup(key string) (bool, bool) {
	valueStr, ok := stringLookup(key)
	if !ok {
		return false, false
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, false
	}
	return value, true
}

func stringsLookup(key string) ([]string, bool) {
	valueStr, ok := stringLookup(key)
	if !ok {
		return nil, false
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values, len(values) > 0
}

// Obscure returns value in the form accepted by the secrets file.
func Obscure(value string) (string, error) {
	obscured, err := obscure.Obscure(value)
	if err != nil {
		return "", err
	}
	return obscuredPrefix + obscured, nil
}

// reveal decodes values written by Obscure and returns anything else as is.
func reveal(value string) (string, error) {
	if !strings.HasPrefix(value, obscuredPrefix) {
		return value, nil
	}
	return obscure.Reveal(strings.TrimPrefix(value, obscuredPrefix))
}
