// Package config resolves service settings (listen port, default locale,
// session limits, timeouts, rate limits) from YAML files, environment
// variables and CLI flags with precedence: CLI flags > YAML config >
// Environment variables > Defaults.
package config
