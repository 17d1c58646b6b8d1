// Package config provides centralized configuration management for the dashboard.
// It loads configuration from multiple sources, validates it, and exposes a
// typed struct to the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values from struct tags (lowest priority)
//
// # Environment Variables
//
// All environment variables use the ECOMDASH_ prefix followed by the section name:
//
//	ECOMDASH_SERVER_PORT=8080
//	ECOMDASH_DATASET_SOURCE=data/all_data.csv
//	ECOMDASH_LOGGING_LEVEL=debug
//	ECOMDASH_TELEMETRY_TRACE_EXPORTER=stdout
//
// The config file is looked up at ECOMDASH_CONFIG_FILE, then config.yaml and
// configs/config.yaml in the working directory.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
// Tests use Default() to get a valid configuration without touching the
// environment.
package config
