// Package config loads the application configuration.
//
// Configuration is assembled from a .env file (when present) and
// environment variables, with defaults taken from struct tags. Nested keys
// map to underscore-separated environment variables, e.g. FEED_URL,
// DATABASE_PASSWORD, ARCHIVE_ENABLED.
//
// Each core package owns its partial Config struct; this package composes
// them into the single Config handed to commands at process start.
package config
