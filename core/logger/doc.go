// Package logger constructs the application's zap logger.
//
// The logger switches between a development (debug) and production
// configuration and between console and JSON encodings based on the log
// section of the configuration. HTTP handlers use WithRayID to attach the
// per-request ray id to every log line they emit.
package logger
