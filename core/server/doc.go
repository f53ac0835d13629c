// Package server holds the HTTP server configuration.
//
// The fiber application itself is assembled in the serve command; this
// package only owns the configuration section so that core/config can
// compose it alongside the other partial configurations.
package server
