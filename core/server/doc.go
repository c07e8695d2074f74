// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure: the listen port, the API key that protects every
// route and the request read timeout.
//
// # Usage
//
// This package is embedded by core/config and read by the start command.
package server
