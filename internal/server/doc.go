// Package server runs the HTTP server of the site forms backend.
//
// It owns startup, signal handling and graceful shutdown: on SIGTERM, SIGINT
// or SIGQUIT the server stops accepting connections and waits for in-flight
// requests before returning.
package server
