// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber app; this package only defines the
// settings it reads: listen port, the API key guarding the sync endpoint,
// and the request body limit.
package server
