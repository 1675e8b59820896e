// Package catalog mounts catalog synchronisation on the HTTP server.
//
// Endpoints:
//
//	POST /sync         run one sync mode (mode, setId, limit)
//	GET  /sync         same, for schedulers that can only issue GET
//	GET  /sync/status  last run per mode and per-set cursor progress
package catalog
