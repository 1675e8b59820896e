// Package client is the HTTP client for the external card catalog API.
//
// It exposes paginated reads of sets and cards and a batched lookup by card
// id. Requests are throttled with a token bucket and retried with
// exponential backoff on 429 and 5xx responses. The client is stateless:
// resumption is owned by the sync orchestrator through persisted cursors.
package client
