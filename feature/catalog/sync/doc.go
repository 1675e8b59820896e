// Package sync drives catalog synchronisation.
//
// An Orchestrator runs one mode per call. The chunked modes (prices and
// card-metadata) do a bounded slice of one set per call and persist a cursor,
// so calls can be repeated until every set has completed a pass. Each chunk
// commits its rows and its cursor move in one transaction; a failed fetch or
// write leaves the cursor where it was and the next call retries the same
// offset.
package sync
