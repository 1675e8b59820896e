// Package models defines the GORM models of the catalog store.
//
// Tables:
//   - sets: catalog sets plus the price and metadata sync cursors.
//   - cards: one row per edition of a base card (edition-expanded).
//   - prices: one row per edition card, overwritten on every sync.
//   - sync_metadata: last-run status per sync mode.
package models
