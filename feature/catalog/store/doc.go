// Package store persists catalog rows and per-set sync cursors.
//
// Upserts are keyed on primary id and overwrite every listed column, so a
// chunk can be applied any number of times with the same result. Cursor
// moves are compare-and-set against the value the caller read; a mismatch
// surfaces as ErrCursorConflict and leaves the row untouched.
package store
