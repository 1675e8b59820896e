// Package keylock serialises work per key within one process.
//
// Concurrent callers for the same key share a single execution and its
// result instead of racing; callers for different keys run independently.
package keylock

import (
	"strings"

	"golang.org/x/sync/singleflight"
)

// Group guards work by key.
type Group struct {
	sf singleflight.Group
}

// Do runs fn for key unless a call for key is already in flight, in which
// case it waits for that call and returns its result. shared reports whether
// the result came from another caller's execution.
func Do[T any](g *Group, key string, fn func() (T, error)) (result T, shared bool, err error) {
	v, err, shared := g.sf.Do(key, func() (interface{}, error) {
		return fn()
	})
	if v != nil {
		result = v.(T)
	}
	return result, shared, err
}

// Key joins parts into a lock key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}
