// Package archive writes raw catalog snapshots to object storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/client"

	"github.com/minio/minio-go/v7"
)

const stampLayout = "20060102T150405Z"

// Archive stores the set list and per-set card lists as JSON objects.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// New creates an archive writing into cfg.Bucket under cfg.Prefix.
func New(c storage.Client, cfg storage.Config) *Archive {
	return &Archive{
		client: c,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		now:    time.Now,
	}
}

// SetsKey is the object key of a set list snapshot taken at t.
func (a *Archive) SetsKey(t time.Time) string {
	return path.Join(a.prefix, "sets", t.UTC().Format(stampLayout)+".json")
}

// CardsKey is the object key of a set's card list snapshot taken at t.
func (a *Archive) CardsKey(setID string, t time.Time) string {
	return path.Join(a.prefix, "cards", setID, t.UTC().Format(stampLayout)+".json")
}

// Sets archives the catalog set list.
func (a *Archive) Sets(ctx context.Context, sets []client.Set) error {
	return a.put(ctx, a.SetsKey(a.now()), sets)
}

// Cards archives the raw cards of one set.
func (a *Archive) Cards(ctx context.Context, setID string, cards []client.Card) error {
	return a.put(ctx, a.CardsKey(setID, a.now()), cards)
}

func (a *Archive) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", key, err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}
