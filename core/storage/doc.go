// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface so that the catalog
// snapshot archive can be tested against a mock (see core/storage/mocks).
// Both AWS S3 and self-hosted MinIO are supported.
//
// # Operations
//
//   - BucketExists / MakeBucket: ensure the snapshot bucket is present.
//   - PutObject: upload a raw catalog payload.
//   - GetObject: read a snapshot back (used for replays and tests).
//   - ListObjects: list snapshots under a prefix.
//   - RemoveObject: drop a single snapshot.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage); err != nil { ... }
package storage
