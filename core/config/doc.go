// Package config loads the service configuration.
//
// Values come from a .env file (if present) and the environment, mapped as
// SECTION_KEY (SYNC_CHUNK_SIZE -> sync.chunk_size). Every field declares its
// fallback in a `default` struct tag.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Database: mysql or sqlite connection
//   - Storage: MinIO/S3 settings for the snapshot archive
//   - Log: level and format
//   - Catalog: catalog API endpoint, key, rate limit and retries
//   - Sync: chunk size, set batch size, delays and schedule
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.ChunkSize)
package config
