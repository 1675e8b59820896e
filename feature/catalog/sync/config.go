package sync

import "time"

// Config holds the sync tuning knobs.
type Config struct {
	// ChunkSize is the number of base cards processed per chunked call.
	ChunkSize int `mapstructure:"chunk_size" default:"50"`
	// SetBatchSize is how many sets full mode fetches concurrently.
	SetBatchSize int `mapstructure:"set_batch_size" default:"5"`
	// BatchDelay is the pause between set batches in full mode.
	BatchDelay time.Duration `mapstructure:"batch_delay" default:"1s"`
	// ChunkDelay is the pause between chunks in card-metadata-all.
	ChunkDelay time.Duration `mapstructure:"chunk_delay" default:"1s"`
	// MaxChunks bounds one card-metadata-all run; 0 means no bound.
	MaxChunks int `mapstructure:"max_chunks" default:"0"`
	// ScheduleEnabled starts the periodic trigger with the server.
	ScheduleEnabled bool `mapstructure:"schedule_enabled" default:"false"`
	// ScheduleInterval is the time between scheduled rounds.
	ScheduleInterval time.Duration `mapstructure:"schedule_interval" default:"15m"`
	// ScheduleModes are run in order on every scheduled round.
	ScheduleModes []string `mapstructure:"schedule_modes" default:"prices,card-metadata"`
}

func (c Config) chunkSize() int {
	if c.ChunkSize <= 0 {
		return 50
	}
	return c.ChunkSize
}

func (c Config) setBatchSize() int {
	if c.SetBatchSize <= 0 {
		return 5
	}
	return c.SetBatchSize
}
