package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to trigger syncs over HTTP.
	// An empty key disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitKB caps request bodies accepted by the sync endpoint.
	BodyLimitKB int `mapstructure:"body_limit_kb" default:"64"`
}

// BodyLimit returns the body limit in bytes, falling back to 64KB.
func (c Config) BodyLimit() int {
	if c.BodyLimitKB <= 0 {
		return 64 * 1024
	}
	return c.BodyLimitKB * 1024
}
