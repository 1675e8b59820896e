package client

// Config holds configuration for the external catalog API.
type Config struct {
	// BaseURL is the API root, without trailing slash.
	BaseURL string `mapstructure:"base_url" default:"https://api.pokemontcg.io/v2"`
	// ApiKey is sent as X-Api-Key when set.
	ApiKey string `mapstructure:"api_key" default:""`
	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"4"`
	// MaxRetries is the number of retries on 429 and 5xx responses.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// TimeoutSeconds bounds one HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the card page size, capped at 250 by the API.
	PageSize int `mapstructure:"page_size" default:"250"`
}
