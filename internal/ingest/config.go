package ingest

import (
	"fmt"
	"time"
)

const windowDateFormat = "2006-01-02"

// Config controls the ingestion pipeline. The date window bounds the
// provider listing query; it is configuration rather than a hardcoded
// constant so a deployment can narrow it without a rebuild.
type Config struct {
	FromDate string `yaml:"from_date" env:"INGEST_FROM_DATE" env-default:"2025-01-01"`
	ToDate   string `yaml:"to_date" env:"INGEST_TO_DATE" env-default:"2025-12-31"`

	// Controls how many sessions may be ingested concurrently within
	// a single request. 1 (the default) processes the listing
	// sequentially. Caution raising this too high: every ingestion
	// talks to the provider API, which imposes rate limits.
	IngestionParallelism int `yaml:"parallelism" env:"INGEST_PARALLELISM" env-default:"1"`

	// Timeout over an entire catalog request, listing included.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds" env:"INGEST_REQUEST_TIMEOUT_SECONDS" env-default:"600"`

	// Timeout over a single session's check/fetch/store sequence. An
	// item hitting this is skipped; the batch carries on.
	ItemTimeoutSeconds int `yaml:"item_timeout_seconds" env:"INGEST_ITEM_TIMEOUT_SECONDS" env-default:"180"`
}

// Window parses the configured date range.
func (config *Config) Window() (time.Time, time.Time, error) {
	from, err := time.Parse(windowDateFormat, config.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid ingest from_date %q: %w", config.FromDate, err)
	}

	to, err := time.Parse(windowDateFormat, config.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid ingest to_date %q: %w", config.ToDate, err)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("ingest window is inverted: %s is before %s", config.ToDate, config.FromDate)
	}

	return from, to, nil
}

func (config *Config) requestTimeout() time.Duration {
	return time.Duration(config.RequestTimeoutSeconds) * time.Second
}

func (config *Config) itemTimeout() time.Duration {
	return time.Duration(config.ItemTimeoutSeconds) * time.Second
}

func (config *Config) parallelism() int {
	if config.IngestionParallelism < 1 {
		return 1
	}

	return config.IngestionParallelism
}
