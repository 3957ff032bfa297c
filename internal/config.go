package internal

import (
	"fmt"

	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/api"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/ingest"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/store"
	"github.com/HighCheeseBaseball/trackman-portal-backend/internal/trackman"
	"github.com/ilyakaznacheev/cleanenv"
)

// PortalConfig is the top-level configuration for the portal backend,
// populated from a YAML file and/or environment variables. Each
// service owns the shape of its section.
type PortalConfig struct {
	API         api.RestConfig  `yaml:"api"`
	TrackMan    trackman.Config `yaml:"trackman"`
	ObjectStore store.S3Config  `yaml:"object_store"`
	Ingest      ingest.Config   `yaml:"ingest"`

	// Local directory used as the delivery fallback for recordings
	// which predate the object store.
	VideosDirPath string `yaml:"videos_dir" env:"VIDEOS_DIR" env-default:"videos"`

	// Path of the sqlite database holding portal accounts.
	UserDatabasePath string `yaml:"user_database" env:"USER_DB_PATH" env-default:"portal-users.db"`
}

// LoadFromFile populates the config from a YAML file, with environment
// variables taking precedence over file values.
func (config *PortalConfig) LoadFromFile(configPath string) error {
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	return nil
}

// LoadFromEnv populates the config purely from environment variables.
func (config *PortalConfig) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	return nil
}
