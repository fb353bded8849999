package devops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const DefaultSettingsFile = "fleetops.yaml"

type DatabaseSettings struct {
	Dialect        string `yaml:"dialect"`
	DSN            string `yaml:"dsn"`
	MaxConnections int    `yaml:"maxConnections"`
	LogLevel       string `yaml:"logLevel"`
}

type SlackSettings struct {
	Token        string `yaml:"token"`
	InfoChannel  string `yaml:"infoChannel"`
	ErrorChannel string `yaml:"errorChannel"`
}

type ImportSettings struct {
	S3Bucket string `yaml:"s3Bucket"`
}

type Settings struct {
	ListenAddr         string           `yaml:"listenAddr"`
	Database           DatabaseSettings `yaml:"database"`
	LegacyWorkbookPath string           `yaml:"legacyWorkbookPath"`
	// SigningSecret is base64 encoded.
	SigningSecret string         `yaml:"signingSecret"`
	Slack         SlackSettings  `yaml:"slack"`
	Import        ImportSettings `yaml:"import"`
}

func defaultSettings() Settings {
	return Settings{
		ListenAddr: "0.0.0.0:8090",
		Database: DatabaseSettings{
			Dialect:        "mysql",
			MaxConnections: 10,
			LogLevel:       "warn",
		},
	}
}

// LoadSettings reads the yaml file at path (FLEETOPS_CONFIG or
// fleetops.yaml when empty) and applies environment overrides. A missing
// file is not an error.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		path = os.Getenv("FLEETOPS_CONFIG")
	}
	if path == "" {
		path = DefaultSettingsFile
	}

	settings := defaultSettings()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	if err := settings.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) applyEnv(getenv func(string) string) error {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&s.ListenAddr, "LISTEN_ADDR")
	set(&s.Database.DSN, "DSN")
	set(&s.Database.Dialect, "DB_DIALECT")
	set(&s.Database.LogLevel, "DB_LOG_LEVEL")
	set(&s.LegacyWorkbookPath, "LEGACY_WORKBOOK_PATH")
	set(&s.SigningSecret, "SIGNING_SECRET")
	set(&s.Slack.Token, "SLACK_BOT_TOKEN")
	set(&s.Slack.InfoChannel, "SLACK_INFO_CHANNEL")
	set(&s.Slack.ErrorChannel, "SLACK_ERROR_CHANNEL")
	set(&s.Import.S3Bucket, "IMPORT_BUCKET")

	if v := getenv("DB_MAX_CONNECTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("DB_MAX_CONNECTIONS must be a positive integer, got %q", v)
		}
		s.Database.MaxConnections = n
	}
	return nil
}
