package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	// BlobKey is the name of the single persisted session blob.
	BlobKey = "skidlogg.sessions"
)

type Config struct {
	DataDir  string `yaml:"data_dir" toml:"data_dir" env:"DATA_DIR"`
	Backend  string `yaml:"backend" toml:"backend" env:"BACKEND"`
	Locale   string `yaml:"locale" toml:"locale" env:"LOCALE"`
	LogLevel string `yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFile  string `yaml:"log_file" toml:"log_file" env:"LOG_FILE"`
	LogJSON  bool   `yaml:"log_json" toml:"log_json" env:"LOG_JSON"`
	Watch    bool   `yaml:"watch" toml:"watch" env:"WATCH"`

	// LogStderr mirrors file logs to stderr; it has no effect without LogFile.
	LogStderr bool `yaml:"log_stderr" toml:"log_stderr" env:"LOG_STDERR"`

	BlobPath  string `yaml:"-" toml:"-"`
	DBPath    string `yaml:"-" toml:"-"`
	ReportDir string `yaml:"-" toml:"-"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:  dataDir,
		Backend:  BackendFile,
		Locale:   "sv-SE",
		LogLevel: "info",
		Watch:    true,
	}
	return cfg.derive()
}

// Load starts from New(dataDir), overlays the optional YAML or TOML file at
// path, then a .env file in the working directory and SKIDLOGG_* variables.
func Load(path, dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	_ = godotenv.Load()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SKIDLOGG_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.derive()
}

func decodeFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), cfg); err != nil {
			return fmt.Errorf("decode toml config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// WithDataDir moves every derived path under dir. A data dir given on the
// command line wins over the config file and the environment.
func (c Config) WithDataDir(dir string) (Config, error) {
	c.DataDir = dir
	return c.derive()
}

func (c Config) derive() (Config, error) {
	if strings.TrimSpace(c.DataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	switch c.Backend {
	case BackendFile, BackendSQLite:
	case "":
		c.Backend = BackendFile
	default:
		return Config{}, fmt.Errorf("unsupported backend %q", c.Backend)
	}
	c.BlobPath = filepath.Join(c.DataDir, BlobKey+".json")
	c.DBPath = filepath.Join(c.DataDir, ".skidlogg", "skidlogg.db")
	c.ReportDir = filepath.Join(c.DataDir, "reports")
	return c, nil
}
