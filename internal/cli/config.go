package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/clausebook/internal/logging"
	"github.com/mesh-intelligence/clausebook/internal/paths"
	"github.com/mesh-intelligence/clausebook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeySeedFile = "seed_file"
	cfgKeyLogLevel = "log_level"
	cfgKeyAddr     = "addr"

	defaultBackend = types.BackendSQLite
	defaultAddr    = ":8080"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataDir  string `yaml:"data_dir,omitempty"`
	SeedFile string `yaml:"seed_file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	Addr     string `yaml:"addr,omitempty"`
}

// settings is the effective configuration after flags, environment, and
// config.yaml are merged.
type settings struct {
	configDir string
	dataDir   string
	backend   string
	seedFile  string
	logLevel  string
	addr      string
}

func (s settings) libraryConfig() types.Config {
	return types.Config{
		Backend:  s.backend,
		DataDir:  s.dataDir,
		SeedFile: s.seedFile,
	}
}

// loadSettings reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run, and merges it with flags.
// Relative paths in config.yaml are relative to configDir.
func loadSettings(configDir string, flags rootFlags) (settings, error) {
	v, err := loadConfig(configDir)
	if err != nil {
		return settings{}, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, paths.ResolveRelative(configDir, v.GetString(cfgKeyDataDir)))
	if err != nil {
		return settings{}, fmt.Errorf("resolving data dir: %w", err)
	}

	logLevel := flags.logLevel
	if logLevel == "" {
		logLevel = v.GetString(cfgKeyLogLevel)
	}

	return settings{
		configDir: configDir,
		dataDir:   dataDir,
		backend:   v.GetString(cfgKeyBackend),
		seedFile:  paths.ResolveRelative(configDir, v.GetString(cfgKeySeedFile)),
		logLevel:  logLevel,
		addr:      v.GetString(cfgKeyAddr),
	}, nil
}

// loadConfig returns a Viper instance over config.yaml in configDir.
// CLAUSEBOOK_* environment variables override file values. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), configFile{Backend: defaultBackend}); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetDefault(cfgKeyAddr, defaultAddr)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("clausebook")
	for _, key := range []string{cfgKeyBackend, cfgKeySeedFile, cfgKeyLogLevel, cfgKeyAddr} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with cfg if the file does not
// exist. An existing file is left untouched.
func writeConfigIfMissing(path string, cfg configFile) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	header := []byte("# clausebook configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// ensureDir creates dir and its parents.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
