package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/mesh-intelligence/tasklist/internal/paths"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TASKLIST"

	cfgKeyBackend    = "backend"
	cfgKeyDataDir    = "data_dir"
	cfgKeyLocale     = "locale"
	cfgKeyStorageKey = "storage_key"
)

// configFile is the document written to config.yaml on first run.
type configFile struct {
	Backend    string `yaml:"backend"`
	DataDir    string `yaml:"data_dir,omitempty"`
	Locale     string `yaml:"locale,omitempty"`
	StorageKey string `yaml:"storage_key"`
}

const configHeader = `# tasklist configuration
#
# backend:     sqlite, file or memory
# data_dir:    where the backend keeps its files (overridden by --data-dir)
# locale:      en, ru, uz or a bundle in locales/ (default: from $LANG)
# storage_key: name of the stored task list
`

// loadConfig reads config.yaml from the resolved config directory. Flags
// win over TASKLIST_* variables, which win over the file. data_dir is read
// from the file only; paths.ResolveDataDir applies its own precedence.
func (a *app) loadConfig(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyStorageKey, types.DefaultStorageKey)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyLocale, cfgKeyStorageKey} {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	for _, key := range []string{cfgKeyBackend, cfgKeyLocale} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	a.configDir = dir
	a.cfg = v
	return nil
}

// ensureDefaultConfigFile creates the config directory and a default
// config.yaml when the file does not exist.
func ensureDefaultConfigFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := paths.ConfigFile(dir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		Backend:    types.BackendSQLite,
		StorageKey: types.DefaultStorageKey,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader+"\n"), data...), 0o644)
}

// storageConfig assembles the backend configuration.
func (a *app) storageConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		Backend:    a.cfg.GetString(cfgKeyBackend),
		DataDir:    dataDir,
		StorageKey: a.cfg.GetString(cfgKeyStorageKey),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}
	return cfg, nil
}
