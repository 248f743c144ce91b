package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultHTTPTimeoutSec = 20
	defaultEngine         = "minimal"
)

const (
	defaultUserAgent  = "mdcopy/0.1"
	configFolderName  = "mdcopy"
	configFileName    = "config.toml"
	configPathEnvName = "XDG_CONFIG_HOME"
)

type Config struct {
	DBPath        string
	Engine        string
	History       bool
	RetentionDays int
	StripScripts  bool
	Quiet         bool
	HTTPTimeout   time.Duration
	UserAgent     string
}

func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	defaultDB := filepath.Join(home, ".local", "share", "mdcopy", "history.db")

	cfg := Config{
		DBPath:        defaultDB,
		Engine:        defaultEngine,
		History:       true,
		RetentionDays: 0,
		StripScripts:  false,
		HTTPTimeout:   defaultHTTPTimeoutSec * time.Second,
		UserAgent:     defaultUserAgent,
	}

	configPath, hasConfig, err := findConfigPath(home)
	if err != nil {
		return Config{}, err
	}
	if hasConfig {
		fileCfg, err := loadFileConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)

	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeoutSec * time.Second
	}
	return cfg, nil
}

type fileConfig struct {
	DBPath        *string `toml:"db_path"`
	Engine        *string `toml:"engine"`
	History       *bool   `toml:"history"`
	RetentionDays *int    `toml:"retention_days"`
	StripScripts  *bool   `toml:"strip_scripts"`
	Quiet         *bool   `toml:"quiet"`
}

func findConfigPath(home string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, configFolderName, configFileName))
	}
	candidates = append(candidates, filepath.Join(home, ".config", configFolderName, configFileName))

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory; expected a file", candidate)
			}
			return candidate, true, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", false, fmt.Errorf("failed to read config path %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.DBPath != nil && strings.TrimSpace(*cfg.DBPath) == "" {
		return fmt.Errorf("invalid config file %q: db_path must be non-empty when provided", path)
	}
	if cfg.Engine != nil && !validEngine(*cfg.Engine) {
		return fmt.Errorf("invalid config file %q: engine must be minimal or commonmark", path)
	}
	if cfg.RetentionDays != nil && *cfg.RetentionDays < 0 {
		return fmt.Errorf("invalid config file %q: retention_days must be >= 0", path)
	}
	return nil
}

func validEngine(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "minimal", "commonmark":
		return true
	default:
		return false
	}
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.DBPath != nil {
		cfg.DBPath = *fileCfg.DBPath
	}
	if fileCfg.Engine != nil {
		cfg.Engine = strings.ToLower(strings.TrimSpace(*fileCfg.Engine))
	}
	if fileCfg.History != nil {
		cfg.History = *fileCfg.History
	}
	if fileCfg.RetentionDays != nil {
		cfg.RetentionDays = *fileCfg.RetentionDays
	}
	if fileCfg.StripScripts != nil {
		cfg.StripScripts = *fileCfg.StripScripts
	}
	if fileCfg.Quiet != nil {
		cfg.Quiet = *fileCfg.Quiet
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("MDCOPY_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("MDCOPY_ENGINE"); ok && validEngine(v) {
		cfg.Engine = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv("MDCOPY_HISTORY"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History = b
		}
	}
	if v, ok := os.LookupEnv("MDCOPY_RETENTION_DAYS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetentionDays = n
		}
	}
	if v, ok := os.LookupEnv("MDCOPY_STRIP_SCRIPTS"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StripScripts = b
		}
	}
	if v, ok := os.LookupEnv("MDCOPY_QUIET"); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Quiet = b
		}
	}
	if v, ok := os.LookupEnv("MDCOPY_HTTP_TIMEOUT_SECONDS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
	if v, ok := os.LookupEnv("MDCOPY_USER_AGENT"); ok && v != "" {
		cfg.UserAgent = v
	}
}
