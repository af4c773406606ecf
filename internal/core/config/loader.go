package config

import (
	"deadspan/internal/core/errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a TOML or YAML project configuration, applies a sibling .env
// file and DEADSPAN_* overrides, fills defaults and validates the result.
// Every failure is a CodeConfig error.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, configError(err, "resolve config path", path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, configError(err, "read project config", abs)
	}

	var cfg Config
	if err := decode(abs, data, &cfg); err != nil {
		return nil, configError(err, "decode project config", abs)
	}
	cfg.Path = abs

	if err := loadDotEnv(filepath.Join(filepath.Dir(abs), ".env")); err != nil {
		return nil, configError(err, "load .env", abs)
	}
	ApplyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	resolvePaths(&cfg)

	if err := validateProject(&cfg); err != nil {
		return nil, configError(err, "invalid project section", abs)
	}
	if err := validateExclude(&cfg); err != nil {
		return nil, configError(err, "invalid exclude section", abs)
	}
	if err := validateAnalysis(&cfg); err != nil {
		return nil, configError(err, "invalid analysis section", abs)
	}
	if err := validateResolver(&cfg); err != nil {
		return nil, configError(err, "invalid resolver section", abs)
	}
	if err := validateOutput(&cfg); err != nil {
		return nil, configError(err, "invalid output section", abs)
	}
	if err := validateObservability(&cfg); err != nil {
		return nil, configError(err, "invalid observability section", abs)
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		_, err := toml.Decode(string(data), cfg)
		return err
	}
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func configError(err error, msg, path string) error {
	return errors.AddContext(errors.Wrap(err, errors.CodeConfig, msg), errors.CtxPath, path)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Project.Root) == "" {
		cfg.Project.Root = "."
	}
	if strings.TrimSpace(cfg.Project.Name) == "" {
		cfg.Project.Name = filepath.Base(resolveRelative(filepath.Dir(cfg.Path), cfg.Project.Root))
	}
	if len(cfg.Project.Include) == 0 {
		cfg.Project.Include = []string{"."}
	}
	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = append([]string(nil), DefaultExcludeDirs...)
	}

	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = DefaultWorkers
	}
	if cfg.Analysis.TestPatterns == nil {
		cfg.Analysis.TestPatterns = append([]string(nil), DefaultTestPatterns...)
	}
	if cfg.Analysis.OverrideNames == nil {
		cfg.Analysis.OverrideNames = []string{"toString", "dispose", "toJSON"}
	}
	if cfg.Analysis.BrandPrefix == nil {
		prefix := "_"
		cfg.Analysis.BrandPrefix = &prefix
	}
	if cfg.Analysis.BrandSuffix == nil {
		suffix := "Brand"
		cfg.Analysis.BrandSuffix = &suffix
	}
	if cfg.Analysis.IPC.NamePrefix == nil {
		prefix := "$"
		cfg.Analysis.IPC.NamePrefix = &prefix
	}
	if cfg.Analysis.IPC.FilePrefixes == nil {
		cfg.Analysis.IPC.FilePrefixes = []string{"extHost", "mainThread"}
	}

	if cfg.Resolver.QueryTimeout == 0 {
		cfg.Resolver.QueryTimeout = DefaultQueryTimeout
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = DefaultFormat
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.SnippetCache == 0 {
		cfg.Output.SnippetCache = DefaultSnippetCache
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = DefaultServiceName
	}
}
