package config

import (
	"path/filepath"
	"strings"
)

// resolvePaths makes every configured path absolute against the config file's
// directory. Include roots resolve against the project root.
func resolvePaths(cfg *Config) {
	base := filepath.Dir(cfg.Path)
	cfg.Project.Root = resolveRelative(base, cfg.Project.Root)
	for i, include := range cfg.Project.Include {
		cfg.Project.Include[i] = resolveRelative(cfg.Project.Root, include)
	}
	cfg.History.Path = resolveRelative(base, cfg.History.Path)
	if strings.TrimSpace(cfg.Output.Path) != "" {
		cfg.Output.Path = resolveRelative(base, cfg.Output.Path)
	}
	if strings.TrimSpace(cfg.Observability.MetricsPath) != "" {
		cfg.Observability.MetricsPath = resolveRelative(base, cfg.Observability.MetricsPath)
	}
}

func resolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}
