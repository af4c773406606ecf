package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gobwas/glob"
)

func validateProject(cfg *Config) error {
	info, err := os.Stat(cfg.Project.Root)
	if err != nil {
		return fmt.Errorf("project.root %q: %w", cfg.Project.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("project.root %q is not a directory", cfg.Project.Root)
	}
	for i, include := range cfg.Project.Include {
		if _, err := os.Stat(include); err != nil {
			return fmt.Errorf("project.include[%d] %q: %w", i, include, err)
		}
	}
	return nil
}

func validateExclude(cfg *Config) error {
	if err := validateGlobs("exclude.dirs", cfg.Exclude.Dirs); err != nil {
		return err
	}
	return validateGlobs("exclude.files", cfg.Exclude.Files)
}

func validateAnalysis(cfg *Config) error {
	if cfg.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be >= 1, got %d", cfg.Analysis.Workers)
	}
	return validateGlobs("analysis.test_patterns", cfg.Analysis.TestPatterns)
}

func validateResolver(cfg *Config) error {
	if cfg.Resolver.QueryTimeout < 0 {
		return fmt.Errorf("resolver.query_timeout must not be negative, got %s", cfg.Resolver.QueryTimeout)
	}
	if cfg.Resolver.MaxQPS < 0 {
		return fmt.Errorf("resolver.max_qps must not be negative, got %v", cfg.Resolver.MaxQPS)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if !IsSupportedFormat(cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of: %s", strings.Join(SupportedFormats, ", "))
	}
	if cfg.Output.SnippetCache < 0 {
		return fmt.Errorf("output.snippet_cache must not be negative, got %d", cfg.Output.SnippetCache)
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.EnableTracing && strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		return fmt.Errorf("observability.otlp_endpoint is required when enable_tracing is true")
	}
	return nil
}

func IsSupportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

func validateGlobs(field string, patterns []string) error {
	for i, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("%s[%d] must not be empty", field, i)
		}
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("%s[%d] %q: %w", field, i, pattern, err)
		}
	}
	return nil
}
