package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: DEADSPAN_[SECTION]_[KEY] (e.g., DEADSPAN_ANALYSIS_WORKERS).
func ApplyEnvOverrides(cfg *Config) {
	// Project
	setEnvString(&cfg.Project.Name, "DEADSPAN_PROJECT_NAME")
	setEnvString(&cfg.Project.Root, "DEADSPAN_PROJECT_ROOT")

	// Analysis
	setEnvInt(&cfg.Analysis.Workers, "DEADSPAN_ANALYSIS_WORKERS")

	// Resolver
	setEnvDuration(&cfg.Resolver.QueryTimeout, "DEADSPAN_RESOLVER_QUERY_TIMEOUT")
	setEnvFloat64(&cfg.Resolver.MaxQPS, "DEADSPAN_RESOLVER_MAX_QPS")

	// Output
	setEnvString(&cfg.Output.Format, "DEADSPAN_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "DEADSPAN_OUTPUT_PATH")
	setEnvInt(&cfg.Output.SnippetCache, "DEADSPAN_OUTPUT_SNIPPET_CACHE")

	// History
	setEnvBool(&cfg.History.Enabled, "DEADSPAN_HISTORY_ENABLED")
	setEnvString(&cfg.History.Path, "DEADSPAN_HISTORY_PATH")

	// Observability
	setEnvString(&cfg.Observability.MetricsPath, "DEADSPAN_OBSERVABILITY_METRICS_PATH")
	setEnvBool(&cfg.Observability.EnableTracing, "DEADSPAN_OBSERVABILITY_ENABLE_TRACING")
	setEnvString(&cfg.Observability.OTLPEndpoint, "DEADSPAN_OBSERVABILITY_OTLP_ENDPOINT")
	setEnvString(&cfg.Observability.ServiceName, "DEADSPAN_OBSERVABILITY_SERVICE_NAME")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = d
		}
	}
}
