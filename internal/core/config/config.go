package config

import (
	"time"
)

const (
	DefaultWorkers      = 1
	DefaultQueryTimeout = 10 * time.Second
	DefaultFormat       = "text"
	DefaultSnippetCache = 256
	DefaultHistoryPath  = ".deadspan/history.db"
	DefaultServiceName  = "deadspan"
)

var SupportedFormats = []string{"text", "tsv", "json", "sarif", "markdown"}

var DefaultTestPatterns = []string{
	"**/test/**",
	"**/tests/**",
	"**/__tests__/**",
	"**/*.test.*",
	"**/*.spec.*",
	"**/*_test.go",
}

var DefaultExcludeDirs = []string{".git", "node_modules", "vendor", "dist", "out", "build"}

type Config struct {
	Project       Project             `toml:"project" yaml:"project"`
	Exclude       Exclude             `toml:"exclude" yaml:"exclude"`
	Languages     map[string]Language `toml:"languages" yaml:"languages"`
	Analysis      Analysis            `toml:"analysis" yaml:"analysis"`
	Resolver      Resolver            `toml:"resolver" yaml:"resolver"`
	Output        Output              `toml:"output" yaml:"output"`
	History       History             `toml:"history" yaml:"history"`
	Observability Observability       `toml:"observability" yaml:"observability"`

	// Path is the absolute path of the loaded file; relative paths resolve
	// against its directory.
	Path string `toml:"-" yaml:"-"`
}

type Project struct {
	Name    string   `toml:"name" yaml:"name"`
	Root    string   `toml:"root" yaml:"root"`
	Include []string `toml:"include" yaml:"include"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs" yaml:"dirs"`
	Files []string `toml:"files" yaml:"files"`
}

type Language struct {
	Enabled    *bool    `toml:"enabled" yaml:"enabled"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

type Analysis struct {
	Workers       int      `toml:"workers" yaml:"workers"`
	TestPatterns  []string `toml:"test_patterns" yaml:"test_patterns"`
	OverrideNames []string `toml:"override_names" yaml:"override_names"`
	BrandPrefix   *string  `toml:"brand_prefix" yaml:"brand_prefix"`
	BrandSuffix   *string  `toml:"brand_suffix" yaml:"brand_suffix"`
	IPC           IPC      `toml:"ipc" yaml:"ipc"`
}

// IPC excludes names starting with NamePrefix declared in files whose base
// name starts with one of FilePrefixes. An empty prefix disables the rule.
type IPC struct {
	NamePrefix   *string  `toml:"name_prefix" yaml:"name_prefix"`
	FilePrefixes []string `toml:"file_prefixes" yaml:"file_prefixes"`
}

type Resolver struct {
	QueryTimeout time.Duration `toml:"query_timeout" yaml:"query_timeout"`
	MaxQPS       float64       `toml:"max_qps" yaml:"max_qps"`
}

type Output struct {
	Format       string `toml:"format" yaml:"format"`
	Path         string `toml:"path" yaml:"path"`
	Progress     *bool  `toml:"progress" yaml:"progress"`
	SnippetCache int    `toml:"snippet_cache" yaml:"snippet_cache"`
}

type History struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

type Observability struct {
	MetricsPath   string `toml:"metrics_path" yaml:"metrics_path"`
	EnableTracing bool   `toml:"enable_tracing" yaml:"enable_tracing"`
	OTLPEndpoint  string `toml:"otlp_endpoint" yaml:"otlp_endpoint"`
	ServiceName   string `toml:"service_name" yaml:"service_name"`
}

// ProgressEnabled reports whether per-unit progress lines should be logged.
func (c *Config) ProgressEnabled() bool {
	return c.Output.Progress == nil || *c.Output.Progress
}
