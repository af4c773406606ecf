// # internal/engine/parser/registry.go
package parser

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

type LanguageSpec struct {
	Name       string
	Extensions []string
	Enabled    bool
}

type LanguageOverride struct {
	Enabled    *bool
	Extensions []string
}

func DefaultLanguageRegistry() map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"go": {
			Name:       "go",
			Extensions: []string{".go"},
			Enabled:    false,
		},
		"java": {
			Name:       "java",
			Extensions: []string{".java"},
			Enabled:    false,
		},
		"javascript": {
			Name:       "javascript",
			Extensions: []string{".js", ".cjs", ".mjs", ".jsx"},
			Enabled:    true,
		},
		"python": {
			Name:       "python",
			Extensions: []string{".py"},
			Enabled:    false,
		},
		"rust": {
			Name:       "rust",
			Extensions: []string{".rs"},
			Enabled:    false,
		},
		"tsx": {
			Name:       "tsx",
			Extensions: []string{".tsx"},
			Enabled:    true,
		},
		"typescript": {
			Name:       "typescript",
			Extensions: []string{".ts", ".mts", ".cts"},
			Enabled:    true,
		},
	}
}

func BuildLanguageRegistry(overrides map[string]LanguageOverride) (map[string]LanguageSpec, error) {
	registry := cloneLanguageRegistry(DefaultLanguageRegistry())
	for language, override := range overrides {
		spec, ok := registry[language]
		if !ok {
			return nil, fmt.Errorf("unknown language override %q", language)
		}
		if override.Enabled != nil {
			spec.Enabled = *override.Enabled
		}
		if len(override.Extensions) > 0 {
			spec.Extensions = normalizeExtensions(override.Extensions)
		}
		registry[language] = spec
	}

	if err := validateLanguageRegistry(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func cloneLanguageRegistry(in map[string]LanguageSpec) map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(in))
	for id, spec := range in {
		copySpec := spec
		copySpec.Extensions = append([]string(nil), spec.Extensions...)
		out[id] = copySpec
	}
	return out
}

func validateLanguageRegistry(registry map[string]LanguageSpec) error {
	extOwner := make(map[string]string)
	for _, id := range sortedRegistryIDs(registry) {
		spec := registry[id]
		if !spec.Enabled {
			continue
		}
		for _, ext := range normalizeExtensions(spec.Extensions) {
			if existing, ok := extOwner[ext]; ok && existing != id {
				return fmt.Errorf("duplicate extension %q owned by %q and %q", ext, existing, id)
			}
			extOwner[ext] = id
		}
	}
	return nil
}

// LanguageForPath returns the enabled language owning the file's extension.
// `.d.ts` files resolve to typescript like any other `.ts` file.
func LanguageForPath(registry map[string]LanguageSpec, filePath string) (string, bool) {
	ext := strings.ToLower(path.Ext(filePath))
	if ext == "" {
		return "", false
	}
	for _, id := range sortedRegistryIDs(registry) {
		spec := registry[id]
		if !spec.Enabled {
			continue
		}
		for _, candidate := range spec.Extensions {
			if candidate == ext {
				return id, true
			}
		}
	}
	return "", false
}

func normalizeExtensions(values []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(values))
	for _, value := range values {
		raw := strings.TrimSpace(strings.ToLower(value))
		if raw == "" {
			continue
		}
		if !strings.HasPrefix(raw, ".") {
			raw = "." + raw
		}
		if seen[raw] {
			continue
		}
		seen[raw] = true
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

func sortedRegistryIDs(registry map[string]LanguageSpec) []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
