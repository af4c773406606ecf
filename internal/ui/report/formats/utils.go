package formats

import (
	"path/filepath"
	"strconv"
	"strings"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// relativeURI returns a forward-slash path relative to root. Paths that are
// already relative are only slash-normalized.
func relativeURI(root, path string) string {
	if root != "" && filepath.IsAbs(path) {
		if rel, err := filepath.Rel(root, path); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func signed(n int) string {
	if n > 0 {
		return "+" + itoa(n)
	}
	return itoa(n)
}
