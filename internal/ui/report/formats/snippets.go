package formats

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SnippetCache serves source lines for report excerpts, keeping the most
// recently used files in memory.
type SnippetCache struct {
	root  string
	files *lru.Cache[string, []string]
}

func NewSnippetCache(root string, size int) (*SnippetCache, error) {
	if size <= 0 {
		size = 1
	}
	files, err := lru.New[string, []string](size)
	if err != nil {
		return nil, err
	}
	return &SnippetCache{root: root, files: files}, nil
}

// Lines returns lines start..end (1-based, inclusive), clipped to max lines
// and to the file's length. ok is false when the file cannot be read.
func (c *SnippetCache) Lines(path string, start, end, max int) ([]string, bool) {
	lines, ok := c.load(path)
	if !ok {
		return nil, false
	}
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if max > 0 && end-start+1 > max {
		end = start + max - 1
	}
	if start > end {
		return nil, true
	}
	return lines[start-1 : end], true
}

func (c *SnippetCache) load(path string) ([]string, bool) {
	if lines, ok := c.files.Get(path); ok {
		return lines, true
	}
	full := path
	if !filepath.IsAbs(full) && c.root != "" {
		full = filepath.Join(c.root, filepath.FromSlash(path))
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, false
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	c.files.Add(path, lines)
	return lines, true
}

func (c *SnippetCache) Len() int {
	return c.files.Len()
}
