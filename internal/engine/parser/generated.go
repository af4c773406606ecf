package parser

import (
	"bufio"
	"bytes"
	"strings"
)

const generatedScanLines = 10

// IsGeneratedFile reports whether content carries a generator banner in its
// leading lines, e.g. "Code generated ... DO NOT EDIT." or "@generated".
func IsGeneratedFile(content []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for i := 0; i < generatedScanLines && scanner.Scan(); i++ {
		line := scanner.Text()
		if strings.Contains(line, "@generated") {
			return true
		}
		if strings.Contains(line, "Code generated") && strings.Contains(line, "DO NOT EDIT") {
			return true
		}
	}
	return false
}
