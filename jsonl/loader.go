// Package jsonl provides JSONL file handling for test cases, responses and
// evaluation records.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/convbench"
)

// Compile-time interface verification.
var _ convbench.TestCaseLoader = (*Loader)(nil)

// Loader loads TestCase records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (4MB).
// Long multi-turn conversations fit comfortably.
const maxLineSize = 4 * 1024 * 1024

// Load reads a JSONL file and returns all TestCase records in file order.
func (l *Loader) Load(path string) ([]convbench.TestCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []convbench.TestCase
	err = scanLines(f, func(line []byte) error {
		var c convbench.TestCase
		if err := json.Unmarshal(line, &c); err != nil {
			return err
		}
		cases = append(cases, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cases, nil
}

// scanLines calls fn for every non-blank line of r. Errors returned by fn are
// prefixed with the 1-based line number.
func scanLines(r io.Reader, fn func(line []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := fn([]byte(line)); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}
