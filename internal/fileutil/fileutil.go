// Package fileutil reads small text inputs of the command line tools.
package fileutil

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pubgo/stmtmock/internal"
)

// ReadLines returns the lines of the file at path, without line
// terminators. Empty lines are kept.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer internal.HandleClose(f)

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
