// Package query runs an analytic query against an ingested store and
// exports its result.
package query

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CommentMarker starts a full-line comment in a query definition.
const CommentMarker = "--"

// ErrEmptyQuery is returned when a definition has no statement text.
var ErrEmptyQuery = errors.New("query definition is empty")

// ReadDefinition reads a query definition file and returns its statement.
func ReadDefinition(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sql, err := ParseDefinition(bufio.NewScanner(f))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return sql, nil
}

// ParseDefinition drops blank lines and lines whose first non-space
// characters are the comment marker, and joins what remains. Trailing
// comments on a statement line are left for the server to handle.
func ParseDefinition(sc *bufio.Scanner) (string, error) {
	var b strings.Builder
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentMarker) {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}

	sql := strings.TrimSpace(b.String())
	if sql == "" {
		return "", ErrEmptyQuery
	}
	return sql, nil
}
