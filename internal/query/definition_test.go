package query

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefinition(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line",
			input: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name: "comments and blank lines",
			input: `-- Customer analytics
-- Joins customers to orders

SELECT c.customer_id,
       COUNT(o.order_id) AS total_orders
  -- indented comment
FROM customers c

LEFT JOIN orders o ON o.customer_id = c.customer_id
GROUP BY c.customer_id;
`,
			want: `SELECT c.customer_id,
       COUNT(o.order_id) AS total_orders
FROM customers c
LEFT JOIN orders o ON o.customer_id = c.customer_id
GROUP BY c.customer_id;`,
		},
		{
			name:  "trailing comment kept",
			input: "SELECT 1 -- one\n",
			want:  "SELECT 1 -- one",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDefinition(bufio.NewScanner(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ParseDefinition failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDefinition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDefinitionEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "-- only a comment\n   -- another\n"} {
		_, err := ParseDefinition(bufio.NewScanner(strings.NewReader(input)))
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("ParseDefinition(%q) error = %v, want ErrEmptyQuery", input, err)
		}
	}
}

func TestReadDefinition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.sql")
	if err := os.WriteFile(path, []byte("-- header\nSELECT now()\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sql, err := ReadDefinition(path)
	if err != nil {
		t.Fatalf("ReadDefinition failed: %v", err)
	}
	if sql != "SELECT now()" {
		t.Errorf("Expected 'SELECT now()', got %q", sql)
	}
}

func TestReadDefinitionMissing(t *testing.T) {
	_, err := ReadDefinition(filepath.Join(t.TempDir(), "missing.sql"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}

	class, _ := Describe(err)
	if class != FailureNotFound {
		t.Errorf("Expected %q, got %q", FailureNotFound, class)
	}
}

func TestReadShippedDefinition(t *testing.T) {
	sql, err := ReadDefinition(filepath.Join("..", "..", "customer_analytics.sql"))
	if err != nil {
		t.Fatalf("ReadDefinition failed: %v", err)
	}
	if strings.Contains(sql, "\n--") || strings.HasPrefix(sql, "--") {
		t.Errorf("Comment lines were not stripped:\n%s", sql)
	}
	if !strings.HasPrefix(sql, "SELECT") {
		t.Errorf("Expected a SELECT statement, got:\n%s", sql)
	}
}
