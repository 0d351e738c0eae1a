// Package filter applies --query expressions to command results.
//
// A query is either a JMESPath expression evaluated against the JSON form of
// the result, or $(command), in which case the JSON is piped to the command
// through sh and its trimmed stdout is printed.
package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
)

// ShellTimeout bounds a $(command) query
const ShellTimeout = 30 * time.Second

var shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)

// Query is a parsed --query value
type Query struct {
	raw   string
	shell string
	expr  *jmespath.JMESPath
}

// Parse compiles raw. Invalid JMESPath fails here, before any request is sent.
func Parse(raw string) (*Query, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if m := shellPattern.FindStringSubmatch(raw); len(m) > 1 {
		return &Query{raw: raw, shell: m[1]}, nil
	}
	expr, err := jmespath.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JMESPath expression '%s': %w", raw, err)
	}
	return &Query{raw: raw, expr: expr}, nil
}

// String returns the query as typed
func (q *Query) String() string {
	return q.raw
}

// IsShell reports whether the query runs a command
func (q *Query) IsShell() bool {
	return q.shell != ""
}

// Run evaluates the query against the JSON encoding of v
func (q *Query) Run(ctx context.Context, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value: %w", err)
	}
	if q.IsShell() {
		out, err := runShell(ctx, data, q.shell)
		if err != nil {
			return "", fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	}
	return q.search(data)
}

// search evaluates the expression over generic JSON so that field names
// follow the json tags rather than Go field names
func (q *Query) search(data []byte) (string, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	result, err := q.expr.Search(doc)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}
	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

func runShell(ctx context.Context, input []byte, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := err.Error()
		if stderr.Len() > 0 {
			msg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
