package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

type customError struct {
	msg string
}

func (e *customError) Error() string { return e.msg }

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "malformed post", err: MalformedPostError("no delimiter").Build(), expected: 11},
		{name: "unknown language", err: UnknownLanguageError("no lexer").Build(), expected: 11},
		{name: "wrapped template error", err: fmt.Errorf("render: %w", TemplateSubstitutionError("missing").Build()), expected: 11},
		{name: "internal error", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := MalformedPostError("closing delimiter not found").
		WithContext("file", "posts/broken.md").
		Build()

	quiet := NewCLIErrorAdapter(false, slog.Default()).FormatError(err)
	if !strings.Contains(quiet, "closing delimiter not found") || !strings.Contains(quiet, "file=posts/broken.md") {
		t.Errorf("expected message and file in %q", quiet)
	}

	verbose := NewCLIErrorAdapter(true, slog.Default()).FormatError(fmt.Errorf("load posts: %w", err))
	if !strings.Contains(verbose, "load posts") {
		t.Errorf("expected wrap chain in verbose output %q", verbose)
	}

	if got := NewCLIErrorAdapter(false, nil).FormatError(nil); got != "" {
		t.Errorf("expected empty string for nil error, got %q", got)
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(MalformedPostError("missing field").WithContext("field", "date").Build())

	if code != 11 {
		t.Errorf("expected exit code 11, got %d", code)
	}
	if !strings.Contains(out.String(), "field=date") {
		t.Errorf("expected field in output, got %q", out.String())
	}
	if !strings.Contains(logs.String(), "category=malformed_post") {
		t.Errorf("expected category attr in log, got %q", logs.String())
	}
}
