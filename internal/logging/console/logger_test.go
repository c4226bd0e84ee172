package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("mdsite.sitegen")
	logger = logging.WithFields(logger, map[string]any{"module": "mdsite.sitegen"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"build_id": uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999"),
	})
	logger = logger.WithContext(ctx)

	logger.Info("sitegen.file.convert.success",
		"post", "post1",
		"output", "post1/a.md.html",
		"bytes", 23,
	)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO sitegen.file.convert.success build_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 bytes=23 logger=mdsite.sitegen module=mdsite.sitegen output=post1/a.md.html post=post1"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("mdsite.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_ErrorsUseErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:    &out,
		ErrWriter: &errOut,
	})

	logger := provider.GetLogger("mdsite.test")
	logger.Info("progress")
	logger.Error("failed", "error", errors.New("read a.md: no such file"))

	if strings.Contains(out.String(), "failed") {
		t.Fatalf("error entry leaked to stdout writer: %q", out.String())
	}
	if !strings.Contains(errOut.String(), `error="read a.md: no such file"`) {
		t.Fatalf("expected quoted error on err writer, got %q", errOut.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
		"":        console.LevelInfo,
		"bogus":   console.LevelInfo,
	}
	for name, want := range cases {
		if got := console.ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", name, got, want)
		}
	}
}
