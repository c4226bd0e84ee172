package runtimeconfig_test

import (
	"errors"
	"path/filepath"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdsite/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresPaths(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.HeaderFile = ""

	err := cfg.Validate()
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %T (%v)", err, err)
	}
	if _, ok := verrs["HeaderFile"]; !ok {
		t.Fatalf("expected HeaderFile error, got %v", verrs)
	}
}

func TestConfigValidate_RejectsTemplatesOutsideSite(t *testing.T) {
	for _, footer := range []string{"../footer.html", "/etc/footer.html"} {
		cfg := runtimeconfig.DefaultConfig()
		cfg.FooterFile = footer

		var verrs validation.Errors
		if err := cfg.Validate(); !errors.As(err, &verrs) {
			t.Fatalf("%s: expected validation.Errors, got %v", footer, err)
		}
		if _, ok := verrs["FooterFile"]; !ok {
			t.Fatalf("%s: expected FooterFile error, got %v", footer, verrs)
		}
	}
}

func TestConfigValidate_RejectsBadPattern(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Pattern = "[md"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed glob")
	}
}

func TestConfigValidate_RejectsOverlappingOutput(t *testing.T) {
	cases := map[string]struct {
		content string
		output  string
	}{
		"same dir":        {content: "content", output: "content"},
		"output is site":  {content: "content", output: "."},
		"parent of posts": {content: filepath.Join("site", "content"), output: "site"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.ContentDir = tc.content
			cfg.OutputDir = tc.output

			if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrOutputOverlapsContent) {
				t.Fatalf("expected ErrOutputOverlapsContent, got %v", err)
			}
		})
	}
}

func TestConfigValidate_AllowsSiblingOutput(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.ContentDir = "content"
	cfg.OutputDir = "content-html"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "loud"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigResolvePath(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.SiteDir = filepath.Join("srv", "blog")

	if got, want := cfg.ResolvePath("content"), filepath.Join("srv", "blog", "content"); got != want {
		t.Fatalf("ResolvePath = %q, want %q", got, want)
	}
	abs := filepath.Join(string(filepath.Separator), "tmp", "out")
	if got := cfg.ResolvePath(abs); got != abs {
		t.Fatalf("ResolvePath(abs) = %q, want %q", got, abs)
	}
}
