package commands

import (
	"strings"

	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Site command loggers live under mdsite.commands.<group>, next to the
// mdsite.sitegen driver logger.
const commandModuleRoot = "mdsite.commands"

// CommandLogger returns the logger for one command group ("site" for build
// and clean). Entries carry component=command and the group name.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "site"
	}
	return logging.WithFields(logging.ModuleLogger(provider, commandModuleRoot+"."+group), map[string]any{
		"component":      "command",
		"command_module": group,
	})
}

// EnsureLogger substitutes a no-op logger for nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
