package commands

import (
	"strings"

	"github.com/goliatone/go-blogdata/internal/logging"
	"github.com/goliatone/go-blogdata/pkg/interfaces"
)

const commandModuleRoot = "blogdata.commands"

// CommandLogger returns a logger scoped to blogdata.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
