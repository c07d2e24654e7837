package core

import (
	"fmt"

	"github.com/josephlewis42/clic/commands"
	"github.com/josephlewis42/clic/core/config"
	"github.com/josephlewis42/clic/core/logger"
	"github.com/josephlewis42/clic/core/vars"
	"github.com/josephlewis42/clic/core/workdir"
	"github.com/spf13/afero"
)

// NewSession creates a shell with an empty variable store, starting in the
// configured folder of fs, and runs the configured startup lines.
func NewSession(cfg *config.Configuration, fs afero.Fs, log *logger.SessionLogger, out *commands.Output) (*commands.Shell, error) {
	folder, err := workdir.New(fs, cfg.StartDir)
	if err != nil {
		return nil, fmt.Errorf("start folder: %w", err)
	}

	sh := commands.NewShell(commands.DefaultRegistry(), &commands.CommandArguments{
		Variables:     vars.NewStore(),
		WorkingFolder: folder,
		Output:        out,
	}, log)
	sh.Prompt = cfg.Prompt

	sh.RunLines(cfg.Startup)
	return sh, nil
}
