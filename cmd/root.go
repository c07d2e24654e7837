package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/josephlewis42/clic/core"
	"github.com/josephlewis42/clic/core/config"
	"github.com/josephlewis42/clic/core/logger"
	"github.com/josephlewis42/clic/core/vars"
	"github.com/spf13/cobra"
)

var cfgPath string

// configDir returns the directory holding config.yaml.
func configDir() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clic"), nil
}

func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	configuration, err := config.Load(dir)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "No configuration in %s, using defaults. Run \"clic init\" to create one.\n", dir)
		return config.Default(), nil
	}

	return configuration, err
}

// environment is the state shared by commands that run shells.
type environment struct {
	config *config.Configuration
	logger *logger.Logger

	appLog io.Closer
}

func (e *environment) Close() error {
	if e.appLog == nil {
		return nil
	}
	return e.appLog.Close()
}

// setup loads the configuration, applies its locale and starts logging to
// stderr and the application log.
func setup(cmd *cobra.Command) (*environment, error) {
	configuration, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	tag, err := configuration.LocaleTag()
	if err != nil {
		return nil, err
	}
	vars.SetLocale(tag)

	level, err := logger.ParseLevel(configuration.LogLevel)
	if err != nil {
		return nil, err
	}

	appLog, err := configuration.OpenAppLog()
	if err != nil {
		return nil, err
	}

	return &environment{
		config: configuration,
		logger: logger.New(
			logger.NewTextHandler(cmd.ErrOrStderr(), level),
			logger.NewJSONLinesHandler(appLog),
		),
		appLog: appLog,
	}, nil
}

// exitStatus is returned by commands that finish with a shell status.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func statusError(status int) error {
	if status == 0 {
		return nil
	}
	return exitStatus(status)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clic",
	Short: "Command line interface with typed variables",
	Long: `clic is an interactive shell. Lines are split into a command and its
arguments, $name references are replaced with the value of the variable name.
Variables are strings, doubles, bools or operations computed from a double.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE:          runShell,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	var status exitStatus
	if errors.As(err, &status) {
		os.Exit(core.ExitCode(int(status)))
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory (default is $XDG_CONFIG_HOME/clic)")
}
