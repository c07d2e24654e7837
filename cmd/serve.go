package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josephlewis42/clic/core"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	serveRoot    string
	serveHostKey string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve shells over SSH on the configured port.",
	Long: `Serve shells over SSH. Users log in with the passwords in the configuration,
each session gets its own variables and working folder.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		os.Stdin.Close()
		cmd.SilenceUsage = true

		env, err := setup(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		log := env.logger.Slog()

		fs := afero.NewOsFs()
		if serveRoot != "" {
			log.Info("sessions are confined to a read-only folder", "root", serveRoot)
			fs = afero.NewReadOnlyFs(afero.NewBasePathFs(fs, serveRoot))
			env.config.StartDir = "/"
		}

		server := core.NewServer(env.config, fs, env.logger)
		if serveHostKey != "" {
			if err := server.SetHostKeyFile(serveHostKey); err != nil {
				return err
			}
		}

		errs := make(chan error, 1)
		go func() {
			errs <- server.ListenAndServe()
		}()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errs:
			return err
		case sig := <-sigs:
			log.Info("terminating", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return err
		}
		log.Info("server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "confine sessions to this folder, read-only")
	serveCmd.Flags().StringVar(&serveHostKey, "host-key", "", "PEM encoded host key, generated at start if empty")
}
