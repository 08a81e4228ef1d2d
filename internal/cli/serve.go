package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpggio/worklog/internal/app"
	"github.com/rpggio/worklog/internal/logging"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globals) *cobra.Command {
	var stdio, seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and MCP endpoint, or MCP over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if stdio {
				cfg.Transport.Mode = "stdio"
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("config: %w", err)
				}
			}
			isStdio := cfg.Transport.Mode == "stdio"

			logger, logCloser, err := logging.Open(cfg.Log.Path, cfg.Log.Level, isStdio)
			if err != nil {
				fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
			}
			defer closeQuietly(logCloser, logger)

			a, err := app.Open(app.Options{Config: cfg, Logger: logger, Version: g.version})
			if err != nil {
				return err
			}
			defer closeQuietly(a, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if seed {
				if _, err := a.Seed(ctx); err != nil {
					return err
				}
			}

			if isStdio {
				err = a.RunStdio(ctx)
			} else {
				err = a.RunHTTP(ctx)
			}
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", false, "Serve MCP over stdin/stdout (overrides transport.mode)")
	cmd.Flags().BoolVar(&seed, "seed", false, "Create the default accounts before serving")
	return cmd
}
