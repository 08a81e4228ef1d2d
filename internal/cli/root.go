// Package cli implements the worklog command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/worklog/internal/app"
	"github.com/rpggio/worklog/internal/config"
	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/rpggio/worklog/internal/logging"
	"github.com/spf13/cobra"
)

var errNoUser = errors.New("no user: pass --user or set auth.default_user")

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	username   string
	version    string
}

// NewRootCommand builds the worklog command tree.
func NewRootCommand(version string) *cobra.Command {
	g := &globals{version: version}

	root := &cobra.Command{
		Use:   "worklog",
		Short: "worklog - shared daily task log",
		Long: `worklog records what each employee worked on, day by day.

Employees write their own tasks inside a short edit window; managers read every
employee's tasks as a calendar, a year/month/week/day hierarchy or a CSV export.
The same store is served over a REST API and as MCP tools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to a YAML config file (default $WORKLOG_CONFIG_PATH)")
	root.PersistentFlags().StringVarP(&g.username, "user", "u", "", "Act as this username (default auth.default_user)")

	root.AddCommand(
		newServeCmd(g),
		newSeedCmd(g),
		newCalendarCmd(g),
		newHierarchyCmd(g),
		newListCmd(g),
		newExportCmd(g),
		newUserCmd(g),
		newKeyCmd(g),
		newVersionCmd(g),
	)
	return root
}

// Execute runs the root command and reports any error on stderr.
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (g *globals) loadConfig() (config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	return config.Load()
}

// open loads config and opens the stack for a one-shot command. Logs go to
// stderr so command output stays clean.
func (g *globals) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return app.Open(app.Options{
		Config:  cfg,
		Logger:  logging.New(cmd.ErrOrStderr(), "warn"),
		Version: g.version,
	})
}

// viewer resolves the acting user from --user or the configured default.
func (g *globals) viewer(cmd *cobra.Command, a *app.App) (*user.User, error) {
	username := g.username
	if username == "" {
		username = a.Config.Auth.DefaultUser
	}
	if username == "" {
		return nil, errNoUser
	}
	return a.Users.GetByUsername(cmd.Context(), username)
}

func newVersionCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the worklog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "worklog %s\n", g.version)
		},
	}
}

func closeQuietly(c io.Closer, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", "error", err)
	}
}
