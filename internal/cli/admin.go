package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/rpggio/worklog/internal/domain/user"
	"github.com/spf13/cobra"
)

func newSeedCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin and employee accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			created, err := a.Seed(cmd.Context())
			if err != nil {
				return err
			}
			if len(created) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "default accounts already exist")
				return nil
			}
			for _, u := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s, %s)\n", u.Username, u.Name, u.Role)
			}
			return nil
		},
	}
}

func newUserCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var name, role string
	add := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			displayName := name
			if displayName == "" {
				displayName = args[0]
			}
			u, err := a.Users.Create(cmd.Context(), user.CreateRequest{
				Username: args[0],
				Name:     displayName,
				Role:     user.Role(role),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", u.Username, u.Role, u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "Display name (default the username)")
	add.Flags().StringVar(&role, "role", string(user.RoleEmployee), "Role: employee or manager")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			users, err := a.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USERNAME\tNAME\tROLE\tCREATED")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Username, u.Name, u.Role, u.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newKeyCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage API keys",
	}

	var description string
	issue := &cobra.Command{
		Use:   "issue <username>",
		Short: "Issue a bearer token for an account",
		Long: `Issue a new bearer token for an account and print it.

Only a hash of the token is stored, so it cannot be shown again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer closeQuietly(a, a.Logger)

			u, err := a.Users.GetByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			token, err := a.APIKeys.Issue(cmd.Context(), u.ID, description)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVarP(&description, "description", "d", "", "Note stored with the key")

	cmd.AddCommand(issue)
	return cmd
}
