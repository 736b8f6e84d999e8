// Package commands implements the CLI commands for forma.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/forma/internal/app"
	"go.trai.ch/forma/internal/build"
	"go.trai.ch/forma/internal/core/domain"
)

// CLI represents the command line interface for forma.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance over the application components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "forma",
		Short:         "Derive base, toe and heel solids from design parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if on, _ := cmd.Flags().GetBool("log-json"); on {
			if l, ok := c.Logger.(interface{ SetJSON(bool) }); ok {
				l.SetJSON(true)
			}
		}
	}

	cli := &CLI{
		components: c,
		rootCmd:    rootCmd,
	}

	rootCmd.AddCommand(cli.newBuildCmd())
	rootCmd.AddCommand(cli.newExportCmd())
	rootCmd.AddCommand(cli.newServeCmd())
	rootCmd.AddCommand(cli.newWatchCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetInput sets the input stream read by serve.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// addPartFlags registers the flags shared by commands that select parts.
func addPartFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("parts", "p", partNames(domain.AllParts()), "Parts to include (base, toe, heel)")
}

func partNames(parts []domain.PartName) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// partSet enables the parts named by the --parts flag.
func partSet(cmd *cobra.Command) (domain.PartSet, error) {
	names, _ := cmd.Flags().GetStringSlice("parts")
	set := domain.PartSet{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		part, err := domain.ParsePartName(n)
		if err != nil {
			return nil, err
		}
		set[part] = domain.PartFlags{Enabled: true}
	}
	return set, nil
}

// paramsPath returns the optional params file argument.
func paramsPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// request runs req to completion and returns its terminal response. Errors
// were already logged by the app, so they come back marked ErrRequestFailed.
func (c *CLI) request(ctx context.Context, req domain.Request) (domain.Response, error) {
	var terminal domain.Response
	c.components.App.Handle(ctx, req, func(resp domain.Response) {
		if resp.Type.Terminal() {
			terminal = resp
		}
	})
	if terminal.Type == domain.ResponseError {
		return terminal, errors.Join(domain.ErrRequestFailed, errors.New(terminal.Text))
	}
	return terminal, nil
}
