// Package commands implements the CLI commands for esmbridge.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/esmbridge/internal/app"
	"go.trai.ch/esmbridge/internal/build"
	"go.trai.ch/esmbridge/internal/core/domain"
	"go.trai.ch/esmbridge/internal/ui/output"
)

// CLI represents the command line interface for esmbridge.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	printer *output.Printer
}

// Application represents the application logic interface.
type Application interface {
	Configure(jsonMode, verbose bool) bool
	Resolve(ctx context.Context, specifier string, opts app.ResolveOptions) (domain.ResolveResult, error)
	Format(ctx context.Context, target string) (domain.FormatResult, error)
	Source(ctx context.Context, target string) (domain.SourceResult, error)
	Load(ctx context.Context, specifier string, opts app.ResolveOptions) (*app.LoadResult, error)
	Check(ctx context.Context, specifiers []string, opts app.ResolveOptions) ([]app.CheckResult, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "esmbridge",
		Short:         "Load legacy packages as modern modules",
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

	rootCmd.PersistentFlags().Bool("json", false, "Print results and logs as JSON lines")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonMode, _ := cmd.Flags().GetBool("json")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.printer = output.NewPrinter(cmd.OutOrStdout(), c.app.Configure(jsonMode, verbose))
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newFormatCmd())
	rootCmd.AddCommand(c.newSourceCmd())
	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("parent", "p", "", "URL or path of the importing module (default: working directory)")
	cmd.Flags().StringSliceP("conditions", "c", nil, "Export conditions in priority order (default: configured conditions)")
}

func resolveOptions(cmd *cobra.Command) app.ResolveOptions {
	parent, _ := cmd.Flags().GetString("parent")
	conditions, _ := cmd.Flags().GetStringSlice("conditions")
	return app.ResolveOptions{ParentURL: parent, Conditions: conditions}
}
