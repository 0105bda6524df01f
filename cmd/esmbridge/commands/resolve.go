package commands

import (
	"github.com/spf13/cobra"
)

type resolveRecord struct {
	Specifier string `json:"specifier"`
	URL       string `json:"url"`
}

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <specifier>",
		Short: "Resolve a specifier to a module URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Resolve(cmd.Context(), args[0], resolveOptions(cmd))
			if err != nil {
				return err
			}
			return c.printer.Record(
				resolveRecord{Specifier: args[0], URL: res.URL},
				c.printer.Success(args[0], res.URL),
			)
		},
	}
	addResolveFlags(cmd)
	return cmd
}
