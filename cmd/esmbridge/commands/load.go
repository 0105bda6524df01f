package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <specifier>",
		Short: "Resolve, classify and load a specifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Load(cmd.Context(), args[0], resolveOptions(cmd))
			if err != nil {
				return err
			}
			if c.printer.JSON() {
				return c.printer.Record(res, "")
			}

			line := c.printer.Success(res.Specifier, res.URL+" "+c.printer.Format(res.Format.String()))
			if err := c.printer.Record(res, line); err != nil {
				return err
			}
			return c.printer.Raw([]byte(res.Source))
		},
	}
	addResolveFlags(cmd)
	return cmd
}
