package commands

import (
	"github.com/spf13/cobra"
)

type sourceRecord struct {
	Target string `json:"target"`
	Source string `json:"source"`
}

func (c *CLI) newSourceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "source <url-or-path>",
		Short: "Print the source the host would evaluate for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Source(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c.printer.JSON() {
				return c.printer.Record(sourceRecord{Target: args[0], Source: string(res.Source)}, "")
			}
			return c.printer.Raw(res.Source)
		},
	}
}
