package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/esmbridge/internal/core/domain"
)

type formatRecord struct {
	Target string        `json:"target"`
	Format domain.Format `json:"format"`
}

func (c *CLI) newFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <url-or-path>",
		Short: "Report the module format of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Format(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printer.Record(
				formatRecord{Target: args[0], Format: res.Format},
				c.printer.Success(args[0], c.printer.Format(res.Format.String())),
			)
		},
	}
}
