package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.trai.ch/esmbridge/internal/core/domain"
)

type checkRecord struct {
	Specifier string        `json:"specifier"`
	URL       string        `json:"url,omitempty"`
	Format    domain.Format `json:"format,omitempty"`
	Bytes     int           `json:"bytes"`
	Error     string        `json:"error,omitempty"`
}

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <specifier>...",
		Short: "Load several specifiers and report which ones fail",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			results, err := c.app.Check(cmd.Context(), args, resolveOptions(cmd))
			if err != nil && !errors.Is(err, domain.ErrCheckFailed) {
				return err
			}

			for _, r := range results {
				rec := checkRecord{Specifier: r.Specifier, URL: r.URL, Format: r.Format, Bytes: r.Bytes}
				line := c.printer.Success(r.Specifier, r.URL+" "+c.printer.Format(r.Format.String()))
				if r.Err != nil {
					rec.Error = r.Err.Error()
					line = c.printer.Failure(r.Specifier, rec.Error)
				}
				if perr := c.printer.Record(rec, line); perr != nil {
					return perr
				}
			}
			return err
		},
	}
	addResolveFlags(cmd)
	return cmd
}
