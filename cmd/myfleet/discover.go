package main

import (
	"errors"
	"fmt"
	"io"

	"myfleet/service"

	"github.com/spf13/cobra"
)

func newDiscoverCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Scan the local subnet and print the manager's address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			report, err := a.newDiscovery(false).Run(ctx)
			if report != nil && all {
				printProbeResults(cmd.OutOrStdout(), report)
			}
			if err != nil {
				var conflict *service.ConflictingManagers
				if errors.As(err, &conflict) {
					return fmt.Errorf("more than one manager on %s: %s", report.Subnet, conflict)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Manager)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "print every probed host and its role")
	return cmd
}

func printProbeResults(w io.Writer, report *service.DiscoveryReport) {
	fmt.Fprintf(w, "# local %s, subnet %s, %d hosts\n", report.Local, report.Subnet, len(report.Results))
	for _, r := range report.Results {
		role := "-"
		if r.Role != nil {
			role = string(*r.Role)
		}
		fmt.Fprintf(w, "%s\t%s\n", r.Address, role)
	}
}
