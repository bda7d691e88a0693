package main

import (
	"fmt"
	"io"
	"net/http"
	"net/netip"

	"myfleet/adapters/nodehttp"
	"myfleet/domain"

	"github.com/spf13/cobra"
)

func newSendCmd(a *app) *cobra.Command {
	var (
		managerAddr string
		timeoutMs   int
	)
	cmd := &cobra.Command{
		Use:   "send TASK [ARGS...]",
		Short: "Ask the manager to run TASK on every registered worker and print the exit codes",
		Example: `  myfleet send uptime
  myfleet send --manager 10.0.0.3 --timeout-ms 2000 sh -- -c "exit 3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			var manager netip.Addr
			if managerAddr != "" {
				addr, err := netip.ParseAddr(managerAddr)
				if err != nil {
					return fmt.Errorf("--manager: %w", err)
				}
				manager = addr
			} else {
				report, err := a.newDiscovery(false).Run(ctx)
				if err != nil {
					return err
				}
				manager = report.Manager
			}

			task := domain.TaskDescriptor{Instructions: args[0], Args: args[1:]}
			result, err := nodehttp.NewDispatchClient(a.config.ManagerPort, &http.Client{}).Send(ctx, manager, task, timeoutMs)
			if err != nil {
				return err
			}
			printOutcomes(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&managerAddr, "manager", "", "manager address; discovered on the local subnet when empty")
	cmd.Flags().IntVar(&timeoutMs, "timeout-ms", 0, "per-worker timeout; the manager's default when 0")
	return cmd
}

func printOutcomes(w io.Writer, result nodehttp.DispatchResult) {
	fmt.Fprintf(w, "# dispatch %s, %d workers\n", result.DispatchID, len(result.Outcomes))
	for _, o := range result.Outcomes {
		if o.Result == nil {
			fmt.Fprintf(w, "%s\t-\t%s\n", o.Worker, o.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\n", o.Worker, *o.Result)
	}
}
