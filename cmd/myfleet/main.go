package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

// app is what every subcommand needs after the root command has loaded configuration.
type app struct {
	config *Config
	logger log.Logger
}

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logOutput io.Writer) *cobra.Command {
	var verbose bool
	a := &app{}

	root := &cobra.Command{
		Use:           "myfleet",
		Short:         "Manager/worker role discovery and task fan-out on the local subnet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.logger = newLogger(logOutput, verbose)
			config, err := LoadConfig()
			if err != nil {
				level.Error(a.logger).Log("msg", "Failed to load configuration", "err", err)
				return err
			}
			a.config = config
			level.Debug(a.logger).Log(
				"msg", "Configuration loaded",
				"manager_port", config.ManagerPort,
				"worker_port", config.WorkerPort,
				"redis_addr", config.RedisAddr,
				"probe_timeout", config.ProbeTimeout,
				"scan_concurrency", config.ScanConcurrency,
			)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output, including every probe result")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newManagerCmd(a),
		newWorkerCmd(a),
		newDiscoverCmd(a),
		newSendCmd(a),
	)
	return root
}

func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
