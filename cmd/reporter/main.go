package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/crawlfleet/statusd/internal/props"
	"github.com/crawlfleet/statusd/internal/reporter"
	"github.com/spf13/cobra"
)

func main() {
	reporterProps := props.NewReporterProperties()

	root := &cobra.Command{
		Use:           "reporter",
		Short:         "Report this machine's status to the crawl master",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&reporterProps.MasterURL, "master", reporterProps.MasterURL, "master server base URL")
	flags.StringVar(&reporterProps.MachineName, "name", reporterProps.MachineName, "machine name to report as")
	flags.StringVar(&reporterProps.CrawlingStatus, "status", reporterProps.CrawlingStatus, "crawling status label (idle, in_use)")
	flags.StringVar(&reporterProps.StoragePath, "storage-path", reporterProps.StoragePath, "filesystem path whose disk is reported")
	flags.DurationVar(&reporterProps.Interval, "interval", reporterProps.Interval, "time between reports")

	newReporter := func() *reporter.Reporter {
		client := &http.Client{Timeout: reporterProps.RequestTimeout}
		return reporter.New(reporterProps, client, reporter.NewSystemCollector(reporterProps.StoragePath))
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Report status on an interval until interrupted",
			RunE: func(cmd *cobra.Command, _ []string) error {
				slog.Info("Starting reporter", "master", reporterProps.MasterURL,
					"machine_name", reporterProps.MachineName, "interval", reporterProps.Interval)
				return newReporter().Run(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "once",
			Short: "Send a single status report",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return newReporter().Report(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "targets",
			Short: "Print the crawl targets handed out by the master",
			RunE: func(cmd *cobra.Command, _ []string) error {
				urls, err := newReporter().FetchTargets(cmd.Context())
				if err != nil {
					return err
				}
				for _, url := range urls {
					fmt.Fprintln(cmd.OutOrStdout(), url)
				}
				return nil
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
