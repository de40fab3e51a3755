package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ProductRadar/internal/app"
	"ProductRadar/internal/config"
	"ProductRadar/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "productradar",
		Short:         "Product Hunt analysis reports for Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the yaml config file")

	root.AddCommand(
		newDaemonCmd(&configPath),
		newRunCmd(&configPath),
		newTestCmd(&configPath),
		newHistoryCmd(&configPath),
	)
	return root
}

func buildApp(configPath string) (*app.Application, error) {
	cfg := config.Load(configPath)
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger)
}

func newDaemonCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the scheduler until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.RunDaemon(cmd.Context())
		},
	}
}

func newRunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "run {daily|weekly|monthly}",
		Short:     "Generate and publish one report immediately",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"daily", "weekly", "monthly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.RunManual(cmd.Context(), args[0])
		},
	}
}

func newTestCmd(configPath *string) *cobra.Command {
	var loud bool

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Probe Telegram, Product Hunt and the analysis backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer application.Close()

			if !application.TestConnections(cmd.Context(), !loud) {
				return fmt.Errorf("connectivity test failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&loud, "loud", false, "post the test results to the channel")
	return cmd
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:       "history {daily|weekly|monthly}",
		Short:     "Show stored run records for one period",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"daily", "weekly", "monthly"},
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApp(*configPath)
			if err != nil {
				return err
			}
			defer application.Close()

			lines, err := application.History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum records to show")
	return cmd
}
