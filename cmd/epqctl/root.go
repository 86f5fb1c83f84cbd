package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guttosm/epq-service/internal/logger"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "epqctl",
		Short: "Economic production quantity optimiser",
		Long: `epqctl derives the total cost function TC(Q) of a production lot,
solves dTC/dQ = 0 exactly and reports the optimal lot size Q* with its cost.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitWithWriter(logLevel, true, cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newOptimizeCmd(),
		newPortfolioCmd(),
		newDemandCmd(),
		newTokenCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "epqctl version %s\n", version)
		},
	}
}
