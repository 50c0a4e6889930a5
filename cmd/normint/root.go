package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	envLogLevel = "NORMINT_LOG_LEVEL"
	envWorkers  = "NORMINT_WORKERS"
)

type rootOpts struct {
	logLevel string
	log      *logrus.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOpts{log: logrus.New()}
	opts.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cmd := &cobra.Command{
		Use:           "normint",
		Short:         "Integrate gradient fields into scalar fields",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configureLogger(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info",
		"Log level (panic, fatal, error, warn, info, debug, trace). Falls back to $"+envLogLevel+".")

	cmd.AddCommand(
		newVersionCommand(),
		newDemoCommand(opts),
	)
	return cmd
}

func (o *rootOpts) configureLogger(cmd *cobra.Command) error {
	level := o.logLevel
	if !cmd.Flags().Changed("log-level") {
		if v, ok := os.LookupEnv(envLogLevel); ok {
			level = v
		}
	}

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	o.log.SetLevel(lvl)
	o.log.SetOutput(cmd.ErrOrStderr())
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "normint %s\n", version)
		},
	}
}
