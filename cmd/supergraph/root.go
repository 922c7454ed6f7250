package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supergraph [sub-command]",
		Short: "Resolve the subgraphs of a federated GraphQL supergraph",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := getBaseLogger(cmd)
			if err != nil {
				return fmt.Errorf("could not retrieve logger: %w", err)
			}
			slog.SetDefault(logger)
			return nil
		},
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	registerLoggingFlags(cmd)
	cmd.AddCommand(newResolveCommand())

	return cmd
}

func registerLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("loglevel", "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("logformat", "text", "set the log format (text, json)")
}

// getBaseLogger logs to stderr, stdout carries the command output
func getBaseLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := getLoggerLevel(cmd)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format := cmd.Flag("logformat").Value.String(); format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	return slog.New(handler), nil
}

func getLoggerLevel(cmd *cobra.Command) (slog.Level, error) {
	switch logLevel := cmd.Flag("loglevel").Value.String(); logLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", logLevel)
	}
}
