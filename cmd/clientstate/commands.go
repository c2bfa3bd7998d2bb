package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/incomeclarity/clientstate/pkg/logger"
	"github.com/incomeclarity/clientstate/pkg/session"
)

var errUnknownOutput = errors.New("clientstate: unknown output format")

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session state and the health of every managed key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd, session.WithClearOnCorruption(false))
			if err != nil {
				return err
			}
			defer a.Close()

			return writeText(cmd.OutOrStdout(), buildReport(a))
		},
	}
}

func newInspectCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a machine-readable storage report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains([]string{"json", "yaml"}, output) {
				return fmt.Errorf("%w: %q", errUnknownOutput, output)
			}

			a, err := flags.open(cmd, session.WithClearOnCorruption(false))
			if err != nil {
				return err
			}
			defer a.Close()

			rep := buildReport(a)
			out := cmd.OutOrStdout()
			if output == "yaml" {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(rep); err != nil {
					return err
				}
				return enc.Close()
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func newCleanupCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove every managed key whose value is corrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := guardProduction(cmd, force); err != nil {
				return err
			}

			report := a.gateway.CleanupCorruptedStorage()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "run %s: checked %d, removed %d\n", report.RunID, len(report.Checked), len(report.Removed))
			for _, key := range report.Removed {
				fmt.Fprintf(out, "removed %s\n", key)
			}
			if len(report.Errors) == 0 {
				return nil
			}

			errs := make([]error, 0, len(report.Errors))
			for key, err := range report.Errors {
				a.logger.Error("cleanup error", logger.StorageKey(key), logger.Error(err))
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "allow running against production")
	return cmd
}

func newClearCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Log out by removing the session and cached credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := guardProduction(cmd, force); err != nil {
				return err
			}

			ctx := cmd.Context()
			if rec := a.gateway.GetSession(); rec != nil {
				ctx = session.WithContext(ctx, rec)
			}

			a.gateway.ClearSession()
			a.logger.InfoContext(ctx, "session cleared", logger.Event("logout"), logger.Component("cli"))
			fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "allow running against production")
	return cmd
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clientstate version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
