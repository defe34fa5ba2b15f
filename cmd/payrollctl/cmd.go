package main

import (
	"fmt"
	"strconv"
	"time"

	"nanny-payroll-bot/internal/payroll"

	"github.com/spf13/cobra"
)

// Opener открывает приложение после разбора флагов
type Opener func(cmd *cobra.Command) (*App, error)

func SetupCommands(open Opener) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "payrollctl",
		Short:         "Nanny payroll maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("db", "", "SQLite DSN (overrides DATABASE_URL)")

	// command for reconciling the current period and printing every period
	var periodsDate string
	periodsCmd := &cobra.Command{
		Use:   "periods",
		Short: "Reconcile the current pay period and list all periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := optionalDate(periodsDate)
			if err != nil {
				return err
			}
			app, err := open(cmd)
			if err != nil {
				return err
			}
			return app.ShowPeriods(cmd.Context(), cmd.OutOrStdout(), on)
		},
	}
	periodsCmd.Flags().StringVar(&periodsDate, "date", "", "reference date YYYY-MM-DD (default today)")

	// command for marking a period paid
	var paidOn string
	markPaidCmd := &cobra.Command{
		Use:   "markpaid [period-id]",
		Short: "Mark a pay period as paid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid period id %q", args[0])
			}
			on, err := optionalDate(paidOn)
			if err != nil {
				return err
			}
			app, err := open(cmd)
			if err != nil {
				return err
			}
			return app.MarkPaid(cmd.Context(), cmd.OutOrStdout(), uint(id), on)
		},
	}
	markPaidCmd.Flags().StringVar(&paidOn, "on", "", "payment date YYYY-MM-DD (default today)")

	// command for importing schedule events from JSON
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import schedule events from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := open(cmd)
			if err != nil {
				return err
			}
			return app.Import(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	contractsCmd := &cobra.Command{
		Use:   "contracts",
		Short: "List contracts with their expiry status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := open(cmd)
			if err != nil {
				return err
			}
			return app.ListContracts(cmd.Context(), cmd.OutOrStdout())
		},
	}

	// add commands
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(markPaidCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(contractsCmd)

	return rootCmd
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, ok := payroll.ParseDate(s)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
