/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"starcast/internal/bootstrap"
	"starcast/internal/bootstrap/logging"
	"starcast/internal/errs"
	"starcast/internal/usecase/horoscope"
)

// alertsCmd represents the send-weekly-alerts command
var alertsCmd = &cobra.Command{
	Use:   "send-weekly-alerts",
	Short: "Send the weekly reading email to every subscriber",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *horoscope.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start weekly alerts run")

		sent, err := svc.SendWeeklyAlerts(ctx)
		if err != nil {
			logging.Error(ctx, "weekly alerts run failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "send weekly alerts")
		}

		logging.Info(ctx, "weekly alerts run finished", slog.Int("sent", sent))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "weekly alerts sent: %d\n", sent); err != nil {
			return errs.Wrap(err, "write alerts output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}
