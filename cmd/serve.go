/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/robfig/cron"
	"github.com/spf13/cobra"

	"starcast/internal/bootstrap"
	"starcast/internal/bootstrap/logging"
	"starcast/internal/errs"
	"starcast/internal/transport/httpapi"
	"starcast/internal/usecase/horoscope"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the horoscope HTTP server",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *horoscope.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		addr, _ := cmd.Flags().GetString("addr")
		addr = strings.TrimSpace(addr)
		if addr == "" {
			addr = app.Config.Server.Addr
		}

		server := &http.Server{
			Addr:         addr,
			Handler:      httpapi.NewRouter(svc, app.Config.Server.PublicURL),
			ReadTimeout:  app.Config.Server.ReadTimeout,
			WriteTimeout: app.Config.Server.WriteTimeout,
		}

		schedule := strings.TrimSpace(app.Config.Alerts.Schedule)
		if schedule != "" {
			scheduler := cron.New()
			if err := scheduler.AddFunc(schedule, func() {
				sent, err := svc.SendWeeklyAlerts(ctx)
				if err != nil {
					logging.Error(ctx, "scheduled weekly alerts failed", slog.Any("err", errs.Loggable(err)))
					return
				}
				logging.Info(ctx, "scheduled weekly alerts sent", slog.Int("sent", sent))
			}); err != nil {
				return errs.Wrap(err, "schedule weekly alerts")
			}
			scheduler.Start()
			defer scheduler.Stop()

			logging.Info(ctx, "weekly alerts scheduled", slog.String("schedule", schedule))
		}

		logging.Info(
			ctx,
			"horoscope server started",
			slog.String("addr", addr),
			slog.String("public_url", app.Config.Server.PublicURL),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "horoscope server failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "serve horoscope api")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (defaults to server.addr from config)")
}
