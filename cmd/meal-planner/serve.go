package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"meal-planner/internal/httpapi"
	"meal-planner/internal/telegram"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and, when configured, the Telegram webhook",
		Long: `Start the HTTP API.

When TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL are set, the Telegram bot
webhook is served on POST /webhook as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.cfg.LogMode == "production" || rt.cfg.LogMode == "prod" {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := httpapi.NewServer(rt.app, rt.log)
			if rt.cfg.TelegramEnabled() {
				bot, err := telegram.NewBot(rt.cfg, rt.app, rt.log)
				if err != nil {
					return fmt.Errorf("failed to initialize telegram bot: %w", err)
				}
				srv.Handle(http.MethodPost, "/webhook", bot.WebhookHandler())
			}

			rt.app.RefreshPlanIfNeeded(false)

			if addr == "" {
				addr = ":" + rt.cfg.Port
			}
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :$PORT)")
	return cmd
}
