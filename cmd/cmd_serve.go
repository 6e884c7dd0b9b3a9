package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/petitlyon/cartomat/internal/config"
	"github.com/petitlyon/cartomat/internal/extract"
	"github.com/petitlyon/cartomat/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Démarre le serveur de téléversement et de cartographie",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg := config.MustLoad()
		log := setupLogger(cfg.Env)

		reg, appMetrics := newMetrics()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		service, err := buildService(cfg, log, appMetrics, nil)
		if err != nil {
			return err
		}

		if cfg.Env == envProd {
			gin.SetMode(gin.ReleaseMode)
		}

		log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
			"version", Version,
			"primary", cfg.PrimaryProvider,
			"secondary", cfg.SecondaryProvider)

		srv := server.New(log, cfg, extract.NewRegistry(), service, reg)
		if err := srv.Run(ctx); err != nil {
			return err
		}

		log.InfoContext(ctx, "Application stopped gracefully.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
