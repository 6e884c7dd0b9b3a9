package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/petitlyon/cartomat/internal/config"
	"github.com/petitlyon/cartomat/internal/extract"
	"github.com/petitlyon/cartomat/internal/models"
	"github.com/petitlyon/cartomat/internal/render"
	"github.com/petitlyon/cartomat/internal/table"
)

var enrichOptions struct {
	input   string
	output  string
	mapPath string
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Géocode un tableau et écrit le tableau enrichi",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		log := setupLogger(cfg.Env)
		_, appMetrics := newMetrics()

		registry := extract.NewRegistry()
		if !registry.Supports(enrichOptions.input) {
			return fmt.Errorf("unsupported input file: %s", enrichOptions.input)
		}

		raw, err := registry.Extract(cmd.Context(), enrichOptions.input)
		if err != nil {
			return fmt.Errorf("reading input table: %w", err)
		}

		records, err := table.Normalize(raw, cfg.DefaultCity)
		if err != nil {
			return fmt.Errorf("normalizing input table: %w", err)
		}

		bar := progressbar.NewOptions(len(records),
			progressbar.OptionSetDescription("Geocoding"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		progress := func(done, _ int) {
			_ = bar.Set(done)
		}

		service, err := buildService(cfg, log, appMetrics, progress)
		if err != nil {
			return err
		}

		enriched, err := service.RunBatch(cmd.Context(), records)
		if err != nil {
			return fmt.Errorf("enriching table: %w", err)
		}

		out, err := os.Create(enrichOptions.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()

		if err := table.WriteCSV(out, enriched); err != nil {
			return fmt.Errorf("writing enriched table: %w", err)
		}

		if enrichOptions.mapPath != "" {
			center := models.Coordinates{Latitude: cfg.CenterLat, Longitude: cfg.CenterLng}
			mapFile, err := os.Create(enrichOptions.mapPath)
			if err != nil {
				return fmt.Errorf("creating map file: %w", err)
			}
			defer mapFile.Close()

			if err := render.Map(mapFile, enriched, center, cfg.UncertainRadiusKm); err != nil {
				return fmt.Errorf("rendering map: %w", err)
			}
		}

		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVarP(&enrichOptions.input, "input", "i", "", "source table (CSV)")
	enrichCmd.Flags().StringVarP(&enrichOptions.output, "output", "o", "", "enriched CSV destination")
	enrichCmd.Flags().StringVar(&enrichOptions.mapPath, "map", "", "also write the map page to this file")
	_ = enrichCmd.MarkFlagRequired("input")
	_ = enrichCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(enrichCmd)
}
