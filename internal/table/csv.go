package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/petitlyon/cartomat/internal/models"
)

// ReadCSV parses a raw table from CSV. The first row is the header; rows may
// be ragged (layout extractors produce those), so field-count checking is
// disabled.
func ReadCSV(r io.Reader) (Raw, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return Raw{}, fmt.Errorf("failed to parse CSV input: %w", err)
	}
	if len(all) == 0 {
		return Raw{}, nil
	}

	return Raw{Header: all[0], Rows: all[1:]}, nil
}

// enrichedHeader is the column set of the enriched output: the canonical
// columns in order, then the enrichment-added ones.
var enrichedHeader = []string{
	ColNom, ColPrenom, ColAdresse, ColTel, ColEmail, ColMisc, ColVille,
	"location_lat", "location_lng", "location_ele",
	"location_alt_lat", "location_alt_lng", "location_alt_ele",
	"distance_between_km",
	"is_uncertain_50", "is_uncertain_100", "is_uncertain_500",
	"distance_to_center_primary_km", "distance_to_center_secondary_km",
	"nom_display", "prenom_display", "adresse_display", "misc_display",
}

// WriteCSV writes the enriched table, canonical columns first and derived
// columns after, with empty cells for absent coordinates and distances.
func WriteCSV(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(enrichedHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Nom, rec.Prenom, rec.Adresse, rec.Tel, rec.Email, rec.Misc, rec.Ville,
		}
		row = append(row, coordCells(rec.Location)...)
		row = append(row, coordCells(rec.LocationAlt)...)
		row = append(row,
			floatCell(rec.DistanceBetweenKm),
			strconv.FormatBool(rec.IsUncertain50),
			strconv.FormatBool(rec.IsUncertain100),
			strconv.FormatBool(rec.IsUncertain500),
			floatCell(rec.DistanceToCenterPrimaryKm),
			floatCell(rec.DistanceToCenterSecondaryKm),
			rec.NomDisplay, rec.PrenomDisplay, rec.AdresseDisplay, rec.MiscDisplay,
		)

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func coordCells(coords *models.Coordinates) []string {
	if coords == nil {
		return []string{"", "", ""}
	}
	return []string{
		strconv.FormatFloat(coords.Latitude, 'f', -1, 64),
		strconv.FormatFloat(coords.Longitude, 'f', -1, 64),
		strconv.FormatFloat(coords.Elevation, 'f', -1, 64),
	}
}

func floatCell(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
