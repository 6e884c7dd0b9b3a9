// Package table defines the canonical tabular schema every input source is
// normalized into, and the CSV codec for reading raw tables and writing
// enriched ones.
package table

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petitlyon/cartomat/internal/models"
)

// Canonical column names, in output order. Every input source is reduced to
// this schema before enrichment.
const (
	ColNom     = "Nom"
	ColPrenom  = "Prenom"
	ColAdresse = "Adresse"
	ColTel     = "Tel"
	ColEmail   = "Email"
	ColMisc    = "Misc"
	ColVille   = "Ville"
)

// Raw is an extracted table before normalization: a header row and data
// rows, with whatever columns the source happened to contain.
type Raw struct {
	Header []string
	Rows   [][]string
}

var (
	// ErrMissingAddressColumn reports a raw table without an Adresse column.
	// The address has no safe default, so this is a hard schema failure
	// raised before any geocoding attempt.
	ErrMissingAddressColumn = errors.New("input table has no Adresse column")
	// ErrEmptyAddress reports a record whose Adresse cell is empty.
	ErrEmptyAddress = errors.New("record has an empty Adresse cell")
)

// Normalize reduces a raw table to the canonical record set. The Adresse
// column must exist and be non-empty on every row; every other canonical
// column is inserted with an empty-string default when missing, except Ville
// which defaults to defaultCity. Embedded line breaks are stripped from all
// cells, since addresses extracted from layout-based sources routinely
// contain spurious ones that must not reach the geocoder.
func Normalize(raw Raw, defaultCity string) ([]models.Record, error) {
	index := make(map[string]int, len(raw.Header))
	for i, name := range raw.Header {
		index[strings.TrimSpace(name)] = i
	}

	if _, ok := index[ColAdresse]; !ok {
		return nil, ErrMissingAddressColumn
	}

	cell := func(row []string, column string) string {
		idx, ok := index[column]
		if !ok || idx >= len(row) {
			return ""
		}
		return stripLineBreaks(row[idx])
	}

	records := make([]models.Record, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		record := models.Record{
			Nom:     cell(row, ColNom),
			Prenom:  cell(row, ColPrenom),
			Adresse: cell(row, ColAdresse),
			Tel:     cell(row, ColTel),
			Email:   cell(row, ColEmail),
			Misc:    cell(row, ColMisc),
			Ville:   cell(row, ColVille),
		}
		if record.Adresse == "" {
			return nil, fmt.Errorf("%w: row %d", ErrEmptyAddress, i+1)
		}
		if record.Ville == "" {
			record.Ville = defaultCity
		}
		records = append(records, record)
	}

	return records, nil
}

func stripLineBreaks(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(s)
}
