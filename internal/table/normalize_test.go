package table_test

import (
	"strings"
	"testing"

	"github.com/petitlyon/cartomat/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("fills missing canonical columns with defaults", func(t *testing.T) {
		raw := table.Raw{
			Header: []string{"Adresse"},
			Rows:   [][]string{{"12 rue de la République"}},
		}

		records, err := table.Normalize(raw, "Lyon")

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "12 rue de la République", records[0].Adresse)
		assert.Empty(t, records[0].Nom)
		assert.Empty(t, records[0].Prenom)
		assert.Empty(t, records[0].Tel)
		assert.Empty(t, records[0].Email)
		assert.Empty(t, records[0].Misc)
		assert.Equal(t, "Lyon", records[0].Ville)
	})

	t.Run("missing Adresse column is a schema failure", func(t *testing.T) {
		raw := table.Raw{
			Header: []string{"Nom", "Prenom", "Tel"},
			Rows:   [][]string{{"Dupont", "Marie", "0478000000"}},
		}

		_, err := table.Normalize(raw, "Lyon")

		require.Error(t, err)
		assert.ErrorIs(t, err, table.ErrMissingAddressColumn)
	})

	t.Run("empty Adresse cell is a schema failure", func(t *testing.T) {
		raw := table.Raw{
			Header: []string{"Nom", "Adresse"},
			Rows: [][]string{
				{"Dupont", "12 rue de la République"},
				{"Martin", ""},
			},
		}

		_, err := table.Normalize(raw, "Lyon")

		require.Error(t, err)
		assert.ErrorIs(t, err, table.ErrEmptyAddress)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("strips embedded line breaks", func(t *testing.T) {
		raw := table.Raw{
			Header: []string{"Nom", "Adresse"},
			Rows:   [][]string{{"Du\npont", "12 rue de\nla République\r"}},
		}

		records, err := table.Normalize(raw, "Lyon")

		require.NoError(t, err)
		assert.Equal(t, "Dupont", records[0].Nom)
		assert.Equal(t, "12 rue dela République", records[0].Adresse)
	})

	t.Run("keeps an explicit city", func(t *testing.T) {
		raw := table.Raw{
			Header: []string{"Adresse", "Ville"},
			Rows:   [][]string{{"4 place des Terreaux", "Villeurbanne"}},
		}

		records, err := table.Normalize(raw, "Lyon")

		require.NoError(t, err)
		assert.Equal(t, "Villeurbanne", records[0].Ville)
	})

	t.Run("tolerates ragged rows", func(t *testing.T) {
		raw := table.Raw{
			Header: []string{"Adresse", "Nom", "Tel"},
			Rows:   [][]string{{"4 place des Terreaux", "Dupont"}},
		}

		records, err := table.Normalize(raw, "Lyon")

		require.NoError(t, err)
		assert.Equal(t, "Dupont", records[0].Nom)
		assert.Empty(t, records[0].Tel)
	})
}

func TestReadCSV(t *testing.T) {
	t.Run("header plus rows", func(t *testing.T) {
		input := "Nom,Adresse\nDupont,12 rue de la République\nMartin,4 place des Terreaux\n"

		raw, err := table.ReadCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, []string{"Nom", "Adresse"}, raw.Header)
		require.Len(t, raw.Rows, 2)
		assert.Equal(t, "Martin", raw.Rows[1][0])
	})

	t.Run("empty input yields empty table", func(t *testing.T) {
		raw, err := table.ReadCSV(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, raw.Header)
		assert.Empty(t, raw.Rows)
	})

	t.Run("ragged rows are accepted", func(t *testing.T) {
		input := "Nom,Adresse\nDupont\n"

		raw, err := table.ReadCSV(strings.NewReader(input))

		require.NoError(t, err)
		require.Len(t, raw.Rows, 1)
	})
}
