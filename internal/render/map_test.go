package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/petitlyon/cartomat/internal/models"
	"github.com/petitlyon/cartomat/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	center := models.Coordinates{Latitude: 45.7452567, Longitude: 4.8416748}

	confident := models.Record{
		NomDisplay: `D\x00u\x00p\x00o\x00n\x00t\x00`,
		Tel:        "0478000000",
		Location:   &models.Coordinates{Latitude: 45.7646, Longitude: 4.8348},
	}
	uncertain := models.Record{
		NomDisplay:    `M\x00a\x00r\x00t\x00i\x00n\x00`,
		Location:      &models.Coordinates{Latitude: 45.7578, Longitude: 4.8320},
		IsUncertain50: true,
	}
	unlocated := models.Record{Nom: "Perdu"}

	var buf bytes.Buffer
	err := render.Map(&buf, []models.Record{confident, uncertain, unlocated}, center, 20)
	require.NoError(t, err)

	page := buf.String()

	assert.Contains(t, page, "leaflet")
	assert.Contains(t, page, "45.7646")
	assert.Contains(t, page, "45.7578")
	assert.Contains(t, page, "#2a81cb")
	assert.Contains(t, page, "#cb2b3e")
	assert.Contains(t, page, "Géolocalisation incertaine")
	assert.NotContains(t, page, "Perdu", "records without a location are not drawn")

	// Two markers in the payload.
	assert.Equal(t, 2, strings.Count(page, `"popup"`))
}
