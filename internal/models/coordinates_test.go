package models_test

import (
	"testing"

	"github.com/petitlyon/cartomat/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCoordinates_DistanceKm(t *testing.T) {
	lyon := models.Coordinates{Latitude: 45.7640, Longitude: 4.8357}
	paris := models.Coordinates{Latitude: 48.8566, Longitude: 2.3522}

	// Lyon to Paris is roughly 392 km as the crow flies.
	assert.InDelta(t, 392, lyon.DistanceKm(paris), 5)

	// Same point should be 0.
	assert.InDelta(t, 0, lyon.DistanceKm(lyon), 0.001)

	// Symmetry.
	assert.InDelta(t, lyon.DistanceKm(paris), paris.DistanceKm(lyon), 0.001)

	// ~60 m apart in latitude.
	near := models.Coordinates{Latitude: 45.7640 + 0.00054, Longitude: 4.8357}
	assert.InDelta(t, 0.06, lyon.DistanceKm(near), 0.005)
}
