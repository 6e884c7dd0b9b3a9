package models

// Record is one row of the canonical table: the identity and address of a
// person plus the fields added by geocoding enrichment.
type Record struct {
	// Canonical columns shared by every input source.
	Nom     string
	Prenom  string
	Adresse string
	Tel     string
	Email   string
	Misc    string
	Ville   string

	// Location is the coordinate resolved by the primary provider,
	// LocationAlt the one resolved by the secondary provider. Nil means the
	// provider found nothing for the address.
	Location    *Coordinates
	LocationAlt *Coordinates

	// DistanceBetweenKm is the great-circle distance between the two provider
	// results. Nil unless both providers resolved the address.
	DistanceBetweenKm *float64

	// Disagreement flags derived from DistanceBetweenKm.
	IsUncertain50  bool // providers disagree by more than 0.05 km
	IsUncertain100 bool // providers disagree by more than 0.1 km
	IsUncertain500 bool // providers disagree by more than 0.5 km

	// Distances from each provider result to the configured reference center.
	DistanceToCenterPrimaryKm   *float64
	DistanceToCenterSecondaryKm *float64

	// Display-safe transcoded variants, used when embedding free text into
	// the marker popup template.
	NomDisplay     string
	PrenomDisplay  string
	AdresseDisplay string
	MiscDisplay    string
}

// Classification is the binary confidence contract surfaced to the renderer.
type Classification string

const (
	// ClassConfident marks a record whose providers agree and which sits
	// within the expected radius of the dataset center.
	ClassConfident Classification = "confident"
	// ClassUncertain marks a record with provider disagreement above 50 m or
	// a result outside the expected radius.
	ClassUncertain Classification = "uncertain"
)
