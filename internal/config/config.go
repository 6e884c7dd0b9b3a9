package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the cartomat service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the upload/monitoring HTTP server.
// - UploadDir: Directory where uploaded source files are stored.
// - CachePath: Path of the persisted geocode cache (JSON).
// - DefaultCity: Locality appended to records that carry no city column.
// - PrimaryProvider / SecondaryProvider: stable provider identifier strings.
// - GoogleAPIKey: API key for the optional Google provider.
// - MinRequestInterval: minimum delay between network calls per provider.
// - CenterLat / CenterLng: reference point of the dataset.
// - UncertainRadiusKm: distance from the center beyond which a record is
//   classified as uncertain.
type Config struct {
	Env                string
	Port               int
	UploadDir          string
	CachePath          string
	DefaultCity        string
	PrimaryProvider    string
	SecondaryProvider  string
	GoogleAPIKey       string
	MinRequestInterval time.Duration
	CenterLat          float64
	CenterLng          float64
	UncertainRadiusKm  float64
}

// MustLoad loads the configuration from the environment (optionally seeded
// from a .env file) and returns a Config struct. It panics on values that
// cannot be parsed, since the process cannot run without them.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("CARTOMAT_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for the HTTP server from configuration")
	}

	interval, err := time.ParseDuration(setDefaultEnv("CARTOMAT_MIN_REQUEST_INTERVAL", "100ms"))
	if err != nil {
		panic("failed to parse minimal request interval from configuration")
	}

	centerLat, err := strconv.ParseFloat(setDefaultEnv("CARTOMAT_CENTER_LAT", "45.7452567"), 64)
	if err != nil {
		panic("failed to parse center latitude from configuration")
	}

	centerLng, err := strconv.ParseFloat(setDefaultEnv("CARTOMAT_CENTER_LNG", "4.8416748"), 64)
	if err != nil {
		panic("failed to parse center longitude from configuration")
	}

	radius, err := strconv.ParseFloat(setDefaultEnv("CARTOMAT_UNCERTAIN_RADIUS_KM", "20"), 64)
	if err != nil {
		panic("failed to parse uncertainty radius from configuration")
	}

	return &Config{
		Env:                setDefaultEnv("CARTOMAT_ENV", "production"),
		Port:               port,
		UploadDir:          setDefaultEnv("CARTOMAT_UPLOAD_DIR", os.TempDir()),
		CachePath:          setDefaultEnv("CARTOMAT_CACHE_PATH", "geocode_cache.json"),
		DefaultCity:        setDefaultEnv("CARTOMAT_DEFAULT_CITY", "Lyon"),
		PrimaryProvider:    setDefaultEnv("CARTOMAT_PRIMARY_PROVIDER", "nominatim"),
		SecondaryProvider:  setDefaultEnv("CARTOMAT_SECONDARY_PROVIDER", "arcgis"),
		GoogleAPIKey:       os.Getenv("CARTOMAT_GOOGLE_API_KEY"),
		MinRequestInterval: interval,
		CenterLat:          centerLat,
		CenterLng:          centerLng,
		UncertainRadiusKm:  radius,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
