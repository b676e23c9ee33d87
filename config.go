package ridership

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/aaroncutress/ridership-go/models"
)

// Holds the cleaning and aggregation policy for a pipeline run. The zero
// value is not usable; start from DefaultConfig or LoadConfig.
type Config struct {
	// Service-area bounding box. Rides with any coordinate outside the box
	// are removed during cleaning.
	ServiceArea models.BoundingBox `yaml:"service_area"`

	// Plausibility thresholds.
	MaxSpeedKPH     float64 `yaml:"max_speed_kph" validate:"gt=0"`
	MaxDistanceKM   float64 `yaml:"max_distance_km" validate:"gt=0"`
	MinDurationMins float64 `yaml:"min_duration_mins" validate:"gte=0"`
	MaxDurationHrs  float64 `yaml:"max_duration_hrs" validate:"gt=0"`

	// Truncation size for top-N ranking aggregations.
	TopN int `yaml:"top_n" validate:"gt=0"`
}

// Returns the default configuration: the Chicago-area service box and the
// standard plausibility thresholds.
func DefaultConfig() Config {
	return Config{
		ServiceArea: models.BoundingBox{
			MinLat: 41.6,
			MaxLat: 42.1,
			MinLng: -87.9,
			MaxLng: -87.5,
		},
		MaxSpeedKPH:     35,
		MaxDistanceKM:   15,
		MinDurationMins: 1,
		MaxDurationHrs:  24,
		TopN:            20,
	}
}

// Loads and validates a configuration from a YAML file. Options absent from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.ServiceArea.IsZero() {
		cfg.ServiceArea = DefaultConfig().ServiceArea
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, err
	}
	if err := v.Struct(cfg.ServiceArea); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
