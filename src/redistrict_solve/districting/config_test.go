package districting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 82, cfg.Counties)
	assert.Equal(t, 4, cfg.Districts)
	assert.Equal(t, 0.005, cfg.Tolerance)
	assert.Equal(t, MissingPopulationZero, cfg.MissingPopulation)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"zero districts":     func(c *Config) { c.Districts = 0 },
		"negative tolerance": func(c *Config) { c.Tolerance = -0.1 },
		"tolerance of one":   func(c *Config) { c.Tolerance = 1 },
		"unknown policy":     func(c *Config) { c.MissingPopulation = "drop" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Tolerance = 0
	cfg.MissingPopulation = MissingPopulationReject
	assert.NoError(t, cfg.Validate())
}
