package districting

import (
	"github.com/pkg/errors"
)

// MissingPopulationPolicy decides what happens to a graph county that has no
// row in the joined county table.
type MissingPopulationPolicy string

const (
	// MissingPopulationZero counts the county with population 0.
	MissingPopulationZero MissingPopulationPolicy = "zero"
	// MissingPopulationReject fails the build with a DataIntegrityError.
	MissingPopulationReject MissingPopulationPolicy = "reject"
)

const (
	defaultCounties  = 82
	defaultDistricts = 4
	defaultTolerance = 0.005
)

type Config struct {
	// Counties is the expected number of counties. It is only compared
	// against the graph and logged, never enforced.
	Counties          int
	Districts         int
	Tolerance         float64
	MissingPopulation MissingPopulationPolicy
}

func DefaultConfig() Config {
	return Config{
		Counties:          defaultCounties,
		Districts:         defaultDistricts,
		Tolerance:         defaultTolerance,
		MissingPopulation: MissingPopulationZero,
	}
}

func errorCoalesce(args ...error) error {
	for _, e := range args {
		if e != nil {
			return e
		}
	}
	return nil
}

func (c Config) validateDistricts() error {
	if c.Districts < 1 {
		return errors.Errorf("districts must be positive, got %d", c.Districts)
	}
	return nil
}

func (c Config) validateTolerance() error {
	if c.Tolerance < 0 || c.Tolerance >= 1 {
		return errors.Errorf("tolerance must be in [0, 1), got %g", c.Tolerance)
	}
	return nil
}

func (c Config) validatePolicy() error {
	switch c.MissingPopulation {
	case MissingPopulationZero, MissingPopulationReject:
		return nil
	default:
		return errors.Errorf("unknown missing population policy %q", c.MissingPopulation)
	}
}

func (c Config) Validate() error {
	return errorCoalesce(
		c.validateDistricts(),
		c.validateTolerance(),
		c.validatePolicy(),
	)
}
