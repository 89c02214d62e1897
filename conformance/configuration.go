package conformance

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	geoconform "github.com/geoapi/geoconform"
)

// Configuration holds the settings of a conformance run. It is read from
// YAML, for example:
//
//	requireMandatoryAttributes: false
//	tolerance: 1e-9
//	isInverseTransformSupported: true
//	transformTolerance: 0.01
//
// Tolerance is relative and applies to object validators. TransformTolerance
// is in metres and applies to map projection tests; zero keeps the default.
type Configuration struct {
	RequireMandatoryAttributes  bool    `yaml:"requireMandatoryAttributes" json:"requireMandatoryAttributes"`
	EnforceForbiddenAttributes  bool    `yaml:"enforceForbiddenAttributes" json:"enforceForbiddenAttributes"`
	EnforceStandardNames        bool    `yaml:"enforceStandardNames" json:"enforceStandardNames"`
	Tolerance                   float64 `yaml:"tolerance" json:"tolerance"`
	IsDerivativeSupported       bool    `yaml:"isDerivativeSupported" json:"isDerivativeSupported"`
	IsInverseTransformSupported bool    `yaml:"isInverseTransformSupported" json:"isInverseTransformSupported"`
	TransformTolerance          float64 `yaml:"transformTolerance" json:"transformTolerance"`
	FailFast                    bool    `yaml:"failFast" json:"failFast"`
	Language                    string  `yaml:"language" json:"language"`
}

// DefaultConfiguration returns the settings of NewContainer.
func DefaultConfiguration() Configuration {
	return Configuration{
		RequireMandatoryAttributes:  true,
		EnforceForbiddenAttributes:  true,
		Tolerance:                   DefaultTolerance,
		IsDerivativeSupported:       true,
		IsInverseTransformSupported: true,
		Language:                    "en",
	}
}

// LoadConfiguration decodes YAML settings over the defaults. Unknown keys
// are rejected.
func LoadConfiguration(r io.Reader) (Configuration, error) {
	cfg := DefaultConfiguration()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("conformance: decode configuration: %w", err)
	}
	if cfg.Tolerance < 0 {
		return cfg, fmt.Errorf("conformance: tolerance shall not be negative, got %g", cfg.Tolerance)
	}
	if cfg.TransformTolerance < 0 {
		return cfg, fmt.Errorf("conformance: transform tolerance shall not be negative, got %g", cfg.TransformTolerance)
	}
	return cfg, nil
}

// Apply copies the validator settings to every validator of c.
func (cfg Configuration) Apply(c *Container) {
	c.SetRequireMandatoryAttributes(cfg.RequireMandatoryAttributes)
	c.SetEnforceForbiddenAttributes(cfg.EnforceForbiddenAttributes)
	c.CRS.EnforceStandardNames = cfg.EnforceStandardNames
	if cfg.Tolerance > 0 {
		c.SetTolerance(cfg.Tolerance)
	}
}

// Context returns ctx marked for fail-fast validation when configured.
func (cfg Configuration) Context(ctx context.Context) context.Context {
	if cfg.FailFast {
		return geoconform.WithFailFast(ctx, true)
	}
	return ctx
}
