package asteroid

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/multierr"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*GenerationConfig)
		wantErr    bool
		wantSubdiv bool
	}{
		{"defaults", func(*GenerationConfig) {}, false, false},
		{"no layers", func(c *GenerationConfig) { c.NoiseLayers = nil }, false, false},
		{"level zero", func(c *GenerationConfig) { c.Subdivisions = 0 }, false, false},
		{"max level", func(c *GenerationConfig) { c.Subdivisions = MaxSubdivisions }, false, false},
		{"equal radii", func(c *GenerationConfig) { c.MaxRadius = c.MinRadius }, false, false},
		{"zero clamp", func(c *GenerationConfig) { c.MaxDisplacementFraction = 0 }, false, false},
		{"zero intensity", func(c *GenerationConfig) { c.NoiseLayers[0].Intensity = 0 }, false, false},
		{"max octaves", func(c *GenerationConfig) { c.NoiseLayers[0].Octaves = MaxOctaves }, false, false},

		{"negative level", func(c *GenerationConfig) { c.Subdivisions = -1 }, true, true},
		{"level too high", func(c *GenerationConfig) { c.Subdivisions = MaxSubdivisions + 1 }, true, true},
		{"zero min radius", func(c *GenerationConfig) { c.MinRadius = 0 }, true, false},
		{"max below min", func(c *GenerationConfig) { c.MaxRadius = c.MinRadius - 1 }, true, false},
		{"nan radius", func(c *GenerationConfig) { c.MaxRadius = math.NaN() }, true, false},
		{"zero density", func(c *GenerationConfig) { c.Density = 0 }, true, false},
		{"inf density", func(c *GenerationConfig) { c.Density = math.Inf(1) }, true, false},
		{"clamp above one", func(c *GenerationConfig) { c.MaxDisplacementFraction = 1.5 }, true, false},
		{"negative clamp", func(c *GenerationConfig) { c.MaxDisplacementFraction = -0.1 }, true, false},
		{"zero scale", func(c *GenerationConfig) { c.NoiseLayers[0].Scale = 0 }, true, false},
		{"negative intensity", func(c *GenerationConfig) { c.NoiseLayers[0].Intensity = -1 }, true, false},
		{"negative octaves", func(c *GenerationConfig) { c.NoiseLayers[0].Octaves = -1 }, true, false},
		{"too many octaves", func(c *GenerationConfig) { c.NoiseLayers[0].Octaves = MaxOctaves + 1 }, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not match ErrInvalidConfig", err)
			}
			if got := errors.Is(err, ErrSubdivisionLimit); got != tt.wantSubdiv {
				t.Errorf("errors.Is(err, ErrSubdivisionLimit) = %v, want %v", got, tt.wantSubdiv)
			}
		})
	}
}

func TestValidateAggregates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Subdivisions = 99
	cfg.Density = -1
	cfg.NoiseLayers[0].Scale = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}

	// The sentinel comes first, the multierr aggregate second.
	wrapped, ok := err.(interface{ Unwrap() []error })
	if !ok || len(wrapped.Unwrap()) != 2 {
		t.Fatalf("unexpected error shape: %#v", err)
	}
	inner := wrapped.Unwrap()[1]
	if n := len(multierr.Errors(inner)); n != 3 {
		t.Errorf("expected 3 aggregated problems, got %d: %v", n, err)
	}
}
