// Package config reads the gcfg (INI style) configuration of a body
// preprocessing run.
package config

import (
	"fmt"

	"github.com/notargets/VSPBody/body"
	"gopkg.in/gcfg.v1"
)

const ExampleConfigFile = `[Body]

# Sections whose points all lie within Tolerance of their centroid are treated
# as collapsed (closed nose or tail). Absolute length, same units as the
# geometry.
Tolerance = 1e-6

# Plane the flat plate is collapsed into, one of:
# [ Horizontal | Vertical ]
# Horizontal keeps x and y (wing like bodies), Vertical keeps x and z.
SliceType = Horizontal

# How open end sections are closed in the mesh, one of:
# [ Fan | None ]
# Fan adds a node at the section centroid and closes the end with a fan of
# triangles. None leaves the end open.
EndCaps = Fan

# Print stage progress and degenerate normal substitutions.
Verbose = false

[Output]

# Optional outputs, skipped when empty.
# STL = body.stl
# ChordPlot = chord.png
`

// BodyConfig is the [Body] section
type BodyConfig struct {
	Tolerance float64
	SliceType string
	EndCaps   string
	Verbose   bool
}

// OutputConfig is the [Output] section
type OutputConfig struct {
	STL       string
	ChordPlot string
}

type Wrapper struct {
	Body   BodyConfig
	Output OutputConfig
}

// Default returns the configuration used when no file is given
func Default() *Wrapper {
	opts := body.DefaultOptions()
	return &Wrapper{
		Body: BodyConfig{
			Tolerance: opts.Tolerance,
			SliceType: opts.SliceType.String(),
			EndCaps:   opts.EndCaps.String(),
			Verbose:   opts.Verbose,
		},
	}
}

// Load reads fname over the defaults and validates the result
func Load(fname string) (*Wrapper, error) {
	wrap := Default()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", fname, err)
	}
	if err := wrap.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", fname, err)
	}
	return wrap, nil
}

// Parse reads a configuration held in a string
func Parse(str string) (*Wrapper, error) {
	wrap := Default()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.Validate(); err != nil {
		return nil, err
	}
	return wrap, nil
}

func (con *BodyConfig) ValidTolerance() bool { return con.Tolerance > 0 }

func (con *BodyConfig) ValidSliceType() bool {
	_, err := body.ParseSliceType(con.SliceType)
	return err == nil
}

func (con *BodyConfig) ValidEndCaps() bool {
	_, err := body.ParseEndCapPolicy(con.EndCaps)
	return err == nil
}

func (wrap *Wrapper) Validate() error {
	con := &wrap.Body
	switch {
	case !con.ValidTolerance():
		return fmt.Errorf("[Body] Tolerance must be positive, got %g", con.Tolerance)
	case !con.ValidSliceType():
		return fmt.Errorf("[Body] SliceType must be Horizontal or Vertical, got %q", con.SliceType)
	case !con.ValidEndCaps():
		return fmt.Errorf("[Body] EndCaps must be Fan or None, got %q", con.EndCaps)
	}
	return nil
}

// BodyOptions converts the [Body] section, which must be valid
func (wrap *Wrapper) BodyOptions() body.Options {
	con := &wrap.Body
	st, err := body.ParseSliceType(con.SliceType)
	if err != nil {
		panic(err)
	}
	ec, err := body.ParseEndCapPolicy(con.EndCaps)
	if err != nil {
		panic(err)
	}
	return body.Options{
		Tolerance: con.Tolerance,
		SliceType: st,
		EndCaps:   ec,
		Verbose:   con.Verbose,
	}
}
