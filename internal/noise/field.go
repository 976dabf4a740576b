// Package noise generates normalised octave Perlin fields for terrain.
package noise

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions is returned for a non-positive width or height.
var ErrInvalidDimensions = errors.New("invalid dimensions")

const minScale = 0.0001

// Params controls octave sampling.
type Params struct {
	Scale       float64 // Larger values zoom in
	Octaves     int
	Persistence float64 // Amplitude multiplier per octave
	Lacunarity  float64 // Frequency multiplier per octave
	Seed        int64
}

// Field is a row-major grid of values in [0, 1].
type Field struct {
	Width  int
	Height int
	Values []float64

	rawMin, rawMax float64
}

// Generate samples a width×height field. The same Params always yield the
// same field.
func Generate(width, height int, params Params) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("noise field %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	scale := params.Scale
	if scale <= 0 {
		scale = minScale
	}
	octaves := params.Octaves
	if octaves < 1 {
		octaves = 1
	}

	gen := newPerlin(params.Seed)
	f := &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
		rawMin: math.Inf(1),
		rawMax: math.Inf(-1),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			amplitude, frequency, total := 1.0, 1.0, 0.0
			for o := 0; o < octaves; o++ {
				sx := float64(x) / scale * frequency
				sy := float64(y) / scale * frequency
				total += (gen.at(sx, sy)*0.5 + 0.5) * amplitude
				amplitude *= params.Persistence
				frequency *= params.Lacunarity
			}
			f.rawMin = math.Min(f.rawMin, total)
			f.rawMax = math.Max(f.rawMax, total)
			f.Values[y*width+x] = total
		}
	}

	f.normalise()
	return f, nil
}

// normalise rescales to [0, 1] by the observed range. A flat field becomes
// all zeros.
func (f *Field) normalise() {
	span := f.rawMax - f.rawMin
	for i, v := range f.Values {
		if span == 0 {
			f.Values[i] = 0
			continue
		}
		f.Values[i] = (v - f.rawMin) / span
	}
}

// At returns the value at (x, y), or 0 outside the field.
func (f *Field) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Values[y*f.Width+x]
}

// Min returns the smallest raw octave sum seen before normalisation.
func (f *Field) Min() float64 { return f.rawMin }

// Max returns the largest raw octave sum seen before normalisation.
func (f *Field) Max() float64 { return f.rawMax }
