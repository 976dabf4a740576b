package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/samdwyer/realmforge/internal/tiles"
)

// ErrNoiseFieldsMissing is returned when contextual selection runs on a map
// without attached height and moisture fields.
var ErrNoiseFieldsMissing = errors.New("map has no noise fields attached")

// Context is what the selector knows about one cell. It is computed on
// demand and never stored.
type Context struct {
	X, Y      int
	Guess     tiles.Category // Dominant neighbor, grass when there is none
	Neighbors map[tiles.Category]int
	Biome     string
	Height    float64
	Moisture  float64
	Distance  float64 // 0 at the centre, 1 at a corner
}

// Dominant returns the most frequent neighbor category. Ties go to the
// category listed first by tiles.Categories.
func (c Context) Dominant() (tiles.Category, bool) {
	var best tiles.Category
	count := 0
	for _, cat := range tiles.Categories() {
		if n := c.Neighbors[cat]; n > count {
			best, count = cat, n
		}
	}
	return best, count > 0
}

// Selector picks tiles that agree with their surroundings.
type Selector struct {
	catalog  *tiles.Catalog
	profiles *Profiles
	rng      *rand.Rand
}

// NewSelector returns a selector drawing from rng.
func NewSelector(catalog *tiles.Catalog, profiles *Profiles, rng *rand.Rand) *Selector {
	return &Selector{catalog: catalog, profiles: profiles, rng: rng}
}

var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Context inspects the cell (x, y) of m.
func (s *Selector) Context(m *TileMap, x, y int, biome string) (Context, error) {
	height, moisture := m.Fields()
	if height == nil || moisture == nil {
		return Context{}, ErrNoiseFieldsMissing
	}
	if !m.InBounds(x, y) {
		return Context{}, fmt.Errorf("cell (%d,%d) outside %dx%d map", x, y, m.Width, m.Height)
	}

	ctx := Context{
		X:         x,
		Y:         y,
		Neighbors: make(map[tiles.Category]int, 8),
		Biome:     biome,
		Height:    height.At(x, y),
		Moisture:  moisture.At(x, y),
	}
	for _, off := range neighborOffsets {
		if cat, ok := m.CategoryAt(x+off[0], y+off[1]); ok {
			ctx.Neighbors[cat]++
		}
	}
	ctx.Guess = tiles.CatGrass
	if dom, ok := ctx.Dominant(); ok {
		ctx.Guess = dom
	}

	cx, cy := float64(m.Width)/2, float64(m.Height)/2
	ctx.Distance = math.Hypot(float64(x)-cx, float64(y)-cy) / math.Hypot(cx, cy)
	return ctx, nil
}

// Weights returns the biome's distribution adjusted by every applicable
// rule and normalised to sum to 1. A distribution summing to zero is
// returned unnormalised.
func (s *Selector) Weights(ctx Context) Weights {
	prof, _ := s.profiles.Resolve(ctx.Biome)
	w := prof.Weights.clone()

	for _, rule := range s.profiles.rules {
		if rule.Biome != "" && rule.Biome != prof.ID {
			continue
		}
		factors := rule.Else
		if rule.holds(ctx) {
			factors = rule.Then
		}
		for cat, f := range factors {
			if _, ok := w[cat]; ok {
				w[cat] *= f
			}
		}
	}

	if total := w.Total(); total > 0 {
		for cat := range w {
			w[cat] /= total
		}
	}
	return w
}

// Draw picks a category with probability proportional to its weight.
// Zero weights are never drawn. An all-zero table yields grass.
func (s *Selector) Draw(w Weights) tiles.Category {
	total := w.Total()
	if total <= 0 {
		return tiles.CatGrass
	}
	roll := s.rng.Float64() * total
	var last tiles.Category
	for _, cat := range tiles.Categories() {
		v := w[cat]
		if v <= 0 {
			continue
		}
		last = cat
		if roll < v {
			return cat
		}
		roll -= v
	}
	// float rounding left the roll past the final bucket
	return last
}

// Select draws a category for ctx, substitutes a transition category when
// the cell borders a different dominant neighbor, and resolves a tile.
// When the category has no assets the biome's base concept is used.
func (s *Selector) Select(ctx Context) (tiles.ID, tiles.Category, error) {
	prof, _ := s.profiles.Resolve(ctx.Biome)
	cat := s.Draw(s.Weights(ctx))

	if dom, ok := ctx.Dominant(); ok && dom != cat {
		if sub, ok := s.profiles.Transition(cat, dom); ok {
			cat = sub
		}
	}

	id, err := s.catalog.ResolveCategory(s.rng, cat)
	if err != nil {
		id, err = s.catalog.Resolve(s.rng, prof.Base)
		if err != nil {
			return tiles.Empty, "", fmt.Errorf("select (%d,%d): %w", ctx.X, ctx.Y, err)
		}
	}
	got, _ := s.catalog.Category(id)
	return id, got, nil
}
