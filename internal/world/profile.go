package world

import (
	"fmt"
	"slices"

	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/noise"
	"github.com/samdwyer/realmforge/internal/tiles"
)

// FeatureKind selects the feature pass run over a biome's base layer.
type FeatureKind string

const (
	FeaturesNone    FeatureKind = ""
	FeaturesVillage FeatureKind = "village"
	FeaturesForest  FeatureKind = "forest"
)

// Weights is a category distribution. Iterate it through tiles.Categories
// when order matters.
type Weights map[tiles.Category]float64

// Total sums every weight.
func (w Weights) Total() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Band maps heights strictly below Below to Concept.
type Band struct {
	Below   float64
	Concept tiles.Concept
}

// Profile is everything the generator knows about one biome.
type Profile struct {
	ID         string
	Base       tiles.Concept
	Weights    Weights
	Terrain    []Band
	Otherwise  tiles.Concept
	Features   FeatureKind
	Contextual bool
	Height     noise.Params // Seed is drawn per map
	Moisture   noise.Params
	Names      []string
}

// TerrainConcept returns the base concept for a normalised height.
func (p *Profile) TerrainConcept(h float64) tiles.Concept {
	for _, b := range p.Terrain {
		if h < b.Below {
			return b.Concept
		}
	}
	return p.Otherwise
}

// Condition names the test a Rule applies to a Context.
type Condition string

const (
	HeightAbove   Condition = "height_above"
	HeightBelow   Condition = "height_below"
	MoistureAbove Condition = "moisture_above"
	CenterWithin  Condition = "center_within"
)

// Rule multiplies weights when its condition holds, or applies Else when it
// does not. A rule with a Biome only applies to that biome.
type Rule struct {
	When      Condition
	Threshold float64
	Biome     string
	Then      Weights
	Else      Weights
}

func (r Rule) holds(ctx Context) bool {
	switch r.When {
	case HeightAbove:
		return ctx.Height > r.Threshold
	case HeightBelow:
		return ctx.Height < r.Threshold
	case MoistureAbove:
		return ctx.Moisture > r.Threshold
	case CenterWithin:
		return ctx.Distance < r.Threshold
	}
	return false
}

// Profiles is the biome table plus the selector's rule and transition
// tables. It is read-only once built.
type Profiles struct {
	fallback    string
	byID        map[string]*Profile
	ids         []string
	rules       []Rule
	transitions map[tiles.Category]map[tiles.Category]tiles.Category
}

// LoadProfiles builds profiles from the embedded biomes.json.
func LoadProfiles() (*Profiles, error) {
	file, err := gamedata.LoadBiomes()
	if err != nil {
		return nil, err
	}
	return NewProfiles(file)
}

// NewProfiles validates a biome table and converts it to typed profiles.
func NewProfiles(file gamedata.BiomesFile) (*Profiles, error) {
	p := &Profiles{
		fallback:    file.Default,
		byID:        make(map[string]*Profile, len(file.Biomes)),
		transitions: make(map[tiles.Category]map[tiles.Category]tiles.Category),
	}

	for _, def := range file.Biomes {
		prof, err := newProfile(def)
		if err != nil {
			return nil, err
		}
		if _, dup := p.byID[prof.ID]; dup {
			return nil, fmt.Errorf("biome %q defined twice", prof.ID)
		}
		p.byID[prof.ID] = prof
		p.ids = append(p.ids, prof.ID)
	}
	if _, ok := p.byID[p.fallback]; !ok {
		return nil, fmt.Errorf("default biome %q is not defined", p.fallback)
	}

	for i, def := range file.Rules {
		then, err := parseWeights(def.Then)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		otherwise, err := parseWeights(def.Else)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		switch Condition(def.When) {
		case HeightAbove, HeightBelow, MoistureAbove, CenterWithin:
		default:
			return nil, fmt.Errorf("rule %d: unknown condition %q", i, def.When)
		}
		p.rules = append(p.rules, Rule{
			When:      Condition(def.When),
			Threshold: def.Threshold,
			Biome:     def.Biome,
			Then:      then,
			Else:      otherwise,
		})
	}

	for drawn, byNeighbor := range file.Transitions {
		from, ok := tiles.ParseCategory(drawn)
		if !ok {
			return nil, fmt.Errorf("transition from unknown category %q", drawn)
		}
		p.transitions[from] = make(map[tiles.Category]tiles.Category, len(byNeighbor))
		for neighbor, sub := range byNeighbor {
			n, ok := tiles.ParseCategory(neighbor)
			if !ok {
				return nil, fmt.Errorf("transition %s: unknown neighbor category %q", drawn, neighbor)
			}
			s, ok := tiles.ParseCategory(sub)
			if !ok {
				return nil, fmt.Errorf("transition %s/%s: unknown category %q", drawn, neighbor, sub)
			}
			p.transitions[from][n] = s
		}
	}

	return p, nil
}

func newProfile(def gamedata.BiomeDef) (*Profile, error) {
	weights, err := parseWeights(def.Weights)
	if err != nil {
		return nil, fmt.Errorf("biome %q: %w", def.ID, err)
	}
	prof := &Profile{
		ID:         def.ID,
		Base:       tiles.Concept(def.BaseConcept),
		Weights:    weights,
		Otherwise:  tiles.Concept(def.Otherwise),
		Features:   FeatureKind(def.Features),
		Contextual: def.Contextual,
		Height:     preset(def.Height),
		Moisture:   preset(def.Moisture),
		Names:      slices.Clone(def.Names),
	}
	for _, c := range []tiles.Concept{prof.Base, prof.Otherwise} {
		if !c.Valid() {
			return nil, fmt.Errorf("biome %q: unknown concept %q", def.ID, c)
		}
	}
	for _, b := range def.Terrain {
		c := tiles.Concept(b.Concept)
		if !c.Valid() {
			return nil, fmt.Errorf("biome %q: unknown terrain concept %q", def.ID, c)
		}
		prof.Terrain = append(prof.Terrain, Band{Below: b.Below, Concept: c})
	}
	switch prof.Features {
	case FeaturesNone, FeaturesVillage, FeaturesForest:
	default:
		return nil, fmt.Errorf("biome %q: unknown feature pass %q", def.ID, def.Features)
	}
	return prof, nil
}

func preset(n gamedata.NoisePreset) noise.Params {
	return noise.Params{
		Scale:       n.Scale,
		Octaves:     n.Octaves,
		Persistence: n.Persistence,
		Lacunarity:  n.Lacunarity,
	}
}

func parseWeights(raw map[string]float64) (Weights, error) {
	w := make(Weights, len(raw))
	for k, v := range raw {
		cat, ok := tiles.ParseCategory(k)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", k)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative weight %v for %q", v, k)
		}
		w[cat] = v
	}
	return w, nil
}

// Lookup returns the profile registered under id.
func (p *Profiles) Lookup(id string) (*Profile, bool) {
	prof, ok := p.byID[id]
	return prof, ok
}

// Resolve returns the profile for biome, or the default profile and false
// when biome is unknown.
func (p *Profiles) Resolve(biome string) (*Profile, bool) {
	if prof, ok := p.byID[biome]; ok {
		return prof, true
	}
	return p.byID[p.fallback], false
}

// IDs returns the biome ids in table order.
func (p *Profiles) IDs() []string {
	return slices.Clone(p.ids)
}

// Rules returns the weight rules in application order.
func (p *Profiles) Rules() []Rule {
	return slices.Clone(p.rules)
}

// Transition returns the category substituted when drawn sits next to a
// dominant neighbor of a different category.
func (p *Profiles) Transition(drawn, neighbor tiles.Category) (tiles.Category, bool) {
	sub, ok := p.transitions[drawn][neighbor]
	return sub, ok
}
