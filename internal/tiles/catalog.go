package tiles

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/realmforge/internal/gamedata"
)

// ID identifies a concrete tile. Zero is the empty tile.
type ID int

// Empty marks a cell with no tile.
const Empty ID = 0

// Record describes one registered asset.
type Record struct {
	ID       ID
	AssetRef string
	Concept  Concept
	Category Category
	Glyph    rune
	Color    tcell.Color
}

// Catalog owns tile IDs and the concept/category indexes over them.
//
// Registration is single-writer. Once built, a Catalog is safe for
// concurrent reads.
type Catalog struct {
	records    []Record // records[id-1]
	byRef      map[string]ID
	byConcept  map[Concept][]ID
	byCategory map[Category][]ID
}

// NewCatalog returns an empty catalog. IDs start at 1.
func NewCatalog() *Catalog {
	c := &Catalog{}
	c.Reset()
	return c
}

// LoadCatalog registers every asset of the given table.
func LoadCatalog(defs []gamedata.AssetDef) (*Catalog, error) {
	c := NewCatalog()
	for i := range defs {
		def := &defs[i]
		concept := Concept(def.Concept)
		for _, ref := range def.Assets {
			id, err := c.Register(ref, concept)
			if err != nil {
				return nil, fmt.Errorf("load catalog: %w", err)
			}
			if got := c.records[id-1].Concept; got != concept {
				return nil, fmt.Errorf("load catalog: asset %q listed under both %s and %s", ref, got, concept)
			}
			c.records[id-1].Glyph = def.GlyphRune()
			c.records[id-1].Color = def.TCellColor()
		}
	}
	return c, nil
}

// Reset drops every registration. The next Register returns ID 1.
func (c *Catalog) Reset() {
	c.records = nil
	c.byRef = make(map[string]ID)
	c.byConcept = make(map[Concept][]ID)
	c.byCategory = make(map[Category][]ID)
}

// Register adds assetRef under concept and returns its ID. Registering the
// same assetRef again returns the existing ID.
func (c *Catalog) Register(assetRef string, concept Concept) (ID, error) {
	if id, ok := c.byRef[assetRef]; ok {
		return id, nil
	}
	category, ok := concept.Category()
	if !ok {
		return Empty, fmt.Errorf("register %q: %w: %q", assetRef, ErrUnknownConcept, concept)
	}

	id := ID(len(c.records) + 1)
	c.records = append(c.records, Record{
		ID:       id,
		AssetRef: assetRef,
		Concept:  concept,
		Category: category,
		Glyph:    '?',
		Color:    tcell.ColorWhite,
	})
	c.byRef[assetRef] = id
	c.byConcept[concept] = append(c.byConcept[concept], id)
	c.byCategory[category] = append(c.byCategory[category], id)
	return id, nil
}

// Resolve picks one of the concept's variants uniformly at random.
func (c *Catalog) Resolve(rng *rand.Rand, concept Concept) (ID, error) {
	ids := c.byConcept[concept]
	if len(ids) == 0 {
		return Empty, &NoVariantsError{Concept: concept}
	}
	return ids[rng.Intn(len(ids))], nil
}

// ResolveHinted picks among the concept's variants whose asset reference
// contains one of hints, ignoring case. Without a match it behaves like
// Resolve.
func (c *Catalog) ResolveHinted(rng *rand.Rand, concept Concept, hints ...string) (ID, error) {
	var matches []ID
	for _, id := range c.byConcept[concept] {
		ref := strings.ToLower(c.records[id-1].AssetRef)
		for _, hint := range hints {
			if hint != "" && strings.Contains(ref, strings.ToLower(hint)) {
				matches = append(matches, id)
				break
			}
		}
	}
	if len(matches) > 0 {
		return matches[rng.Intn(len(matches))], nil
	}
	return c.Resolve(rng, concept)
}

// ResolveCategory picks uniformly among every asset of the category.
func (c *Catalog) ResolveCategory(rng *rand.Rand, category Category) (ID, error) {
	ids := c.byCategory[category]
	if len(ids) == 0 {
		return Empty, &NoVariantsError{Category: category}
	}
	return ids[rng.Intn(len(ids))], nil
}

// ResolveOr resolves concept, falling back to fallback when concept has no
// variants. The error is only returned when both fail.
func (c *Catalog) ResolveOr(rng *rand.Rand, concept, fallback Concept) (ID, error) {
	id, err := c.Resolve(rng, concept)
	if err == nil {
		return id, nil
	}
	return c.Resolve(rng, fallback)
}

// Record returns the full record for id.
func (c *Catalog) Record(id ID) (Record, bool) {
	if id <= Empty || int(id) > len(c.records) {
		return Record{}, false
	}
	return c.records[id-1], true
}

// Category returns the category id was registered under.
func (c *Catalog) Category(id ID) (Category, bool) {
	rec, ok := c.Record(id)
	return rec.Category, ok
}

// AssetRef returns the asset reference of id.
func (c *Catalog) AssetRef(id ID) (string, bool) {
	rec, ok := c.Record(id)
	return rec.AssetRef, ok
}

// Variants returns the IDs registered under concept.
func (c *Catalog) Variants(concept Concept) []ID {
	return slices.Clone(c.byConcept[concept])
}

// Len returns the number of registered assets.
func (c *Catalog) Len() int {
	return len(c.records)
}
