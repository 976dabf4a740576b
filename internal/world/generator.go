package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/realmforge/internal/noise"
	"github.com/samdwyer/realmforge/internal/telemetry"
	"github.com/samdwyer/realmforge/internal/tiles"
)

const (
	villageWaypoints    = 3
	houseJitter         = 3
	forestFeatureChance = 0.1
	forestTreeChance    = 0.8
)

// Generator builds tile maps for biomes. It draws from a single rng and is
// not safe for concurrent use.
type Generator struct {
	catalog  *tiles.Catalog
	profiles *Profiles
	rng      *rand.Rand
	log      logrus.FieldLogger
	cache    *noise.Cache
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Equal seeds give equal maps.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(g *Generator) { g.log = log }
}

// WithNoiseCache memoises noise fields across maps.
func WithNoiseCache(c *noise.Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// WithProfiles replaces the embedded biome table.
func WithProfiles(p *Profiles) Option {
	return func(g *Generator) { g.profiles = p }
}

// NewGenerator returns a generator resolving tiles through catalog.
func NewGenerator(catalog *tiles.Catalog, opts ...Option) (*Generator, error) {
	g := &Generator{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.profiles == nil {
		p, err := LoadProfiles()
		if err != nil {
			return nil, fmt.Errorf("load biome profiles: %w", err)
		}
		g.profiles = p
	}
	return g, nil
}

// Catalog returns the catalog maps are resolved against.
func (g *Generator) Catalog() *tiles.Catalog { return g.catalog }

// Profiles returns the biome table.
func (g *Generator) Profiles() *Profiles { return g.profiles }

// Generate builds a width×height map for biome. Unknown biomes use the
// default profile. The map seed is drawn from the generator's rng and
// recorded on the map.
func (g *Generator) Generate(ctx context.Context, width, height int, biome string) (*TileMap, error) {
	return g.GenerateSeeded(ctx, width, height, biome, g.rng.Int63())
}

// GenerateSeeded builds the map identified by seed. Equal arguments give
// equal maps, and with a noise cache the second build reuses the fields of
// the first.
func (g *Generator) GenerateSeeded(ctx context.Context, width, height int, biome string, seed int64) (*TileMap, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "mapgen.generate")
	defer span.End()

	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("generate %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	prof, known := g.profiles.Resolve(biome)
	log := g.log.WithField("biome", prof.ID)
	if !known {
		log.WithField("requested", biome).Warn("unknown biome, using default profile")
	}

	rng := rand.New(rand.NewSource(seed))
	heightParams, moistureParams := prof.Height, prof.Moisture
	heightParams.Seed = rng.Int63()
	moistureParams.Seed = rng.Int63()

	heightField, err := g.field(width, height, heightParams)
	if err != nil {
		return nil, err
	}
	moistureField, err := g.field(width, height, moistureParams)
	if err != nil {
		return nil, err
	}

	m, err := NewTileMap(g.catalog, width, height)
	if err != nil {
		return nil, err
	}
	m.Biome = prof.ID
	m.Seed = seed
	if err := m.AttachFields(heightField, moistureField); err != nil {
		return nil, err
	}

	if prof.Contextual {
		g.contextualBase(rng, m, prof, log)
	} else {
		g.terrainBase(rng, m, prof, log)
	}

	features := make([]tiles.ID, width*height)
	switch prof.Features {
	case FeaturesVillage:
		g.villageFeatures(rng, m, features, log)
	case FeaturesForest:
		g.forestFeatures(rng, features, log)
	}
	for i, id := range features {
		if id != tiles.Empty {
			m.cells[i] = id
		}
	}

	elapsed := time.Since(startTime)
	span.SetAttributes(
		attribute.Int("map.width", width),
		attribute.Int("map.height", height),
		attribute.String("map.biome", prof.ID),
		attribute.Int64("map.seed", seed),
		attribute.Int64("map.generation_ms", elapsed.Milliseconds()),
	)
	log.WithFields(logrus.Fields{
		"width":   width,
		"height":  height,
		"seed":    seed,
		"elapsed": elapsed,
	}).Debug("map generated")

	return m, nil
}

func (g *Generator) field(width, height int, p noise.Params) (*noise.Field, error) {
	if g.cache != nil {
		return g.cache.Field(width, height, p)
	}
	return noise.Generate(width, height, p)
}

// terrainBase fills m from the profile's height bands.
func (g *Generator) terrainBase(rng *rand.Rand, m *TileMap, prof *Profile, log logrus.FieldLogger) {
	heightField, _ := m.Fields()
	fallbacks, empty := 0, 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			id, err := g.catalog.Resolve(rng, prof.TerrainConcept(heightField.At(x, y)))
			if err != nil {
				fallbacks++
				id, err = g.catalog.Resolve(rng, tiles.GrassPlain)
				if err != nil {
					empty++
				}
			}
			m.SetTile(x, y, id)
		}
	}
	logFallbacks(log, fallbacks, empty)
}

// contextualBase fills m cell by cell through the tile selector, so each
// cell sees the neighbors already placed.
func (g *Generator) contextualBase(rng *rand.Rand, m *TileMap, prof *Profile, log logrus.FieldLogger) {
	sel := NewSelector(g.catalog, g.profiles, rng)
	heightField, _ := m.Fields()
	fallbacks, empty := 0, 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			ctx, err := sel.Context(m, x, y, prof.ID)
			var id tiles.ID
			if err == nil {
				id, _, err = sel.Select(ctx)
			}
			if err != nil {
				fallbacks++
				id, err = g.catalog.ResolveOr(rng, prof.TerrainConcept(heightField.At(x, y)), tiles.GrassPlain)
				if err != nil {
					empty++
				}
			}
			m.SetTile(x, y, id)
		}
	}
	logFallbacks(log, fallbacks, empty)
}

func logFallbacks(log logrus.FieldLogger, fallbacks, empty int) {
	if empty > 0 {
		log.WithField("cells", empty).Error("no grass-plain assets, cells left empty")
	}
	if fallbacks > 0 {
		log.WithField("cells", fallbacks).Warn("terrain resolved through fallback concept")
	}
}

// villageFeatures joins random waypoints with dirt paths and puts a stone
// wall near each waypoint.
func (g *Generator) villageFeatures(rng *rand.Rand, m *TileMap, layer []tiles.ID, log logrus.FieldLogger) {
	points := make([]Point, villageWaypoints)
	for i := range points {
		points[i] = Point{rng.Intn(m.Width), rng.Intn(m.Height)}
	}

	missing := 0
	for i := 0; i+1 < len(points); i++ {
		walkLine(points[i], points[i+1], func(p Point) {
			if !m.InBounds(p.X, p.Y) {
				return
			}
			id, err := g.catalog.Resolve(rng, tiles.DirtPath)
			if err != nil {
				missing++
				return
			}
			layer[p.Y*m.Width+p.X] = id
		})
	}
	logMissing(log, tiles.DirtPath, missing)

	missing = 0
	for _, p := range points {
		x := clamp(p.X+rng.Intn(2*houseJitter+1)-houseJitter, 0, m.Width-1)
		y := clamp(p.Y+rng.Intn(2*houseJitter+1)-houseJitter, 0, m.Height-1)
		id, err := g.catalog.Resolve(rng, tiles.WallStone)
		if err != nil {
			missing++
			continue
		}
		layer[y*m.Width+x] = id
	}
	logMissing(log, tiles.WallStone, missing)
}

// forestFeatures scatters trees and rocks.
func (g *Generator) forestFeatures(rng *rand.Rand, layer []tiles.ID, log logrus.FieldLogger) {
	missing := make(map[tiles.Concept]int)
	for i := range layer {
		if rng.Float64() >= forestFeatureChance {
			continue
		}
		concept := tiles.Tree
		if rng.Float64() >= forestTreeChance {
			concept = tiles.Rock
		}
		id, err := g.catalog.Resolve(rng, concept)
		if err != nil {
			missing[concept]++
			continue
		}
		layer[i] = id
	}
	logMissing(log, tiles.Tree, missing[tiles.Tree])
	logMissing(log, tiles.Rock, missing[tiles.Rock])
}

// logMissing reports feature cells skipped because concept has no assets.
func logMissing(log logrus.FieldLogger, concept tiles.Concept, cells int) {
	if cells > 0 {
		log.WithFields(logrus.Fields{
			"concept": concept,
			"cells":   cells,
		}).Warn("no assets for feature concept, cells skipped")
	}
}
