package zone

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/realmforge/internal/entity"
	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/world"
)

const (
	minVillagers = 3
	maxVillagers = 6
	minEnemies   = 5
	maxEnemies   = 10

	// spawnMargin keeps random spawns away from the zone's edges.
	spawnMargin = 5
)

// forestSpawn lists the terrain forest enemies spawn on. Paths stay clear.
var forestSpawn = newCategorySet(tiles.CatGrass, tiles.CatTrees)

// fallbackEnemy is used when the enemy registry is empty.
var fallbackEnemy = gamedata.EnemyDef{
	ID:         "wolf",
	Name:       "Wolf",
	Concept:    string(tiles.MonsterSmall),
	Aggressive: true,
}

// populator attaches biome-specific inhabitants to a freshly generated zone.
type populator struct {
	rng     *rand.Rand
	catalog *tiles.Catalog
	roster  gamedata.PopulationFile
	enemies *gamedata.EnemyRegistry
	log     logrus.FieldLogger
}

func (p *populator) populate(z *Zone, kind world.FeatureKind) {
	switch kind {
	case world.FeaturesVillage:
		p.village(z)
	case world.FeaturesForest:
		p.forest(z)
	}
}

func (p *populator) village(z *Zone) {
	w, h := z.Map.Width, z.Map.Height
	cx, cy := w/2, h/2
	occupied := mapset.New[world.Point]()

	merchant := p.rosterNPC(p.roster.Merchant, z, cx+2, cy-2)
	innkeeper := p.rosterNPC(p.roster.Innkeeper, z, cx-2, cy-2)
	for _, n := range []*entity.NPC{merchant, innkeeper} {
		z.AddNPC(n)
		occupied.Put(world.Point{X: n.X, Y: n.Y})
	}

	spots := newSpawnPool(z, walkable, occupied, p.log)
	count := minVillagers + p.rng.Intn(maxVillagers-minVillagers+1)
	for i := 0; i < count; i++ {
		role := "Villager"
		if len(p.roster.VillagerRoles) > 0 {
			role = p.roster.VillagerRoles[p.rng.Intn(len(p.roster.VillagerRoles))]
		}
		pos := spots.take(p.rng)
		n := entity.NewNPC(
			fmt.Sprintf("villager_%d", i),
			fmt.Sprintf("Villager %d", i+1),
			role, pos.X, pos.Y,
			p.tile(tiles.Villager, tiles.Villager),
		)
		lines := make(map[string]string, len(p.roster.VillagerDialogue))
		for topic, line := range p.roster.VillagerDialogue {
			lines[topic] = strings.ReplaceAll(line, "%s", strings.ToLower(role))
		}
		n.SetDialogue(lines)
		z.AddNPC(n)
	}

	def := p.roster.StarterQuest
	q := entity.NewQuest(def.ID, def.Title, def.Description, merchant.ID)
	for _, o := range def.Objectives {
		q.AddObjective(o.Description, o.Target, o.Amount)
	}
	q.Rewards = entity.Rewards{Gold: def.Gold, Items: append([]string(nil), def.Items...)}
	z.AddQuest(q)
	merchant.AddQuest(q.ID)

	p.log.WithFields(logrus.Fields{
		"zone":      z.ID,
		"villagers": count,
	}).Debug("village populated")
}

func (p *populator) rosterNPC(def gamedata.NPCDef, z *Zone, x, y int) *entity.NPC {
	x = max(0, min(z.Map.Width-1, x))
	y = max(0, min(z.Map.Height-1, y))
	n := entity.NewNPC(def.ID, def.Name, def.Role, x, y, p.tile(tiles.Concept(def.Concept), tiles.Villager, def.Role))
	n.SetDialogue(def.Dialogue)
	return n
}

func (p *populator) forest(z *Zone) {
	spots := newSpawnPool(z, forestSpawn, mapset.New[world.Point](), p.log)
	count := minEnemies + p.rng.Intn(maxEnemies-minEnemies+1)

	for i := 0; i < count; i++ {
		def := p.enemies.SpawnRandom(p.rng)
		if def == nil {
			def = &fallbackEnemy
		}
		pos := spots.take(p.rng)
		e := entity.NewEnemy(
			fmt.Sprintf("%s_%d", def.ID, i),
			def,
			pos.X, pos.Y,
			z.Levels.Random(p.rng),
			p.tile(tiles.Concept(def.Concept), tiles.MonsterSmall, def.ID),
		)
		z.AddEnemy(e)
	}

	lm := p.roster.ForestLandmark
	z.AddLandmark(entity.Landmark{
		Name:        lm.Name,
		X:           z.Map.Width / 2,
		Y:           z.Map.Height / 2,
		Description: lm.Description,
	})

	p.log.WithFields(logrus.Fields{
		"zone":    z.ID,
		"enemies": count,
	}).Debug("forest populated")
}

// tile resolves a sprite, preferring assets named after one of hints. It
// logs and returns Empty when neither concept has assets.
func (p *populator) tile(concept, fallback tiles.Concept, hints ...string) tiles.ID {
	id, err := p.catalog.ResolveHinted(p.rng, concept, hints...)
	if err != nil {
		id, err = p.catalog.Resolve(p.rng, fallback)
	}
	if err != nil {
		p.log.WithError(err).WithField("concept", concept).Warn("no sprite for inhabitant")
	}
	return id
}

// spawnPool hands out cells of allowed terrain. Free cells away from the
// edges come first, then free cells anywhere, then allowed cells that are
// already taken. Other terrain is only used when the map has no allowed
// cell at all.
type spawnPool struct {
	preferred []world.Point
	rest      []world.Point
	allowed   []world.Point
	z         *Zone
	taken     mapset.Set[world.Point]
	log       logrus.FieldLogger
	warned    bool
}

func newSpawnPool(z *Zone, allowed mapset.Set[tiles.Category], taken mapset.Set[world.Point], log logrus.FieldLogger) *spawnPool {
	w, h := z.Map.Width, z.Map.Height
	margin := spawnMargin
	if w <= 2*margin || h <= 2*margin {
		margin = 0
	}
	pool := &spawnPool{z: z, taken: taken, log: log}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cat, ok := z.CategoryAt(x, y)
			if !ok || !allowed.Has(cat) {
				continue
			}
			pt := world.Point{X: x, Y: y}
			pool.allowed = append(pool.allowed, pt)
			if taken.Has(pt) {
				continue
			}
			if x >= margin && x < w-margin && y >= margin && y < h-margin {
				pool.preferred = append(pool.preferred, pt)
			} else {
				pool.rest = append(pool.rest, pt)
			}
		}
	}
	return pool
}

// take returns a spawn cell and marks it taken.
func (s *spawnPool) take(rng *rand.Rand) world.Point {
	if pt, ok := s.pop(rng, &s.preferred); ok {
		return pt
	}
	if pt, ok := s.pop(rng, &s.rest); ok {
		return pt
	}
	if len(s.allowed) > 0 {
		return s.allowed[rng.Intn(len(s.allowed))]
	}

	if !s.warned {
		s.log.WithField("zone", s.z.ID).Warn("no cell of the spawn terrain, spawning on any cell")
		s.warned = true
	}
	pt := world.Point{X: rng.Intn(s.z.Map.Width), Y: rng.Intn(s.z.Map.Height)}
	s.taken.Put(pt)
	return pt
}

// pop removes random cells from cells until it finds an untaken one.
func (s *spawnPool) pop(rng *rand.Rand, cells *[]world.Point) (world.Point, bool) {
	for len(*cells) > 0 {
		c := *cells
		i := rng.Intn(len(c))
		pt := c[i]
		c[i] = c[len(c)-1]
		*cells = c[:len(c)-1]
		if !s.taken.Has(pt) {
			s.taken.Put(pt)
			return pt, true
		}
	}
	return world.Point{}, false
}
