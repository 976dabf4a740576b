// Package zone holds generated areas, their inhabitants and the links
// between them.
package zone

import (
	"fmt"
	"maps"
	"math/rand"
	"sync"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/realmforge/internal/entity"
	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/world"
)

// walkable lists the terrain an NPC may stand on.
var walkable = newCategorySet(
	tiles.CatGrass,
	tiles.CatPaths,
	tiles.CatFloors,
	tiles.CatDoors,
	tiles.CatWaterEdge,
	tiles.CatMountainBase,
)

func newCategorySet(cats ...tiles.Category) mapset.Set[tiles.Category] {
	s := mapset.New[tiles.Category]()
	for _, c := range cats {
		s.Put(c)
	}
	return s
}

// LevelRange bounds the levels of a zone's enemies, inclusive.
type LevelRange struct {
	Min, Max int
}

// Valid reports whether Min <= Max.
func (r LevelRange) Valid() bool {
	return r.Min <= r.Max
}

// Random returns a level uniformly in the range.
func (r LevelRange) Random(rng *rand.Rand) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

func (r LevelRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Connection links one side of a zone to another zone. Exit is the cell in
// the owning zone where the link sits.
type Connection struct {
	Direction    Direction
	TargetZoneID string
	Exit         world.Point
}

// Zone is a generated area with its inhabitants.
//
// Map and inhabitants are written during generation and afterwards only by
// the game loop. Connections may change while other goroutines read them.
type Zone struct {
	ID          string
	Name        string
	Description string
	Biome       string
	Levels      LevelRange
	Map         *world.TileMap
	NPCs        map[string]*entity.NPC
	Enemies     map[string]*entity.Enemy
	Quests      map[string]*entity.Quest
	Landmarks   []entity.Landmark
	State       State

	mu          sync.RWMutex
	connections map[Direction]Connection
}

// New creates an empty zone in the requested state.
func New(id, name, biome string, levels LevelRange) *Zone {
	return &Zone{
		ID:          id,
		Name:        name,
		Description: fmt.Sprintf("A %s area for levels %s", biome, levels),
		Biome:       biome,
		Levels:      levels,
		NPCs:        make(map[string]*entity.NPC),
		Enemies:     make(map[string]*entity.Enemy),
		Quests:      make(map[string]*entity.Quest),
		State:       StateRequested,
		connections: make(map[Direction]Connection),
	}
}

// AddNPC adds or replaces an NPC by ID.
func (z *Zone) AddNPC(n *entity.NPC) {
	z.NPCs[n.ID] = n
}

// AddEnemy adds or replaces an enemy by ID.
func (z *Zone) AddEnemy(e *entity.Enemy) {
	z.Enemies[e.ID] = e
}

// AddQuest adds or replaces a quest by ID.
func (z *Zone) AddQuest(q *entity.Quest) {
	z.Quests[q.ID] = q
}

// AddLandmark appends a landmark.
func (z *Zone) AddLandmark(l entity.Landmark) {
	z.Landmarks = append(z.Landmarks, l)
}

// AddConnection sets the one-way link leaving z through dir, replacing any
// existing link on that side. Manager.Connect adds both directions at once.
func (z *Zone) AddConnection(dir Direction, targetZoneID string, exit world.Point) error {
	if !dir.Valid() {
		return fmt.Errorf("zone %s: %w: %q", z.ID, ErrInvalidDirection, dir)
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	z.connections[dir] = Connection{Direction: dir, TargetZoneID: targetZoneID, Exit: exit}
	return nil
}

// Connection returns the link leaving through dir.
func (z *Zone) Connection(dir Direction) (Connection, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	c, ok := z.connections[dir]
	return c, ok
}

// Connections returns a copy of every link.
func (z *Zone) Connections() map[Direction]Connection {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return maps.Clone(z.connections)
}

// TileAt returns the tile at (x, y), tiles.Empty when there is no map.
func (z *Zone) TileAt(x, y int) tiles.ID {
	if z.Map == nil {
		return tiles.Empty
	}
	return z.Map.TileAt(x, y)
}

// CategoryAt returns the category at (x, y).
func (z *Zone) CategoryAt(x, y int) (tiles.Category, bool) {
	if z.Map == nil {
		return "", false
	}
	return z.Map.CategoryAt(x, y)
}

// IsWalkable reports whether an NPC may stand on (x, y).
func (z *Zone) IsWalkable(x, y int) bool {
	cat, ok := z.CategoryAt(x, y)
	return ok && walkable.Has(cat)
}

// Occupant returns the ID of the NPC or enemy standing on (x, y).
func (z *Zone) Occupant(x, y int) (string, bool) {
	for id, n := range z.NPCs {
		if n.X == x && n.Y == y {
			return id, true
		}
	}
	for id, e := range z.Enemies {
		if e.X == x && e.Y == y {
			return id, true
		}
	}
	return "", false
}
