// Package entity provides the inhabitants of a zone: NPCs, enemies,
// quests and landmarks.
package entity

import (
	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/world"
)

// HPPerLevel scales enemy hit points with level.
const HPPerLevel = 10

// Enemy represents a hostile creature placed in a zone.
type Enemy struct {
	ID         string             // Unique within the zone (e.g., "wolf_3")
	Def        *gamedata.EnemyDef // Kind definition, nil for ad-hoc enemies
	Name       string             // Display name (e.g., "Wolf")
	X, Y       int                // Position in tiles
	TileID     tiles.ID           // Sprite tile
	Level      int
	HP         int
	MaxHP      int
	Aggressive bool
	Patrol     []world.Point // Patrol route, starts as the spawn point
}

// NewEnemy creates an enemy of kind def at (x, y) with HP scaled by level.
func NewEnemy(id string, def *gamedata.EnemyDef, x, y, level int, tile tiles.ID) *Enemy {
	if level < 1 {
		level = 1
	}
	e := &Enemy{
		ID:         id,
		Def:        def,
		X:          x,
		Y:          y,
		TileID:     tile,
		Level:      level,
		HP:         level * HPPerLevel,
		MaxHP:      level * HPPerLevel,
		Aggressive: true,
		Patrol:     []world.Point{{X: x, Y: y}},
	}
	if def != nil {
		e.Name = def.Name
		e.Aggressive = def.Aggressive
	}
	return e
}

// Position returns the enemy's current x, y coordinates.
func (e *Enemy) Position() (int, int) {
	return e.X, e.Y
}

// Kind returns the enemy's type identifier, "" for ad-hoc enemies.
func (e *Enemy) Kind() string {
	if e.Def != nil {
		return e.Def.ID
	}
	return ""
}

// SetPatrol replaces the patrol route. An empty route keeps the enemy at
// its current position.
func (e *Enemy) SetPatrol(points []world.Point) {
	if len(points) == 0 {
		e.Patrol = []world.Point{{X: e.X, Y: e.Y}}
		return
	}
	e.Patrol = append([]world.Point(nil), points...)
}

// IsAlive reports whether the enemy has hit points left.
func (e *Enemy) IsAlive() bool {
	return e.HP > 0
}

// TakeDamage subtracts damage, never below zero, and returns the remaining HP.
func (e *Enemy) TakeDamage(damage int) int {
	if damage < 0 {
		damage = 0
	}
	e.HP = max(0, e.HP-damage)
	return e.HP
}
