package gamedata

import (
	"errors"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
// Negative weights count as zero.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	enemies = append([]EnemyDef(nil), enemies...)
	totalWeight := 0
	for i := range enemies {
		if enemies[i].SpawnWeight < 0 {
			enemies[i].SpawnWeight = 0
		}
		totalWeight += enemies[i].SpawnWeight
	}
	return &EnemyRegistry{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID.
func (r *EnemyRegistry) GetByID(id string) (*EnemyDef, bool) {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i], true
		}
	}
	return nil, false
}

// All returns a copy of the enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	out := make([]EnemyDef, len(r.enemies))
	copy(out, r.enemies)
	return out
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
