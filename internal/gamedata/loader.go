package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}

	return result, nil
}

// Bundle groups every table the world builder consumes.
type Bundle struct {
	Assets     []AssetDef
	Biomes     BiomesFile
	Enemies    []EnemyDef
	Population PopulationFile
}

// LoadBundle loads all embedded tables at once.
func LoadBundle() (*Bundle, error) {
	assets, err := LoadAssets()
	if err != nil {
		return nil, err
	}
	biomes, err := LoadBiomes()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	population, err := LoadPopulation()
	if err != nil {
		return nil, err
	}
	return &Bundle{
		Assets:     assets,
		Biomes:     biomes,
		Enemies:    enemies,
		Population: population,
	}, nil
}
