package gamedata

// EnemyDef defines an enemy kind loaded from JSON.
type EnemyDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "wolf")
	Name        string `json:"name"`        // Display name (e.g., "Wolf")
	Concept     string `json:"concept"`     // Tile concept used for its sprite
	Aggressive  bool   `json:"aggressive"`  // Attacks on sight
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
