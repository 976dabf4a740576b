package gamedata

// NoisePreset holds the octave parameters for one noise field.
type NoisePreset struct {
	Scale       float64 `json:"scale"`
	Octaves     int     `json:"octaves"`
	Persistence float64 `json:"persistence"`
	Lacunarity  float64 `json:"lacunarity"`
}

// TerrainBand maps heights strictly below Below to Concept.
type TerrainBand struct {
	Below   float64 `json:"below"`
	Concept string  `json:"concept"`
}

// BiomeDef defines a biome profile loaded from JSON.
type BiomeDef struct {
	ID          string             `json:"id"`
	BaseConcept string             `json:"baseConcept"` // Fallback concept for failed resolutions
	Weights     map[string]float64 `json:"weights"`     // Category distribution used by contextual selection
	Terrain     []TerrainBand      `json:"terrain"`     // Ascending height bands
	Otherwise   string             `json:"otherwise"`   // Concept for heights above every band
	Features    string             `json:"features"`    // Feature pass: "village", "forest" or ""
	Contextual  bool               `json:"contextual"`  // Base layer drawn by the tile selector
	Height      NoisePreset        `json:"height"`
	Moisture    NoisePreset        `json:"moisture"`
	Names       []string           `json:"names"` // Default zone names
}

// RuleDef is one weight adjustment applied by the tile selector.
//
// When is one of "height_above", "height_below", "moisture_above" or
// "center_within". Else multipliers apply when the condition fails; they are
// only meaningful for rules scoped to a single biome.
type RuleDef struct {
	When      string             `json:"when"`
	Threshold float64            `json:"threshold"`
	Biome     string             `json:"biome,omitempty"`
	Then      map[string]float64 `json:"then"`
	Else      map[string]float64 `json:"else,omitempty"`
}

// BiomesFile represents the structure of biomes.json.
type BiomesFile struct {
	Default     string                       `json:"default"`
	Biomes      []BiomeDef                   `json:"biomes"`
	Rules       []RuleDef                    `json:"rules"`
	Transitions map[string]map[string]string `json:"transitions"` // drawn -> dominant neighbor -> substitute
}

// LoadBiomes loads the biome table from the embedded biomes.json file.
func LoadBiomes() (BiomesFile, error) {
	return Load[BiomesFile]("biomes.json")
}
