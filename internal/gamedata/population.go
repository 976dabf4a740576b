package gamedata

// NPCDef describes a fixed village NPC.
type NPCDef struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Role     string            `json:"role"`
	Concept  string            `json:"concept"`
	Dialogue map[string]string `json:"dialogue"`
}

// ObjectiveDef is one step of a quest.
type ObjectiveDef struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Amount      int    `json:"amount"`
}

// QuestDef describes a quest handed out at population time.
type QuestDef struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Objectives  []ObjectiveDef `json:"objectives"`
	Gold        int            `json:"gold"`
	Items       []string       `json:"items"`
}

// LandmarkDef describes a named point of interest.
type LandmarkDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PopulationFile represents the structure of population.json.
type PopulationFile struct {
	Merchant         NPCDef            `json:"merchant"`
	Innkeeper        NPCDef            `json:"innkeeper"`
	VillagerRoles    []string          `json:"villagerRoles"`
	VillagerDialogue map[string]string `json:"villagerDialogue"` // "%s" is replaced by the lowercased role
	StarterQuest     QuestDef          `json:"starterQuest"`
	ForestLandmark   LandmarkDef       `json:"forestLandmark"`
}

// LoadPopulation loads the roster from the embedded population.json file.
func LoadPopulation() (PopulationFile, error) {
	return Load[PopulationFile]("population.json")
}
