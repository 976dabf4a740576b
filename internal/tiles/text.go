package tiles

import (
	"strings"
	"unicode"
)

// conceptTags scores free-text descriptions against concepts. Narrative
// text arrives from outside the generator; this is the only place it is
// interpreted.
var conceptTags = map[Concept][]string{
	GrassPlain:     {"grass", "meadow", "field", "lawn", "plain"},
	GrassWild:      {"wild", "overgrown", "tall", "weeds"},
	DirtPath:       {"dirt", "path", "trail", "road", "track"},
	StonePath:      {"cobble", "cobblestone", "paved", "pebble"},
	Water:          {"water", "river", "lake", "pond", "stream"},
	WaterEdge:      {"shore", "bank", "shallows"},
	WallStone:      {"wall", "stone", "brick", "masonry"},
	WallWood:       {"palisade", "timber", "log"},
	DoorWood:       {"door", "doorway"},
	DoorMetal:      {"gate", "portcullis", "iron"},
	FloorStone:     {"flagstone", "tiled"},
	FloorWood:      {"plank", "floorboard", "boards"},
	House:          {"house", "cottage", "hut", "inn", "shop"},
	Tree:           {"tree", "oak", "pine", "forest", "woods"},
	Rock:           {"rock", "boulder", "cliff", "crag"},
	Bush:           {"bush", "shrub", "hedge"},
	Flower:         {"flower", "blossom", "bloom"},
	MountainBase:   {"foothill", "slope"},
	MountainForest: {"highland", "alpine"},
	Chest:          {"chest", "treasure", "loot"},
	Barrel:         {"barrel", "cask", "keg"},
	Table:          {"table", "counter", "desk"},
	Chair:          {"chair", "stool", "bench"},
	Player:         {"player", "hero", "adventurer"},
	Villager:       {"villager", "peasant", "farmer"},
	Merchant:       {"merchant", "trader", "shopkeeper"},
	Guard:          {"guard", "soldier", "sentry"},
	MonsterSmall:   {"goblin", "kobold", "wolf", "rat"},
	MonsterLarge:   {"ogre", "troll", "giant"},
}

// ConceptFromText maps a free-text description to the best-scoring concept.
// It reports false when no tag matches; callers then use GrassPlain.
func ConceptFromText(text string) (Concept, bool) {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return "", false
	}
	present := make(map[string]int, len(words))
	for _, w := range words {
		present[w]++
		// plural tolerance: "trees" scores "tree"
		if s, ok := strings.CutSuffix(w, "s"); ok && s != "" {
			present[s]++
		}
	}

	var best Concept
	bestScore := 0
	for _, concept := range Concepts() {
		score := 0
		for _, tag := range conceptTags[concept] {
			score += present[tag]
		}
		if score > bestScore {
			best, bestScore = concept, score
		}
	}
	return best, bestScore > 0
}
