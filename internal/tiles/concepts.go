// Package tiles maps semantic tile concepts to concrete art assets.
package tiles

import "slices"

// Concept is a semantic tile kind independent of any particular asset.
type Concept string

const (
	GrassPlain     Concept = "grass-plain"
	GrassWild      Concept = "grass-wild"
	DirtPath       Concept = "dirt-path"
	StonePath      Concept = "stone-path"
	Water          Concept = "water"
	WaterEdge      Concept = "water-edge"
	WallStone      Concept = "wall-stone"
	WallWood       Concept = "wall-wood"
	DoorWood       Concept = "door-wood"
	DoorMetal      Concept = "door-metal"
	FloorStone     Concept = "floor-stone"
	FloorWood      Concept = "floor-wood"
	House          Concept = "house"
	Tree           Concept = "tree"
	Rock           Concept = "rock"
	Bush           Concept = "bush"
	Flower         Concept = "flower"
	MountainBase   Concept = "mountain-base"
	MountainForest Concept = "mountain-forest"
	Chest          Concept = "chest"
	Barrel         Concept = "barrel"
	Table          Concept = "table"
	Chair          Concept = "chair"
	Player         Concept = "player"
	Villager       Concept = "villager"
	Merchant       Concept = "merchant"
	Guard          Concept = "guard"
	MonsterSmall   Concept = "monster-small"
	MonsterLarge   Concept = "monster-large"
)

// Category groups concepts for weighting and lookups.
type Category string

const (
	CatGrass          Category = "grass"
	CatWater          Category = "water"
	CatTrees          Category = "trees"
	CatMountains      Category = "mountains"
	CatHouses         Category = "houses"
	CatPaths          Category = "paths"
	CatWalls          Category = "walls"
	CatFloors         Category = "floors"
	CatDoors          Category = "doors"
	CatItems          Category = "items"
	CatSpecial        Category = "special"
	CatCharacters     Category = "characters"
	CatMonsters       Category = "monsters"
	CatWaterEdge      Category = "water-edge"
	CatMountainBase   Category = "mountain-base"
	CatMountainForest Category = "mountain-forest"
)

// conceptCategory is the single owning category of every concept.
var conceptCategory = map[Concept]Category{
	GrassPlain:     CatGrass,
	GrassWild:      CatGrass,
	Flower:         CatGrass,
	DirtPath:       CatPaths,
	StonePath:      CatPaths,
	Water:          CatWater,
	WaterEdge:      CatWaterEdge,
	WallStone:      CatWalls,
	WallWood:       CatWalls,
	DoorWood:       CatDoors,
	DoorMetal:      CatDoors,
	FloorStone:     CatFloors,
	FloorWood:      CatFloors,
	House:          CatHouses,
	Tree:           CatTrees,
	Bush:           CatTrees,
	Rock:           CatMountains,
	MountainBase:   CatMountainBase,
	MountainForest: CatMountainForest,
	Chest:          CatItems,
	Barrel:         CatItems,
	Table:          CatItems,
	Chair:          CatItems,
	Player:         CatSpecial,
	Villager:       CatCharacters,
	Merchant:       CatCharacters,
	Guard:          CatCharacters,
	MonsterSmall:   CatMonsters,
	MonsterLarge:   CatMonsters,
}

// allCategories fixes an iteration order for anything that walks categories.
var allCategories = []Category{
	CatGrass, CatWater, CatTrees, CatMountains, CatHouses, CatPaths,
	CatWalls, CatFloors, CatDoors, CatItems, CatSpecial, CatCharacters,
	CatMonsters, CatWaterEdge, CatMountainBase, CatMountainForest,
}

// Category returns the category the concept belongs to.
func (c Concept) Category() (Category, bool) {
	cat, ok := conceptCategory[c]
	return cat, ok
}

// Valid reports whether c is a known concept.
func (c Concept) Valid() bool {
	_, ok := conceptCategory[c]
	return ok
}

// Concepts returns every known concept, sorted.
func Concepts() []Concept {
	out := make([]Concept, 0, len(conceptCategory))
	for c := range conceptCategory {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Categories returns every category in a fixed order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory converts a table key into a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
