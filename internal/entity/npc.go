package entity

import (
	"maps"
	"slices"

	"github.com/samdwyer/realmforge/internal/tiles"
)

// NPC is a non-hostile character with dialogue and quests to give.
type NPC struct {
	ID       string
	Name     string
	Role     string
	X, Y     int
	TileID   tiles.ID
	Dialogue map[string]string // Keyed by topic: "greeting", "farewell", ...
	QuestIDs []string
}

// NewNPC creates an NPC with no dialogue.
func NewNPC(id, name, role string, x, y int, tile tiles.ID) *NPC {
	return &NPC{
		ID:       id,
		Name:     name,
		Role:     role,
		X:        x,
		Y:        y,
		TileID:   tile,
		Dialogue: make(map[string]string),
	}
}

// Position returns the NPC's current x, y coordinates.
func (n *NPC) Position() (int, int) {
	return n.X, n.Y
}

// SetDialogue replaces the dialogue table with a copy of lines.
func (n *NPC) SetDialogue(lines map[string]string) {
	n.Dialogue = maps.Clone(lines)
	if n.Dialogue == nil {
		n.Dialogue = make(map[string]string)
	}
}

// Line returns the dialogue line for topic.
func (n *NPC) Line(topic string) (string, bool) {
	line, ok := n.Dialogue[topic]
	return line, ok
}

// AddQuest records that the NPC gives questID. Duplicates are ignored.
func (n *NPC) AddQuest(questID string) {
	if !slices.Contains(n.QuestIDs, questID) {
		n.QuestIDs = append(n.QuestIDs, questID)
	}
}
