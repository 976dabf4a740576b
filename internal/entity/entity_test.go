package entity

import (
	"testing"

	"github.com/samdwyer/realmforge/internal/gamedata"
	"github.com/samdwyer/realmforge/internal/world"
)

func TestNewEnemyScalesHP(t *testing.T) {
	wolf := &gamedata.EnemyDef{ID: "wolf", Name: "Wolf", Aggressive: true}

	tests := []struct {
		level, wantLevel, wantHP int
	}{
		{1, 1, 10},
		{3, 3, 30},
		{5, 5, 50},
		{0, 1, 10},
	}
	for _, tt := range tests {
		e := NewEnemy("wolf_0", wolf, 4, 7, tt.level, 1)
		if e.Level != tt.wantLevel || e.HP != tt.wantHP || e.MaxHP != tt.wantHP {
			t.Errorf("NewEnemy(level %d): level=%d hp=%d max=%d, want %d/%d",
				tt.level, e.Level, e.HP, e.MaxHP, tt.wantLevel, tt.wantHP)
		}
	}

	e := NewEnemy("wolf_0", wolf, 4, 7, 2, 1)
	if e.Name != "Wolf" || e.Kind() != "wolf" || !e.Aggressive {
		t.Errorf("enemy did not inherit its kind: %+v", e)
	}
	if len(e.Patrol) != 1 || e.Patrol[0] != (world.Point{X: 4, Y: 7}) {
		t.Errorf("initial patrol = %v, want spawn point", e.Patrol)
	}
}

func TestEnemyDamage(t *testing.T) {
	e := NewEnemy("boar_1", nil, 0, 0, 2, 1)
	if e.Kind() != "" {
		t.Errorf("ad-hoc enemy Kind = %q, want empty", e.Kind())
	}

	if hp := e.TakeDamage(5); hp != 15 {
		t.Errorf("TakeDamage(5) = %d, want 15", hp)
	}
	if hp := e.TakeDamage(-3); hp != 15 {
		t.Errorf("negative damage changed HP to %d", hp)
	}
	if hp := e.TakeDamage(100); hp != 0 {
		t.Errorf("TakeDamage(100) = %d, want 0", hp)
	}
	if e.IsAlive() {
		t.Error("enemy with 0 HP should not be alive")
	}
}

func TestEnemyPatrol(t *testing.T) {
	e := NewEnemy("wolf_0", nil, 2, 2, 1, 1)
	route := []world.Point{{X: 2, Y: 2}, {X: 5, Y: 2}}
	e.SetPatrol(route)
	route[1].X = 99
	if e.Patrol[1].X != 5 {
		t.Error("SetPatrol kept a reference to the caller's slice")
	}

	e.SetPatrol(nil)
	if len(e.Patrol) != 1 || e.Patrol[0] != (world.Point{X: 2, Y: 2}) {
		t.Errorf("empty patrol = %v, want current position", e.Patrol)
	}
}

func TestNPCDialogueAndQuests(t *testing.T) {
	n := NewNPC("merchant_01", "Marcus", "Merchant", 22, 18, 1)
	lines := map[string]string{"greeting": "Welcome!"}
	n.SetDialogue(lines)
	lines["greeting"] = "changed"

	if got, ok := n.Line("greeting"); !ok || got != "Welcome!" {
		t.Errorf("Line(greeting) = %q, %v", got, ok)
	}
	if _, ok := n.Line("quest"); ok {
		t.Error("Line(quest) should be missing")
	}

	n.AddQuest("gather_supplies")
	n.AddQuest("gather_supplies")
	if len(n.QuestIDs) != 1 {
		t.Errorf("QuestIDs = %v, want one entry", n.QuestIDs)
	}
}

func TestQuestProgress(t *testing.T) {
	q := NewQuest("gather_supplies", "Gather Supplies", "Help Marcus", "merchant_01")
	q.AddObjective("Collect wolf pelts", "wolf", 5)
	q.AddObjective("Find herbs", "herb", 2)

	if q.UpdateProgress("bear", 1) {
		t.Error("unrelated target should not match")
	}

	q.UpdateProgress("wolf", 3)
	if q.Completed {
		t.Fatal("quest completed early")
	}
	q.UpdateProgress("wolf", 4)
	if got := q.Objectives[0].Current; got != 5 {
		t.Errorf("wolf progress = %d, want capped at 5", got)
	}
	if q.Completed {
		t.Fatal("quest completed with herbs outstanding")
	}

	if !q.UpdateProgress("herb", 2) {
		t.Error("herb progress should match")
	}
	if !q.Completed {
		t.Error("quest should complete once every objective is done")
	}
	if q.UpdateProgress("wolf", 1) {
		t.Error("completed quest should ignore progress")
	}
}

func TestQuestWithoutObjectivesNeverCompletes(t *testing.T) {
	q := NewQuest("empty", "Empty", "", "")
	q.UpdateProgress("anything", 1)
	if q.Completed {
		t.Error("quest without objectives completed")
	}
}
