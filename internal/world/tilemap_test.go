package world

import (
	"errors"
	"testing"

	"github.com/samdwyer/realmforge/internal/noise"
	"github.com/samdwyer/realmforge/internal/tiles"
)

func TestTileMapBounds(t *testing.T) {
	catalog := tiles.NewCatalog()
	tree, _ := catalog.Register("tree1.png", tiles.Tree)
	m, err := NewTileMap(catalog, 4, 3)
	if err != nil {
		t.Fatalf("NewTileMap: %v", err)
	}

	if !m.SetTile(3, 2, tree) {
		t.Error("SetTile(3, 2) should succeed")
	}
	if m.SetTile(4, 0, tree) || m.SetTile(0, -1, tree) {
		t.Error("SetTile off the map should report false")
	}
	if got := m.TileAt(3, 2); got != tree {
		t.Errorf("TileAt(3, 2) = %d, want %d", got, tree)
	}
	if got := m.TileAt(-1, 0); got != tiles.Empty {
		t.Errorf("TileAt(-1, 0) = %d, want Empty", got)
	}

	if cat, ok := m.CategoryAt(3, 2); !ok || cat != tiles.CatTrees {
		t.Errorf("CategoryAt(3, 2) = %q, %v, want trees", cat, ok)
	}
	if _, ok := m.CategoryAt(0, 0); ok {
		t.Error("CategoryAt on an empty cell should report false")
	}
	if _, ok := m.CategoryAt(10, 10); ok {
		t.Error("CategoryAt off the map should report false")
	}
	if got := m.CountCategory(tiles.CatTrees); got != 1 {
		t.Errorf("CountCategory(trees) = %d, want 1", got)
	}
}

func TestNewTileMapInvalid(t *testing.T) {
	if _, err := NewTileMap(tiles.NewCatalog(), 0, 3); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewTileMap(0, 3) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestAttachFieldsChecksSize(t *testing.T) {
	m, _ := NewTileMap(tiles.NewCatalog(), 4, 4)
	small, _ := noise.Generate(2, 2, noise.Params{Scale: 1, Octaves: 1})
	right, _ := noise.Generate(4, 4, noise.Params{Scale: 1, Octaves: 1})

	if err := m.AttachFields(small, right); err == nil {
		t.Error("AttachFields should reject a mismatched field")
	}
	if err := m.AttachFields(right, nil); !errors.Is(err, ErrNoiseFieldsMissing) {
		t.Errorf("AttachFields(nil) error = %v, want ErrNoiseFieldsMissing", err)
	}
	if err := m.AttachFields(right, right); err != nil {
		t.Errorf("AttachFields: %v", err)
	}
}

func TestWalkLineIsConnected(t *testing.T) {
	tests := []struct{ from, to Point }{
		{Point{0, 0}, Point{5, 0}},
		{Point{0, 0}, Point{0, -4}},
		{Point{2, 3}, Point{9, 7}},
		{Point{9, 1}, Point{0, 6}},
		{Point{4, 4}, Point{4, 4}},
	}
	for _, tt := range tests {
		var path []Point
		walkLine(tt.from, tt.to, func(p Point) { path = append(path, p) })

		if path[0] != tt.from || path[len(path)-1] != tt.to {
			t.Errorf("walkLine(%v, %v) runs %v..%v", tt.from, tt.to, path[0], path[len(path)-1])
		}
		for i := 1; i < len(path); i++ {
			if abs(path[i].X-path[i-1].X)+abs(path[i].Y-path[i-1].Y) != 1 {
				t.Errorf("walkLine(%v, %v): %v and %v are not edge-adjacent", tt.from, tt.to, path[i-1], path[i])
			}
		}
	}
}
