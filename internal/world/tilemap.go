// Package world generates tile maps from noise and biome profiles.
package world

import (
	"fmt"

	"github.com/samdwyer/realmforge/internal/noise"
	"github.com/samdwyer/realmforge/internal/tiles"
)

// DefaultTileSize is the pixel edge of one tile.
const DefaultTileSize = 32

// ErrInvalidDimensions is returned for a non-positive width or height.
var ErrInvalidDimensions = noise.ErrInvalidDimensions

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// TileMap is a grid of tile IDs backed by a shared catalog.
type TileMap struct {
	Width    int
	Height   int
	TileSize int
	Biome    string
	Seed     int64 // Regenerating with this seed rebuilds the same map

	cells    []tiles.ID
	catalog  *tiles.Catalog
	height   *noise.Field
	moisture *noise.Field
}

// NewTileMap returns an empty width×height map.
func NewTileMap(catalog *tiles.Catalog, width, height int) (*TileMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("tile map %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &TileMap{
		Width:    width,
		Height:   height,
		TileSize: DefaultTileSize,
		cells:    make([]tiles.ID, width*height),
		catalog:  catalog,
	}, nil
}

// InBounds reports whether (x, y) lies on the map.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// TileAt returns the tile at (x, y), or tiles.Empty off the map.
func (m *TileMap) TileAt(x, y int) tiles.ID {
	if !m.InBounds(x, y) {
		return tiles.Empty
	}
	return m.cells[y*m.Width+x]
}

// CategoryAt returns the category of the tile at (x, y). It reports false
// for empty cells and coordinates off the map.
func (m *TileMap) CategoryAt(x, y int) (tiles.Category, bool) {
	id := m.TileAt(x, y)
	if id == tiles.Empty {
		return "", false
	}
	return m.catalog.Category(id)
}

// SetTile replaces the tile at (x, y). It reports false off the map.
func (m *TileMap) SetTile(x, y int, id tiles.ID) bool {
	if !m.InBounds(x, y) {
		return false
	}
	m.cells[y*m.Width+x] = id
	return true
}

// AttachFields associates the noise the map was generated from.
func (m *TileMap) AttachFields(height, moisture *noise.Field) error {
	for _, f := range []*noise.Field{height, moisture} {
		if f == nil {
			return ErrNoiseFieldsMissing
		}
		if f.Width != m.Width || f.Height != m.Height {
			return fmt.Errorf("field %dx%d does not match map %dx%d", f.Width, f.Height, m.Width, m.Height)
		}
	}
	m.height, m.moisture = height, moisture
	return nil
}

// Fields returns the attached height and moisture fields, nil when absent.
func (m *TileMap) Fields() (height, moisture *noise.Field) {
	return m.height, m.moisture
}

// Catalog returns the catalog tile IDs refer to.
func (m *TileMap) Catalog() *tiles.Catalog {
	return m.catalog
}

// CountCategory counts the cells whose tile belongs to category.
func (m *TileMap) CountCategory(category tiles.Category) int {
	n := 0
	for _, id := range m.cells {
		if cat, ok := m.catalog.Category(id); ok && cat == category {
			n++
		}
	}
	return n
}

// Cells calls fn for every cell in row-major order.
func (m *TileMap) Cells(fn func(x, y int, id tiles.ID)) {
	for i, id := range m.cells {
		fn(i%m.Width, i/m.Width, id)
	}
}
