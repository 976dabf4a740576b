package ui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/realmforge/internal/tiles"
	"github.com/samdwyer/realmforge/internal/zone"
)

const (
	unknownGlyph  = '?'
	landmarkGlyph = '*'
)

// Renderer draws zones onto a canvas.
type Renderer struct {
	canvas  Canvas
	catalog *tiles.Catalog
}

// NewRenderer creates a renderer that looks glyphs up in catalog.
func NewRenderer(canvas Canvas, catalog *tiles.Catalog) *Renderer {
	return &Renderer{canvas: canvas, catalog: catalog}
}

// Render draws the zone map, its landmarks and inhabitants, and a status
// line below the map. Cells outside the canvas are skipped.
func (r *Renderer) Render(z *zone.Zone) {
	r.canvas.Clear()

	if z.Map != nil {
		z.Map.Cells(func(x, y int, id tiles.ID) {
			glyph, style := r.tileStyle(id)
			r.put(x, y, glyph, style)
		})
	}

	landmarkStyle := tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	for _, l := range z.Landmarks {
		r.put(l.X, l.Y, landmarkGlyph, landmarkStyle)
	}

	// Sorted so overlapping inhabitants draw deterministically.
	for _, id := range sortedKeys(z.NPCs) {
		n := z.NPCs[id]
		glyph, style := r.tileStyle(n.TileID)
		r.put(n.X, n.Y, glyph, style.Bold(true))
	}
	for _, id := range sortedKeys(z.Enemies) {
		e := z.Enemies[id]
		if !e.IsAlive() {
			continue
		}
		glyph, style := r.tileStyle(e.TileID)
		r.put(e.X, e.Y, glyph, style.Bold(true))
	}

	status := fmt.Sprintf("%s (%s, levels %s) npcs:%d enemies:%d  q to quit",
		z.Name, z.Biome, z.Levels, len(z.NPCs), len(z.Enemies))
	statusY := 0
	if z.Map != nil {
		statusY = z.Map.Height
	}
	r.RenderMessage(status, statusY)

	r.canvas.Show()
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.put(x, y, ch, style)
		x++
	}
}

func (r *Renderer) put(x, y int, ch rune, style tcell.Style) {
	w, h := r.canvas.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.canvas.SetContent(x, y, ch, style)
}

// tileStyle returns the glyph and style recorded for a tile id.
func (r *Renderer) tileStyle(id tiles.ID) (rune, tcell.Style) {
	rec, ok := r.catalog.Record(id)
	if !ok || id == tiles.Empty {
		return unknownGlyph, tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	}
	glyph := rec.Glyph
	if glyph == 0 {
		glyph = unknownGlyph
	}
	return glyph, tcell.StyleDefault.Foreground(rec.Color)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
