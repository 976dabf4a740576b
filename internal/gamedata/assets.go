package gamedata

import "github.com/gdamore/tcell/v2"

// AssetDef lists the concrete art for one tile concept.
type AssetDef struct {
	Concept string   `json:"concept"` // Concept slug (e.g., "grass-plain")
	Assets  []string `json:"assets"`  // Asset references, relative to the tileset root
	Glyph   string   `json:"glyph"`   // Single character for terminal previews
	Color   string   `json:"color"`   // Hex color for terminal previews
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *AssetDef) GlyphRune() rune {
	for _, r := range a.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the preview color, white when the entry is malformed.
func (a *AssetDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(a.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// AssetsFile represents the structure of assets.json.
type AssetsFile struct {
	TileSize int        `json:"tileSize"`
	Assets   []AssetDef `json:"assets"`
}

// LoadAssets loads the asset table from the embedded assets.json file.
func LoadAssets() ([]AssetDef, error) {
	file, err := Load[AssetsFile]("assets.json")
	if err != nil {
		return nil, err
	}
	return file.Assets, nil
}
