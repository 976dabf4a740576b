// Package gamedata provides the embedded world-building tables: tile assets,
// biome profiles, enemy kinds and the village roster.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
