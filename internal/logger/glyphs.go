package logger

import (
	"strconv"
	"strings"
)

// GlyphRows is the height of every digit glyph.
const GlyphRows = 7

// blockFill is the character used to draw glyphs and fixed art.
const blockFill = "█"

// digitGlyphs maps each decimal digit to its block-art rows.
// All glyphs share the same width so rows concatenate cleanly.
var digitGlyphs = map[rune][GlyphRows]string{
	'0': {
		"███████████",
		"██       ██",
		"██       ██",
		"██       ██",
		"██       ██",
		"██       ██",
		"███████████",
	},
	'1': {
		"    ███    ",
		" ██████    ",
		"    ███    ",
		"    ███    ",
		"    ███    ",
		"    ███    ",
		" ████████  ",
	},
	'2': {
		"██████████ ",
		"██      ██ ",
		"        ██ ",
		"██████████ ",
		"██         ",
		"██      ██ ",
		"██████████ ",
	},
	'3': {
		"██████████ ",
		"██      ██ ",
		"        ██ ",
		"   ███████ ",
		"        ██ ",
		"██      ██ ",
		"██████████ ",
	},
	'4': {
		"██      ██ ",
		"██      ██ ",
		"██      ██ ",
		"██████████ ",
		"        ██ ",
		"        ██ ",
		"        ██ ",
	},
	'5': {
		"██████████ ",
		"██         ",
		"██         ",
		"██████████ ",
		"        ██ ",
		"██      ██ ",
		"██████████ ",
	},
	'6': {
		"██████████ ",
		"██         ",
		"██         ",
		"██████████ ",
		"██      ██ ",
		"██      ██ ",
		"██████████ ",
	},
	'7': {
		"██████████ ",
		"        ██ ",
		"        ██ ",
		"        ██ ",
		"        ██ ",
		"        ██ ",
		"        ██ ",
	},
	'8': {
		"██████████ ",
		"██      ██ ",
		"██      ██ ",
		"██████████ ",
		"██      ██ ",
		"██      ██ ",
		"██████████ ",
	},
	'9': {
		"██████████ ",
		"██      ██ ",
		"██      ██ ",
		"██████████ ",
		"        ██ ",
		"        ██ ",
		"██████████ ",
	},
}

// Glyph returns the rows for a single digit character.
func Glyph(digit rune) ([GlyphRows]string, bool) {
	g, ok := digitGlyphs[digit]
	return g, ok
}

// Banner composes the block-art rows for a non-negative number by joining
// each digit's rows left to right. Negative values render their absolute value.
func Banner(n int) [GlyphRows]string {
	if n < 0 {
		n = -n
	}
	var rows [GlyphRows]string
	var b [GlyphRows]strings.Builder
	for _, d := range strconv.Itoa(n) {
		g := digitGlyphs[d]
		for i := range g {
			b[i].WriteString(g[i])
		}
	}
	for i := range rows {
		rows[i] = b[i].String()
	}
	return rows
}

// FixedArt is a named block of pre-drawn rows printed without timestamps.
type FixedArt struct {
	Name string
	Rows []string
}

// SadFace is rendered after every error message.
var SadFace = FixedArt{
	Name: "sad face",
	Rows: []string{
		"     ██████████████     ",
		"   ██              ██   ",
		" ██                  ██ ",
		"██   ████      ████   ██",
		"██   ████      ████   ██",
		"██                    ██",
		"██                    ██",
		"██     ██████████     ██",
		" ██     ████████     ██ ",
		"   ██              ██   ",
		"     ██████████████     ",
	},
}

// isDecorative reports whether msg looks like pre-formatted art or a rule,
// in which case no timestamp is prefixed.
func isDecorative(msg string) bool {
	return strings.Contains(msg, "----") || strings.Contains(msg, blockFill)
}
