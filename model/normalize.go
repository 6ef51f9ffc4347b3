package model

import "golang.org/x/text/unicode/norm"

// NormalizeText applies Unicode NFC normalization to extractor-produced
// text. PDF content streams sometimes decompose accented glyphs into a
// base character plus combining marks (e.g. when a font's encoding maps
// one character code to a multi-rune sequence); composing them keeps
// paragraph text and search/compare behavior consistent downstream.
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}
