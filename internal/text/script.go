package text

import "unicode"

// japaneseScript covers Hiragana, Katakana, Katakana phonetic extensions,
// halfwidth/fullwidth forms and the CJK unified ideographs block.
var japaneseScript = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x30FF, Stride: 1},
		{Lo: 0x31F0, Hi: 0x31FF, Stride: 1},
		{Lo: 0x4E00, Hi: 0x9FAF, Stride: 1},
		{Lo: 0xFF00, Hi: 0xFFEF, Stride: 1},
	},
}

// HasJapanese reports whether s contains at least one Japanese or CJK
// codepoint.
func HasJapanese(s string) bool {
	for _, r := range s {
		if unicode.Is(japaneseScript, r) {
			return true
		}
	}
	return false
}
