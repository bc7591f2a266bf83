package furigana

import (
	"regexp"
	"strings"
	"unicode"
)

// bracketPattern matches one furigana block in bracket notation, e.g. 食[た].
// The base text runs back to the previous space, which is consumed with it.
var bracketPattern = regexp.MustCompile(` ?([^ \[\]>]+)\[([^\]]+)\]`)

// Segment is a piece of surface text with the reading shown above it.
// An empty Reading renders the text bare.
type Segment struct {
	Text    string `json:"text"`
	Reading string `json:"reading,omitempty"`
}

// ToRuby converts bracket notation into ruby markup:
// 食[た]べる becomes <ruby>食<rt>た</rt></ruby>べる.
func ToRuby(s string) string {
	return bracketPattern.ReplaceAllString(s, "<ruby>${1}<rt>${2}</rt></ruby>")
}

// Remove drops the bracketed readings and keeps the base text.
func Remove(s string) string {
	return bracketPattern.ReplaceAllString(s, "${1}")
}

// Promote replaces each annotated base text with its reading.
func Promote(s string) string {
	return bracketPattern.ReplaceAllString(s, "${2}")
}

// Render formats aligned segments as ruby markup. Segments whose reading is
// empty or repeats the text are written without annotation.
func Render(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Reading == "" || seg.Reading == seg.Text {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString("<ruby>")
		b.WriteString(seg.Text)
		b.WriteString("<rt>")
		b.WriteString(seg.Reading)
		b.WriteString("</rt></ruby>")
	}
	return b.String()
}

// IsKanji reports whether r is a Han ideograph (including 々).
func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

// IsKana returns true if rune is Hiragana or Katakana
func IsKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// HasKanji reports whether s contains at least one kanji.
func HasKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// KatakanaToHiragana converts katakana to hiragana for furigana display
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
