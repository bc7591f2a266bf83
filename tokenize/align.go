package tokenize

import (
	"endingspan/furigana"
	"endingspan/kanji"
)

// align pairs the surface of a token with its katakana reading. Kana shared
// by both ends (okurigana) stay bare; the kanji core gets the rest of the
// reading, split per kanji when the kanji dictionary can account for it.
func (t *Tokenizer) align(surface, reading string) []furigana.Segment {
	if reading == "" || !furigana.HasKanji(surface) {
		return []furigana.Segment{{Text: surface}}
	}
	s := []rune(surface)
	r := []rune(furigana.KatakanaToHiragana(reading))

	head := 0
	for head < len(s) && head < len(r) && furigana.IsKana(s[head]) && s[head] == r[head] {
		head++
	}
	tail := 0
	for tail < len(s)-head && tail < len(r)-head &&
		furigana.IsKana(s[len(s)-1-tail]) && s[len(s)-1-tail] == r[len(r)-1-tail] {
		tail++
	}

	core := s[head : len(s)-tail]
	coreReading := r[head : len(r)-tail]
	if len(coreReading) == 0 {
		return []furigana.Segment{{Text: surface}}
	}

	var out []furigana.Segment
	if head > 0 {
		out = append(out, furigana.Segment{Text: string(s[:head])})
	}
	if split := splitPerKanji(t.kanji, core, coreReading); split != nil {
		out = append(out, split...)
	} else {
		out = append(out, furigana.Segment{Text: string(core), Reading: string(coreReading)})
	}
	if tail > 0 {
		out = append(out, furigana.Segment{Text: string(s[len(s)-tail:])})
	}
	return out
}

// splitPerKanji assigns each kanji of core the longest kanjidic reading that
// matches at the current reading position, trying rendaku forms after the
// first kanji. The last kanji takes any unmatched remainder. It returns nil
// unless core is all kanji and the reading is consumed exactly.
func splitPerKanji(d *kanji.Dictionary, core, reading []rune) []furigana.Segment {
	if d.Len() == 0 || len(core) < 2 {
		return nil
	}
	for _, c := range core {
		if !furigana.IsKanji(c) {
			return nil
		}
	}

	out := make([]furigana.Segment, 0, len(core))
	k := 0
	for j, c := range core {
		best := 0
		for _, kr := range d.Readings(c) {
			for _, v := range kanji.Variants(kr) {
				candidates := []string{v}
				if j > 0 {
					candidates = append(candidates, kanji.RendakuForm(v))
				}
				for _, cand := range candidates {
					n := len([]rune(cand))
					if n > best && k+n <= len(reading) && string(reading[k:k+n]) == cand {
						best = n
					}
				}
			}
		}
		if best == 0 {
			if j != len(core)-1 || k >= len(reading) {
				return nil
			}
			best = len(reading) - k
		}
		out = append(out, furigana.Segment{Text: string(c), Reading: string(reading[k : k+best])})
		k += best
	}
	if k != len(reading) {
		return nil
	}
	return out
}
