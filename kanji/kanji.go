package kanji

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"endingspan/furigana"
)

// Kanjidic2Kanji is the subset of a kanjidic2 <character> element we read.
type Kanjidic2Kanji struct {
	Literal        string `xml:"literal"`
	ReadingMeaning struct {
		RMGroup []struct {
			Reading []struct {
				Value string `xml:",chardata"`
				Type  string `xml:"r_type,attr"`
			} `xml:"reading"`
		} `xml:"rmgroup"`
	} `xml:"reading_meaning"`
}

// Dictionary maps kanji to their on and kun readings.
type Dictionary struct {
	readings map[rune][]string
}

// LoadFile parses a kanjidic2.xml file.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open kanjidic2: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses kanjidic2 XML from r and builds the kanji→readings map.
func Load(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{readings: make(map[rune][]string)}

	// Use xml.Decoder to find <character> elements directly, skipping any wrapper
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse kanjidic2: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}
		var k Kanjidic2Kanji
		if err := dec.DecodeElement(&k, &se); err != nil {
			return nil, fmt.Errorf("decode kanjidic2 character: %w", err)
		}
		if utf8.RuneCountInString(k.Literal) != 1 {
			continue
		}
		var readings []string
		for _, group := range k.ReadingMeaning.RMGroup {
			for _, rd := range group.Reading {
				if rd.Type == "ja_on" || rd.Type == "ja_kun" {
					readings = append(readings, rd.Value)
				}
			}
		}
		kanjiRune, _ := utf8.DecodeRuneInString(k.Literal)
		d.readings[kanjiRune] = readings
	}
	return d, nil
}

// Readings returns the raw kanjidic readings for r. A nil Dictionary has none.
func (d *Dictionary) Readings(r rune) []string {
	if d == nil {
		return nil
	}
	return d.readings[r]
}

// Len returns the number of kanji entries loaded
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.readings)
}

// Variants returns the hiragana forms a kanjidic reading can take inside a
// word: the full reading, the stem before the okurigana dot, and the reading
// without its affix dashes. Duplicates and empty forms are dropped.
func Variants(reading string) []string {
	var out []string
	add := func(v string) {
		if v == "" {
			return
		}
		for _, have := range out {
			if have == v {
				return
			}
		}
		out = append(out, v)
	}
	add(NormalizeReading(reading))
	if idx := strings.IndexRune(reading, '.'); idx >= 0 {
		add(NormalizeReading(reading[:idx]))
	}
	return out
}

// NormalizeReading removes kanjidic punctuation ('.' and '-') and converts
// katakana to hiragana so "い.る" and "イル" both become "いる".
func NormalizeReading(reading string) string {
	reading = strings.Map(func(r rune) rune {
		if r == '.' || r == '-' {
			return -1
		}
		return r
	}, reading)
	return furigana.KatakanaToHiragana(reading)
}

var rendaku = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
}

// RendakuForm voices the first kana of reading (かわ → がわ). Readings that
// cannot be voiced are returned unchanged.
func RendakuForm(reading string) string {
	r, size := utf8.DecodeRuneInString(reading)
	if voiced, ok := rendaku[r]; ok {
		return string(voiced) + reading[size:]
	}
	return reading
}
