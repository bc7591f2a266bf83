package ending

import (
	"strings"
	"unicode/utf8"

	"endingspan/model"
)

// Marker tags wrapped around the inflectional ending.
const (
	OpenMarker  = "<span class=ending>"
	CloseMarker = "</span>"
)

const (
	rubyOpen     = "<ruby>"
	rubyClose    = "</ruby>"
	readingOpen  = "<rt>"
	readingClose = "</rt>"
)

// tagCounts holds literal occurrence counts of the ruby tag family in a tail.
type tagCounts struct {
	rubyOpen     int
	rubyClose    int
	readingOpen  int
	readingClose int
}

func countTags(s string) tagCounts {
	return tagCounts{
		rubyOpen:     strings.Count(s, rubyOpen),
		rubyClose:    strings.Count(s, rubyClose),
		readingOpen:  strings.Count(s, readingOpen),
		readingClose: strings.Count(s, readingClose),
	}
}

func (c tagCounts) rubyBalanced() bool    { return c.rubyOpen == c.rubyClose }
func (c tagCounts) readingBalanced() bool { return c.readingOpen == c.readingClose }

// Insert returns form with the suffix that diverges from base wrapped in an
// ending span. Equal inputs are returned unchanged.
func Insert(base, form string) string {
	return Mark(base, form).Marked
}

// SplitIndex returns the length, in characters, of the longest common
// prefix of base and form.
func SplitIndex(base, form string) int {
	chars, _ := commonPrefix(base, form)
	return chars
}

// Classify reports which markup region of form the character offset split
// falls into, judged by the tag counts of the tail starting at split.
func Classify(form string, split int) model.Context {
	return classify(countTags(form[byteOffset(form, split):]))
}

func classify(tags tagCounts) model.Context {
	switch {
	case tags.rubyBalanced():
		return model.PlainContext
	case tags.readingBalanced():
		return model.RubyContext
	default:
		return model.ReadingContext
	}
}

// Mark performs the same transformation as Insert and reports where the
// split landed and how it was adjusted.
func Mark(base, form string) model.Result {
	res := model.Result{
		Pair: model.Pair{BaseForm: base, Conjugation: form},
	}
	if base == form {
		n := utf8.RuneCountInString(form)
		res.Marked = form
		res.SplitIndex = n
		res.AdjustedIndex = n
		res.Context = model.IdenticalContext
		return res
	}

	chars, off := commonPrefix(base, form)
	res.SplitIndex = chars
	res.AdjustedIndex = chars
	res.Context = classify(countTags(form[off:]))

	switch res.Context {
	case model.PlainContext:
		res.Marked = wrap(form, off)
	case model.RubyContext:
		// Walk left until the tail no longer starts inside a ruby block.
		for off > 0 && !countTags(form[off:]).rubyBalanced() {
			_, size := utf8.DecodeLastRuneInString(form[:off])
			off -= size
			chars--
		}
		res.AdjustedIndex = chars
		res.Marked = wrap(form, off)
	default:
		res.Marked, res.Fallback = wrapReading(form, off)
	}
	return res
}

// Strip removes every marker tag from s. It assumes the unmarked text never
// contained marker tags of its own.
func Strip(s string) string {
	s = strings.ReplaceAll(s, OpenMarker, "")
	return strings.ReplaceAll(s, CloseMarker, "")
}

func wrap(form string, off int) string {
	var b strings.Builder
	b.Grow(len(form) + len(OpenMarker) + len(CloseMarker))
	b.WriteString(form[:off])
	b.WriteString(OpenMarker)
	b.WriteString(form[off:])
	b.WriteString(CloseMarker)
	return b.String()
}

// wrapReading handles a split inside a reading block: the rest of the reading
// and the text after the enclosing ruby block get separate spans, leaving the
// </rt>...</ruby> run between them untouched. The bool result reports a
// fallback taken because the expected closing tags were missing.
func wrapReading(form string, off int) (string, bool) {
	tail := form[off:]
	rt := strings.Index(tail, readingClose)
	if rt < 0 {
		return wrap(form, off), true
	}

	var b strings.Builder
	b.Grow(len(form) + 2*(len(OpenMarker)+len(CloseMarker)))
	b.WriteString(form[:off])
	b.WriteString(OpenMarker)
	b.WriteString(tail[:rt])
	b.WriteString(CloseMarker)

	rest := tail[rt:]
	rc := strings.Index(rest, rubyClose)
	if rc < 0 {
		b.WriteString(rest)
		return b.String(), true
	}
	end := rc + len(rubyClose)
	b.WriteString(rest[:end])
	b.WriteString(OpenMarker)
	b.WriteString(rest[end:])
	b.WriteString(CloseMarker)
	return b.String(), false
}

// commonPrefix walks a and b one character at a time and returns the length
// of their shared prefix in characters and in bytes. Characters compare by
// their exact encoding so invalid bytes never match each other by accident.
func commonPrefix(a, b string) (chars, off int) {
	for off < len(a) && off < len(b) {
		_, na := utf8.DecodeRuneInString(a[off:])
		_, nb := utf8.DecodeRuneInString(b[off:])
		if na != nb || a[off:off+na] != b[off:off+nb] {
			break
		}
		off += na
		chars++
	}
	return chars, off
}

// byteOffset converts a character offset into a byte offset, clamped to len(s).
func byteOffset(s string, chars int) int {
	if chars <= 0 {
		return 0
	}
	off := 0
	for i := 0; i < chars && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}
