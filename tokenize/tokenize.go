package tokenize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"endingspan/furigana"
	"endingspan/kanji"
	"endingspan/model"
)

// Token represents a token / morpheme produced by the tokenizer.
type Token = model.Token

// Dictionary names accepted by WithDictionary.
const (
	DictIPA = "ipa"
	DictUni = "uni"
)

// ErrNoLemma is returned by Lemma when the text holds no content word.
var ErrNoLemma = errors.New("no dictionary form found")

// Tokenizer wraps a kagome tokenizer and an optional kanji dictionary used
// to split compound readings per kanji.
type Tokenizer struct {
	kg    *tokenizer.Tokenizer
	kanji *kanji.Dictionary
}

type options struct {
	dictionary string
	kanji      *kanji.Dictionary
}

// Option configures New.
type Option func(*options)

// WithDictionary selects the kagome system dictionary ("ipa" or "uni").
func WithDictionary(name string) Option {
	return func(o *options) {
		o.dictionary = name
	}
}

// WithKanji enables per-kanji reading alignment.
func WithKanji(d *kanji.Dictionary) Option {
	return func(o *options) {
		o.kanji = d
	}
}

// New builds a Tokenizer. The IPA dictionary is used unless another one is
// selected.
func New(opts ...Option) (*Tokenizer, error) {
	o := options{dictionary: DictIPA}
	for _, opt := range opts {
		opt(&o)
	}
	var d *dict.Dict
	switch o.dictionary {
	case DictIPA, "":
		d = ipa.Dict()
	case DictUni:
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("unknown tokenizer dictionary %q", o.dictionary)
	}
	// omit BOS/EOS so every token maps to input text
	kg, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init kagome: %w", err)
	}
	return &Tokenizer{kg: kg, kanji: o.kanji}, nil
}

// Tokenize uses kagome to produce tokens for the input text (normal mode).
func (t *Tokenizer) Tokenize(ctx context.Context, text string) ([]Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return t.convert(t.kg.Tokenize(text)), nil
}

// Annotate returns text with ruby markup over every token that contains kanji.
func (t *Tokenizer) Annotate(ctx context.Context, text string) (string, error) {
	toks, err := t.Tokenize(ctx, text)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, tk := range toks {
		b.WriteString(tk.Ruby)
	}
	return b.String(), nil
}

// Lemma returns the dictionary form of the first verb or adjective phrase in
// text, e.g. 食べなかった → 食べる and 勉強しました → 勉強する.
func (t *Tokenizer) Lemma(ctx context.Context, text string) (string, error) {
	toks, err := t.Tokenize(ctx, text)
	if err != nil {
		return "", err
	}
	merged := MergeAuxiliaries(toks)
	for i, tk := range merged {
		switch {
		case strings.HasPrefix(tk.POS, "名詞,サ変接続") && i+1 < len(merged) && merged[i+1].Lemma == "する":
			return tk.Text + "する", nil
		case isPredicate(tk.POS):
			return tk.Lemma, nil
		}
	}
	return "", fmt.Errorf("%q: %w", text, ErrNoLemma)
}

func isPredicate(pos string) bool {
	return strings.HasPrefix(pos, "動詞") || strings.HasPrefix(pos, "形容詞")
}

func isAuxiliary(tk Token) bool {
	switch {
	case strings.HasPrefix(tk.POS, "助動詞"),
		strings.HasPrefix(tk.POS, "動詞,非自立"),
		strings.HasPrefix(tk.POS, "動詞,接尾"),
		strings.HasPrefix(tk.POS, "形容詞,非自立"):
		return true
	case strings.HasPrefix(tk.POS, "助詞,接続助詞"):
		return tk.Text == "て" || tk.Text == "で"
	}
	return false
}

// MergeAuxiliaries scans tokens and merges verb or adjective + auxiliary
// sequences into a single token whose Lemma stays the head's dictionary form.
func MergeAuxiliaries(tokens []Token) []Token {
	var out []Token
	i := 0
	for i < len(tokens) {
		tk := tokens[i]
		if !isPredicate(tk.POS) {
			out = append(out, tk)
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && isAuxiliary(tokens[j]) {
			j++
		}
		if j == i+1 {
			out = append(out, tk)
			i++
			continue
		}
		merged := tk
		merged.Auxiliaries = append([]Token(nil), tokens[i+1:j]...)
		merged.Conjugation = nil
		for _, aux := range merged.Auxiliaries {
			merged.Text += aux.Text
			merged.Reading += aux.Reading
			merged.Pronunciation += aux.Pronunciation
			merged.Ruby += aux.Ruby
			merged.Conjugation = append(merged.Conjugation, aux.Lemma)
		}
		merged.End = tokens[j-1].End
		out = append(out, merged)
		i = j
	}
	return out
}

func (t *Tokenizer) convert(ktoks []tokenizer.Token) []Token {
	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		lemma, ok := kt.BaseForm()
		if !ok || lemma == "" || lemma == "*" {
			lemma = kt.Surface
		}
		reading, ok := kt.Reading()
		if !ok || reading == "*" {
			reading = ""
		}
		pron, ok := kt.Pronunciation()
		if !ok || pron == "*" {
			pron = ""
		}
		infType, _ := kt.InflectionalType()
		infForm, _ := kt.InflectionalForm()
		out = append(out, Token{
			Text:           kt.Surface,
			Lemma:          lemma,
			POS:            strings.Join(kt.POS(), ","),
			Start:          kt.Start,
			End:            kt.End,
			Reading:        reading,
			Pronunciation:  pron,
			InflectionType: infType,
			InflectionForm: infForm,
			Ruby:           furigana.Render(t.align(kt.Surface, reading)),
		})
	}
	return out
}
