package tokenize

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"endingspan/furigana"
	"endingspan/kanji"
)

const kanjiFixture = `<kanjidic2>
<character><literal>漢</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">カン</reading>
</rmgroup></reading_meaning></character>
<character><literal>字</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">ジ</reading>
<reading r_type="ja_kun">あざ</reading>
</rmgroup></reading_meaning></character>
<character><literal>川</literal><reading_meaning><rmgroup>
<reading r_type="ja_on">セン</reading>
<reading r_type="ja_kun">かわ</reading>
</rmgroup></reading_meaning></character>
<character><literal>小</literal><reading_meaning><rmgroup>
<reading r_type="ja_kun">お</reading>
<reading r_type="ja_kun">ちい.さい</reading>
</rmgroup></reading_meaning></character>
</kanjidic2>`

func newTokenizer(t *testing.T, opts ...Option) *Tokenizer {
	t.Helper()
	tk, err := New(opts...)
	require.NoError(t, err)
	return tk
}

func TestNewRejectsUnknownDictionary(t *testing.T) {
	_, err := New(WithDictionary("jumandic"))
	require.Error(t, err)
}

func TestTokenize(t *testing.T) {
	tk := newTokenizer(t)
	toks, err := tk.Tokenize(context.Background(), "食べる")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, "食べる", toks[0].Text)
	require.Equal(t, "食べる", toks[0].Lemma)
	require.Equal(t, "タベル", toks[0].Reading)
	require.True(t, strings.HasPrefix(toks[0].POS, "動詞"))
	require.Equal(t, "<ruby>食<rt>た</rt></ruby>べる", toks[0].Ruby)

	toks, err = tk.Tokenize(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, toks)
}

func TestTokenizeHonoursCancellation(t *testing.T) {
	tk := newTokenizer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tk.Tokenize(ctx, "食べる")
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnnotate(t *testing.T) {
	tk := newTokenizer(t)
	tests := []struct {
		in   string
		want string
	}{
		{in: "食べる", want: "<ruby>食<rt>た</rt></ruby>べる"},
		{in: "見た", want: "<ruby>見<rt>み</rt></ruby>た"},
		{in: "たべる", want: "たべる"},
	}
	for _, tc := range tests {
		got, err := tk.Annotate(context.Background(), tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "Annotate(%q)", tc.in)
	}
}

func TestAnnotateSplitsCompoundsWithKanjiDictionary(t *testing.T) {
	d, err := kanji.Load(strings.NewReader(kanjiFixture))
	require.NoError(t, err)

	plain := newTokenizer(t)
	got, err := plain.Annotate(context.Background(), "漢字")
	require.NoError(t, err)
	require.Equal(t, "<ruby>漢字<rt>かんじ</rt></ruby>", got)

	split := newTokenizer(t, WithKanji(d))
	got, err = split.Annotate(context.Background(), "漢字")
	require.NoError(t, err)
	require.Equal(t, "<ruby>漢<rt>かん</rt></ruby><ruby>字<rt>じ</rt></ruby>", got)
}

func TestAlign(t *testing.T) {
	d, err := kanji.Load(strings.NewReader(kanjiFixture))
	require.NoError(t, err)
	tk := &Tokenizer{kanji: d}

	tests := []struct {
		name    string
		surface string
		reading string
		want    []furigana.Segment
	}{
		{
			name:    "okurigana",
			surface: "食べる",
			reading: "タベル",
			want:    []furigana.Segment{{Text: "食", Reading: "た"}, {Text: "べる"}},
		},
		{
			name:    "kana prefix",
			surface: "お茶",
			reading: "オチャ",
			want:    []furigana.Segment{{Text: "お"}, {Text: "茶", Reading: "ちゃ"}},
		},
		{
			name:    "rendaku",
			surface: "小川",
			reading: "オガワ",
			want:    []furigana.Segment{{Text: "小", Reading: "お"}, {Text: "川", Reading: "がわ"}},
		},
		{
			name:    "last kanji takes the remainder",
			surface: "漢文",
			reading: "カンブン",
			want:    []furigana.Segment{{Text: "漢", Reading: "かん"}, {Text: "文", Reading: "ぶん"}},
		},
		{
			name:    "unmatched first kanji keeps one block",
			surface: "文字",
			reading: "モジ",
			want:    []furigana.Segment{{Text: "文字", Reading: "もじ"}},
		},
		{
			name:    "no reading",
			surface: "漢",
			reading: "",
			want:    []furigana.Segment{{Text: "漢"}},
		},
		{
			name:    "kana only",
			surface: "する",
			reading: "スル",
			want:    []furigana.Segment{{Text: "する"}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tk.align(tc.surface, tc.reading))
		})
	}
}

func TestLemma(t *testing.T) {
	tk := newTokenizer(t)
	tests := []struct {
		in   string
		want string
	}{
		{in: "食べない", want: "食べる"},
		{in: "見ました", want: "見る"},
		{in: "走った", want: "走る"},
		{in: "勉強しました", want: "勉強する"},
		{in: "高かった", want: "高い"},
	}
	for _, tc := range tests {
		got, err := tk.Lemma(context.Background(), tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "Lemma(%q)", tc.in)
	}

	_, err := tk.Lemma(context.Background(), "本")
	require.ErrorIs(t, err, ErrNoLemma)
}

func TestMergeAuxiliaries(t *testing.T) {
	toks := []Token{
		{Text: "食べ", Lemma: "食べる", POS: "動詞,自立,*,*", Reading: "タベ", End: 2},
		{Text: "なかっ", Lemma: "ない", POS: "助動詞,*,*,*", Reading: "ナカッ", End: 5},
		{Text: "た", Lemma: "た", POS: "助動詞,*,*,*", Reading: "タ", End: 6},
		{Text: "本", Lemma: "本", POS: "名詞,一般,*,*", Reading: "ホン", End: 7},
	}
	merged := MergeAuxiliaries(toks)
	require.Len(t, merged, 2)
	require.Equal(t, "食べなかった", merged[0].Text)
	require.Equal(t, "食べる", merged[0].Lemma)
	require.Equal(t, "タベナカッタ", merged[0].Reading)
	require.Equal(t, []string{"ない", "た"}, merged[0].Conjugation)
	require.Equal(t, 6, merged[0].End)
	require.Len(t, merged[0].Auxiliaries, 2)
	require.Equal(t, "本", merged[1].Text)
}
