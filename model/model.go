package model

// Token represents a token / morpheme produced by the tokenizer.
type Token struct {
	Text           string   `json:"text"`
	Lemma          string   `json:"lemma,omitempty"`
	POS            string   `json:"pos,omitempty"`
	Start          int      `json:"start"`
	End            int      `json:"end"`
	Reading        string   `json:"reading,omitempty"`
	Pronunciation  string   `json:"pronunciation,omitempty"`
	Conjugation    []string `json:"conjugation,omitempty"`
	Auxiliaries    []Token  `json:"auxiliaries,omitempty"`
	InflectionType string   `json:"inflection_type,omitempty"`
	InflectionForm string   `json:"inflection_form,omitempty"`
	Ruby           string   `json:"ruby,omitempty"`
}

// Pair is one dictionary form / conjugation pair to be marked.
type Pair struct {
	ID          string `json:"id" yaml:"id,omitempty"`
	BaseForm    string `json:"base" yaml:"base"`
	Conjugation string `json:"conjugation" yaml:"conjugation"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Context names the markup region the divergence point fell into.
type Context string

const (
	// PlainContext: outside any ruby block.
	PlainContext Context = "plain"
	// RubyContext: inside a ruby block, outside its reading.
	RubyContext Context = "ruby"
	// ReadingContext: inside a reading block.
	ReadingContext Context = "reading"
	// IdenticalContext is reported when both forms are equal and nothing was marked.
	IdenticalContext Context = "identical"
)

// Result describes how a conjugation was marked.
type Result struct {
	Pair          Pair    `json:"pair"`
	Marked        string  `json:"marked"`
	SplitIndex    int     `json:"split_index"`
	AdjustedIndex int     `json:"adjusted_index"`
	Context       Context `json:"context"`
	Fallback      bool    `json:"fallback,omitempty"`
}
