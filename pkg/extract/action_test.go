package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storycue/pkg/oracle"
)

type stubParser struct {
	sentences []oracle.Sentence
	err       error
}

func (s *stubParser) Parse(ctx context.Context, text string) ([]oracle.Sentence, error) {
	return s.sentences, s.err
}

func runningSentence() oracle.Sentence {
	return oracle.Sentence{
		Text: "Harry and Hermione are running toward the station",
		Tokens: []oracle.Token{
			{Text: "Harry", Lemma: "harry", POS: "PROPN", Dep: "nsubj"},
			{Text: "and", Lemma: "and", POS: "CCONJ", Dep: "cc"},
			{Text: "Hermione", Lemma: "hermione", POS: "PROPN", Dep: "conj"},
			{Text: "are", Lemma: "be", POS: "AUX", Dep: "aux"},
			{Text: "running", Lemma: "Run", POS: "VERB", Dep: "ROOT"},
			{Text: "toward", Lemma: "toward", POS: "ADP", Dep: "prep"},
			{Text: "the", Lemma: "the", POS: "DET", Dep: "det"},
			{Text: "station", Lemma: "station", POS: "NOUN", Dep: "pobj"},
		},
	}
}

func TestAction_RootVerbLemmaLowercased(t *testing.T) {
	parser := &stubParser{sentences: []oracle.Sentence{runningSentence()}}

	action, ok, err := NewActionExtractor(parser).Action(context.Background(), "Harry and Hermione are running toward the station")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run", action)
}

func TestAction_NoSentences(t *testing.T) {
	action, ok, err := NewActionExtractor(&stubParser{}).Action(context.Background(), "")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, action)
}

func TestAction_NonVerbRoot(t *testing.T) {
	parser := &stubParser{sentences: []oracle.Sentence{{
		Text: "A quiet morning.",
		Tokens: []oracle.Token{
			{Text: "A", Lemma: "a", POS: "DET", Dep: "det"},
			{Text: "quiet", Lemma: "quiet", POS: "ADJ", Dep: "amod"},
			{Text: "morning", Lemma: "morning", POS: "NOUN", Dep: "ROOT"},
		},
	}}}

	_, ok, err := NewActionExtractor(parser).Action(context.Background(), "A quiet morning.")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAction_OnlyFirstSentenceConsidered(t *testing.T) {
	parser := &stubParser{sentences: []oracle.Sentence{
		{
			Text: "Silence everywhere.",
			Tokens: []oracle.Token{
				{Text: "Silence", Lemma: "silence", POS: "NOUN", Dep: "ROOT"},
				{Text: "everywhere", Lemma: "everywhere", POS: "ADV", Dep: "advmod"},
			},
		},
		runningSentence(),
	}}

	_, ok, err := NewActionExtractor(parser).Action(context.Background(), "Silence everywhere. Harry and Hermione are running toward the station")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAction_TaggedVerbForms(t *testing.T) {
	// Penn-style tags still count as verb-like.
	parser := &stubParser{sentences: []oracle.Sentence{{
		Text: "She ran.",
		Tokens: []oracle.Token{
			{Text: "She", Lemma: "she", POS: "PRON", Dep: "nsubj"},
			{Text: "ran", Lemma: "run", POS: "VBD", Dep: "ROOT"},
		},
	}}}

	action, ok, err := NewActionExtractor(parser).Action(context.Background(), "She ran.")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run", action)
}

func TestAction_OracleFailurePropagates(t *testing.T) {
	oracleErr := errors.New("parser unavailable")
	_, _, err := NewActionExtractor(&stubParser{err: oracleErr}).Action(context.Background(), "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, oracleErr)
}
