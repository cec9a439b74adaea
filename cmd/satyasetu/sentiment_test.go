// cmd/satyasetu/sentiment_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexiconSentimentPolarity(t *testing.T) {
	analyzer := NewLexiconSentiment()

	positive := analyzer.Polarity("This is a wonderful, excellent achievement and great news for everyone involved")
	assert.Greater(t, positive.Compound, 0.0)
	assert.Greater(t, positive.Positive, 0.0)

	negative := analyzer.Polarity("A terrible, horrible disaster that destroyed homes and ruined many lives")
	assert.Less(t, negative.Compound, 0.0)
	assert.Greater(t, negative.Negative, 0.0)
}

func TestLexiconSentimentNegation(t *testing.T) {
	analyzer := NewLexiconSentiment()

	plain := analyzer.Polarity("The plan is good")
	negated := analyzer.Polarity("The plan is not good")
	assert.Greater(t, plain.Compound, 0.0)
	assert.Less(t, negated.Compound, plain.Compound)
}

func TestLexiconSentimentCompoundBounded(t *testing.T) {
	analyzer := NewLexiconSentiment()
	extreme := analyzer.Polarity("horrible horrible horrible terrible terrible awful awful disaster disaster catastrophe")
	assert.GreaterOrEqual(t, extreme.Compound, -1.0)
	assert.LessOrEqual(t, extreme.Compound, 1.0)
}

func TestLexiconSentimentEmptyText(t *testing.T) {
	analyzer := NewLexiconSentiment()
	scores := analyzer.Polarity("")
	assert.Equal(t, 0.0, scores.Compound)
	assert.Equal(t, 0.0, scores.Positive)
	assert.Equal(t, 0.0, scores.Negative)
}

func TestNullSentiment(t *testing.T) {
	scores := NewNullSentiment().Polarity("anything at all, good or terrible")
	assert.Equal(t, SentimentScores{Neutral: 1.0}, scores)
}
