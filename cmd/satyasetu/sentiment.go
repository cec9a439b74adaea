// cmd/satyasetu/sentiment.go
package main

import (
	"math"
	"strings"
)

// SentimentScores mirrors the polarity output of a VADER-style analyzer
type SentimentScores struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// SentimentAnalyzer scores the emotional polarity of text. Implementations
// must be pure functions of their input.
type SentimentAnalyzer interface {
	Polarity(text string) SentimentScores
}

// nullSentiment is used when no sentiment backend is available; it always
// reports a neutral polarity so the linguistic signal degrades to zero
// contribution instead of failing.
type nullSentiment struct{}

func (nullSentiment) Polarity(text string) SentimentScores {
	return SentimentScores{Neutral: 1.0}
}

// NewNullSentiment returns the always-neutral sentiment backend
func NewNullSentiment() SentimentAnalyzer {
	return nullSentiment{}
}

// lexiconSentiment is a small lexicon-based polarity model. Valences follow
// the VADER convention: roughly -4 (most negative) to +4 (most positive).
type lexiconSentiment struct{}

// NewLexiconSentiment returns the built-in lexicon sentiment backend
func NewLexiconSentiment() SentimentAnalyzer {
	return lexiconSentiment{}
}

var sentimentLexicon = map[string]float64{
	// negative
	"dead": -2.9, "death": -2.9, "died": -2.6, "killed": -3.2, "kill": -3.1,
	"murder": -3.4, "massacre": -3.6, "terror": -3.2, "terrorist": -3.1,
	"attack": -2.4, "war": -2.9, "violence": -2.9, "riot": -2.6,
	"danger": -2.4, "dangerous": -2.5, "deadly": -2.9, "fatal": -2.7,
	"threat": -2.3, "warning": -1.4, "fear": -2.2, "panic": -2.7,
	"disaster": -3.1, "catastrophe": -3.3, "crisis": -2.5, "collapse": -2.4,
	"hoax": -2.0, "fake": -2.1, "fraud": -2.8, "scam": -2.8, "lie": -2.4,
	"lies": -2.4, "false": -1.8, "corrupt": -2.7, "evil": -3.1,
	"hate": -2.9, "outrage": -2.4, "fury": -2.6, "rage": -2.7, "angry": -2.3,
	"disgust": -2.5, "disgusting": -2.6, "horrific": -3.2, "horrible": -2.8,
	"terrible": -2.5, "awful": -2.4, "shocking": -1.7, "alarming": -2.0,
	"poison": -2.8, "toxic": -2.5, "disease": -2.1, "outbreak": -2.2,
	"infected": -2.2, "victim": -2.1, "victims": -2.1, "suffering": -2.6,
	"destroyed": -2.7, "destroy": -2.6, "ban": -1.4, "banned": -1.4,
	"emergency": -2.0, "injured": -2.3, "wounded": -2.4, "missing": -1.8,
	"kidnapped": -3.0, "crime": -2.4, "criminal": -2.4, "illegal": -2.0,
	"doom": -2.9, "apocalypse": -3.0, "extinction": -2.9,

	// positive
	"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8,
	"wonderful": 2.7, "love": 3.2, "happy": 2.7, "joy": 2.8, "hope": 1.9,
	"safe": 1.8, "safely": 1.8, "peace": 2.5, "peaceful": 2.3,
	"success": 2.7, "successful": 2.6, "win": 2.8, "won": 2.7,
	"celebrate": 2.6, "celebrated": 2.5, "recovery": 1.9, "recovered": 1.9,
	"healthy": 2.2, "cure": 1.6, "cured": 1.9, "heal": 2.0,
	"confirmed": 1.2, "verified": 1.4, "true": 1.8, "trust": 2.1,
	"progress": 1.9, "improve": 1.9, "improved": 1.9, "benefit": 1.9,
	"help": 1.7, "helped": 1.7, "support": 1.7, "relief": 1.9,
	"calm": 1.5, "stable": 1.3, "normal": 1.1, "usual": 0.6,
}

var sentimentNegators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"cannot": true, "without": true, "dont": true, "don't": true,
	"isnt": true, "isn't": true, "wasnt": true, "wasn't": true,
}

var sentimentBoosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "absolutely": 0.293, "totally": 0.2,
	"highly": 0.2, "really": 0.2, "completely": 0.2, "utterly": 0.293,
	"slightly": -0.293, "somewhat": -0.2, "barely": -0.293,
}

// Polarity computes VADER-style compound, positive, negative and neutral
// scores from the lexicon. Deterministic for a given input.
func (lexiconSentiment) Polarity(text string) SentimentScores {
	tokens := tokenizeWords(text)
	if len(tokens) == 0 {
		return SentimentScores{Neutral: 1.0}
	}

	var sum, posSum, negSum float64
	scored := 0

	for i, tok := range tokens {
		valence, ok := sentimentLexicon[tok]
		if !ok {
			continue
		}

		// Look back up to three tokens for negation and boosters
		boost := 0.0
		negated := false
		for j := i - 1; j >= 0 && j >= i-3; j-- {
			if sentimentNegators[tokens[j]] {
				negated = true
			}
			if b, ok := sentimentBoosters[tokens[j]]; ok {
				boost += b
			}
		}

		if valence > 0 {
			valence += boost
		} else {
			valence -= boost
		}
		if negated {
			valence = -valence * 0.74
		}

		sum += valence
		if valence > 0 {
			posSum += valence
		} else {
			negSum += -valence
		}
		scored++
	}

	compound := sum / math.Sqrt(sum*sum+15)

	total := posSum + negSum
	scores := SentimentScores{Compound: compound, Neutral: 1.0}
	if total > 0 {
		// Weight polarity shares by how much of the document is scored at all
		coverage := float64(scored) / float64(len(tokens))
		scores.Positive = posSum / total * math.Min(1.0, coverage*4)
		scores.Negative = negSum / total * math.Min(1.0, coverage*4)
		scores.Neutral = clamp01(1.0 - scores.Positive - scores.Negative)
	}

	return scores
}

// tokenizeWords lowercases and splits text into bare word tokens
func tokenizeWords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.Trim(f, ".,!?;:\"'()[]{}<>*#@")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
