// cmd/satyasetu/linguistic.go
package main

import (
	"fmt"
	"strings"
	"unicode"
)

// Component weights for the linguistic style score
const (
	weightClickbait    = 0.15
	weightSensational  = 0.25
	weightEmotion      = 0.25
	weightNegativeTone = 0.20
	weightCapsAbuse    = 0.15
)

var clickbaitPhrases = []string{
	"you won't believe", "shocking", "must see", "must watch", "must read",
	"gone viral", "what happened next", "will blow your mind", "unbelievable",
	"this one trick", "doctors hate", "number one reason", "the real reason",
	"exposed", "revealed",
}

var sensationalWords = []string{
	"shocking", "explosive", "bombshell", "outrageous", "horrifying",
	"devastating", "catastrophic", "terrifying", "scandal", "scandalous",
	"sensational", "dramatic", "unprecedented", "jaw-dropping", "stunning",
	"bizarre", "insane", "crazy",
}

var fearWords = []string{
	"danger", "dangerous", "threat", "deadly", "fatal", "warning", "panic",
	"fear", "terror", "horror", "attack", "crisis", "emergency", "epidemic",
}

var angerWords = []string{
	"outrage", "fury", "furious", "betrayal", "betrayed", "corrupt",
	"corruption", "disgrace", "disgraceful", "shameful", "traitor", "scam",
	"fraud", "cheated",
}

var shockWords = []string{
	"shocking", "unbelievable", "incredible", "astonishing", "stunned",
	"speechless", "mind-blowing", "never seen before", "first time ever",
}

// AnalyzeLinguistic scores title and body for manipulative style: clickbait
// framing, sensational vocabulary, emotional loading, negative tone and
// capital-letter abuse.
func AnalyzeLinguistic(title, text string, sentiment SentimentAnalyzer) *LinguisticResult {
	result := &LinguisticResult{}
	lowerTitle := strings.ToLower(title)
	full := title + " " + text
	lowerFull := strings.ToLower(full)
	words := tokenizeWords(lowerFull)
	totalWords := len(words)
	if totalWords == 0 {
		totalWords = 1
	}

	clickbait := clickbaitScore(lowerTitle, title)
	sensational := clamp01(densityScore(lowerFull, sensationalWords, totalWords))

	fear := densityScore(lowerFull, fearWords, totalWords)
	anger := densityScore(lowerFull, angerWords, totalWords)
	shock := densityScore(lowerFull, shockWords, totalWords)
	emotion := clamp01(maxFloat(fear, anger, shock))

	caps := clamp01(capsAbuseScore(full))

	scores := sentiment.Polarity(full)
	result.Compound = scores.Compound
	result.Negative = scores.Negative
	result.Positive = scores.Positive
	negativeTone := clamp01(scores.Negative * 2)

	if clickbait > 0.5 {
		result.Indicators = append(result.Indicators, Indicator{
			Type:        "clickbait_title",
			Score:       clickbait,
			Description: "Title uses clickbait framing",
		})
	}
	if sensational > 0.3 {
		result.Indicators = append(result.Indicators, Indicator{
			Type:        "sensational_language",
			Score:       sensational,
			Description: "Heavy use of sensational vocabulary",
		})
	}
	if emotion > 0.4 {
		dominant := "fear"
		switch {
		case anger >= fear && anger >= shock:
			dominant = "anger"
		case shock >= fear && shock >= anger:
			dominant = "shock"
		}
		result.Indicators = append(result.Indicators, Indicator{
			Type:        "emotional_manipulation",
			Score:       emotion,
			Description: fmt.Sprintf("Emotionally loaded language (dominant: %s)", dominant),
		})
	}
	if caps > 0.3 {
		result.Indicators = append(result.Indicators, Indicator{
			Type:        "caps_abuse",
			Score:       caps,
			Description: "Excessive use of capital letters",
		})
	}
	if negativeTone > 0.5 {
		result.Indicators = append(result.Indicators, Indicator{
			Type:        "negative_tone",
			Score:       negativeTone,
			Description: "Strongly negative overall tone",
		})
	}

	result.Score = clamp01(weightClickbait*clickbait +
		weightSensational*sensational +
		weightEmotion*emotion +
		weightNegativeTone*negativeTone +
		weightCapsAbuse*caps)
	return result
}

// clickbaitScore combines phrase matches with punctuation abuse on the title
func clickbaitScore(lowerTitle, title string) float64 {
	score := 0.0
	for _, phrase := range clickbaitPhrases {
		if strings.Contains(lowerTitle, phrase) {
			score += 0.3
		}
	}
	exclaims := strings.Count(title, "!")
	if exclaims > 3 {
		exclaims = 3
	}
	questions := strings.Count(title, "?")
	if questions > 2 {
		questions = 2
	}
	score += float64(exclaims)*0.1 + float64(questions)*0.05
	return clamp01(score)
}

// densityScore normalizes keyword occurrences per 100 words
func densityScore(lowerText string, keywords []string, totalWords int) float64 {
	count := 0
	for _, kw := range keywords {
		count += strings.Count(lowerText, kw)
	}
	return clamp01(float64(count) / float64(totalWords) * 100 / 10)
}

// capsAbuseScore measures the share of fully-capitalized words (length > 2)
func capsAbuseScore(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	capsWords := 0
	for _, w := range words {
		letters := 0
		upper := 0
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsUpper(r) {
					upper++
				}
			}
		}
		if letters > 2 && letters == upper {
			capsWords++
		}
	}
	return float64(capsWords) / float64(len(words)) * 3
}

func maxFloat(values ...float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
