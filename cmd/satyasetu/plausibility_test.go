// cmd/satyasetu/plausibility_test.go
package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlausibilityImpossiblePolitical(t *testing.T) {
	tests := []struct {
		name  string
		title string
		text  string
	}{
		{
			name:  "foreign leader named to office",
			title: "Putin sworn in as Prime Minister of India",
			text:  "Vladimir Putin took oath today as the Prime Minister of India in New Delhi.",
		},
		{
			name:  "nationality office mismatch",
			title: "Russian president of India addresses the nation",
			text:  "The new Russian president of India spoke on television yesterday evening.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalyzePlausibility(tt.title, tt.text)
			assert.True(t, hasIndicator(result.Indicators, "impossible_political"))
			assert.GreaterOrEqual(t, result.Score, 0.9)
		})
	}
}

func TestPlausibilityLeaderInOwnCountryNotFlagged(t *testing.T) {
	result := AnalyzePlausibility(
		"Modi addresses rally as Prime Minister of India",
		"The Prime Minister of India spoke at a public rally attended by thousands of supporters from nearby districts, covering policy announcements and upcoming infrastructure projects in considerable detail for well over an hour.",
	)
	assert.False(t, hasIndicator(result.Indicators, "impossible_political"))
}

func TestPlausibilityMassCasualtyScaling(t *testing.T) {
	low := AnalyzePlausibility("Accident on highway", "Officials confirmed that 10 people died in the crash on the highway late last night, with several others treated for minor injuries at the district hospital before being released to their families early this morning.")
	high := AnalyzePlausibility("Accident on highway", "Officials confirmed that 200 people died in the crash on the highway late last night, with several others treated for minor injuries at the district hospital before being released to their families early this morning.")

	lowInd := findIndicator(low.Indicators, "mass_casualty_claim")
	highInd := findIndicator(high.Indicators, "mass_casualty_claim")
	require.NotNil(t, lowInd)
	require.NotNil(t, highInd)

	assert.InDelta(t, 0.30, lowInd.Score, 1e-9)
	assert.InDelta(t, 1.00, highInd.Score, 1e-9)
	assert.Greater(t, highInd.Score, lowInd.Score)
}

func TestPlausibilityMassCasualtyNoDoubleCount(t *testing.T) {
	// Two mass-event phrasings in one sentence must yield one indicator
	// driven by the largest number.
	result := AnalyzePlausibility("", "The blast killed 150 and left 80 injured across the market area, witnesses told reporters, and rescue teams continued searching through the debris well into the following morning for survivors among the wreckage there.")

	count := 0
	var score float64
	for _, ind := range result.Indicators {
		if ind.Type == "mass_casualty_claim" {
			count++
			score = ind.Score
		}
	}
	assert.Equal(t, 1, count)
	assert.InDelta(t, massCasualtyScore(150), score, 1e-9)
}

func TestPlausibilityPatternClasses(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		indType string
	}{
		{"miracle cure", "This miracle cure that doctors hate cures cancer in just three days without any medicine at all", "miracle_cure"},
		{"doomsday", "Scientists warn this event marks the end of the world as we know it and nothing can stop it now", "doomsday_language"},
		{"conspiracy", "The deep state has been hiding this from the public for decades and the cover-up continues even today", "conspiracy_language"},
		{"suppressed truth", "The hidden truth about the vaccine that mainstream media won't tell you has finally been leaked online", "suppressed_truth"},
		{"dead alive contradiction", "The actor who died last year was seen alive at a shopping mall in Mumbai yesterday according to witnesses", "contradictory_claim"},
		{"vague attribution", "According to sources the decision was made last week and forwarded as received across various groups", "vague_attribution"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnalyzePlausibility("", tt.text)
			assert.True(t, hasIndicator(result.Indicators, tt.indType), "expected %s", tt.indType)
		})
	}
}

func TestPlausibilityVagueAttributionCapped(t *testing.T) {
	result := AnalyzePlausibility("", "According to sources and according to reports, sources say this was a whatsapp forward, forwarded as received and reportedly shared widely across many groups in the region over several days last week continuously.")

	ind := findIndicator(result.Indicators, "vague_attribution")
	require.NotNil(t, ind)
	assert.InDelta(t, 0.30, ind.Score, 1e-9)
}

func TestPlausibilityAbsoluteLanguageNeedsTwoHits(t *testing.T) {
	single := AnalyzePlausibility("", "The sun rises in the east every morning and sets in the west later on during the evening hours, which is something children learn early in school and can observe for themselves quite easily outdoors.")
	assert.False(t, hasIndicator(single.Indicators, "absolute_language"))

	double := AnalyzePlausibility("", "Every single person agrees and nobody has ever disputed this remarkable claim about the product, which has been promoted heavily across television channels and social media platforms for several weeks now without pause.")
	assert.True(t, hasIndicator(double.Indicators, "absolute_language"))
}

func TestPlausibilityNumericAnomaly(t *testing.T) {
	result := AnalyzePlausibility("", "Police data shows 95 robberies in the neighborhood this month alone, residents claim, far beyond anything recorded in previous years and without any official explanation from the local administration so far offered.")
	assert.True(t, hasIndicator(result.Indicators, "numeric_anomaly"))
}

func TestPlausibilityThinContent(t *testing.T) {
	thin := AnalyzePlausibility("Big announcement coming", "Something huge is about to happen.")
	assert.True(t, hasIndicator(thin.Indicators, "thin_content"))

	substantial := AnalyzePlausibility("Council meeting held", "The municipal council met on Tuesday to discuss the annual budget. Members reviewed spending proposals across departments, debated road maintenance allocations, and approved funding for two new primary health centers. The next session is scheduled for the first week of next month.")
	assert.False(t, hasIndicator(substantial.Indicators, "thin_content"))
}

func TestPlausibilityScoreClamped(t *testing.T) {
	result := AnalyzePlausibility(
		"Putin becomes Prime Minister of India as 500 people killed",
		"The deep state cover-up hides the miracle cure while sources say 500 people killed in the chaos. Forwarded as received.",
	)
	assert.LessOrEqual(t, result.Score, 1.0)
	assert.GreaterOrEqual(t, result.Score, 0.9)
}

func TestPlausibilityDeterministic(t *testing.T) {
	title := "SHOCKING claim goes viral"
	text := "Sources say 50 people were hospitalized after the incident. The truth about this is being hidden."

	first := AnalyzePlausibility(title, text)
	second := AnalyzePlausibility(title, text)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Indicators, second.Indicators)
}

func TestMassCasualtyScoreCurve(t *testing.T) {
	assert.InDelta(t, 0.30, massCasualtyScore(10), 1e-9)
	assert.InDelta(t, 1.00, massCasualtyScore(200), 1e-9)
	assert.InDelta(t, 1.00, massCasualtyScore(5000), 1e-9)
	mid := massCasualtyScore(105)
	assert.Greater(t, mid, 0.30)
	assert.Less(t, mid, 1.00)
}

func TestTruncateKeepsValidUTF8(t *testing.T) {
	s := "महाराष्ट्र में बाढ़ की चेतावनी जारी"
	for max := 1; max < len(s); max++ {
		out := truncate(s, max)
		assert.True(t, utf8.ValidString(out), "cut at %d", max)
		assert.LessOrEqual(t, len(out), max+len("..."))
	}
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}

func findIndicator(indicators []Indicator, indType string) *Indicator {
	for i := range indicators {
		if indicators[i].Type == indType {
			return &indicators[i]
		}
	}
	return nil
}
