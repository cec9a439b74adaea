// cmd/satyasetu/fusion_test.go
package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cfg = defaultConfig()
	cfg.EnableWebVerify = false
	cfg.EnableOracle = false
	cfg.EnableFactCheck = false
	os.Exit(m.Run())
}

func newTestEngine() *Engine {
	return NewEngine(NewLexiconSentiment(), NewNullOracle(), NewNullFactCheck(), nil)
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.Analyze(context.Background(), &AnalyzeRequest{SkipWebVerify: true})
	require.Error(t, err)

	shieldErr, ok := err.(*ShieldError)
	require.True(t, ok)
	assert.Equal(t, ErrAnalysisInput, shieldErr.Code)
}

func TestAnalyzeImpossiblePoliticalClaim(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title:         "BREAKING: Putin to be sworn in as the next Prime Minister of India",
		Text:          "Sources say Vladimir Putin will take oath as Prime Minister of India next week. Forwarded as received.",
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.MisinformationLikelihood, 0.8)
	assert.Contains(t, []string{RiskLevelHigh, RiskLevelCritical}, result.RiskLevel)
	assert.Contains(t, result.AffectedTopics, "politics")
	assert.True(t, hasIndicator(result.KeyIndicators, "impossible_political"))
}

func TestAnalyzeBenignClaim(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title:         "Sun rises in the east",
		Text:          "The sun rises in the east each day, as it has throughout recorded history.",
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	assert.Less(t, result.MisinformationLikelihood, 0.30)
	assert.Equal(t, RiskLevelLow, result.RiskLevel)
}

func TestAnalyzeFactCheckedFalseFloor(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title: "Government announces free petrol for everyone",
		Text:  "A viral message claims the government will distribute free petrol at all stations starting Monday.",
		FactChecks: []FactCheckClaim{
			{ClaimText: "Free petrol scheme", Rating: "False", Publisher: "BOOM"},
		},
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.MisinformationLikelihood, 0.80)
	assert.True(t, hasIndicator(result.KeyIndicators, "fact_checked_false"))
}

func TestAnalyzeWebConsensusDeniedFloor(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title: "City water supply poisoned overnight",
		Text:  "Unconfirmed reports claim the entire water supply was poisoned.",
		WebSources: &WebVerificationResult{
			Query:        "City water supply poisoned",
			TotalSources: 3,
			Consensus:    ConsensusMostlyDenied,
			Summary:      "3 of 3 sources dispute the claim",
		},
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.MisinformationLikelihood, 0.70)
	assert.True(t, hasIndicator(result.KeyIndicators, "web_consensus_denied"))
}

func TestAnalyzeSupportedConsensusRespectsEarlierFloor(t *testing.T) {
	// A mostly-supported consensus rescales the score down but may never
	// undercut the floor established by a false fact check.
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title: "Miracle drink cures cancer in three days",
		Text:  "Doctors hate this ancient remedy that cures cancer instantly.",
		FactChecks: []FactCheckClaim{
			{ClaimText: "Miracle cancer cure", Rating: "False", Publisher: "Alt News"},
		},
		WebSources: &WebVerificationResult{
			TotalSources: 4,
			Consensus:    ConsensusMostlySupported,
		},
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.MisinformationLikelihood, 0.80)
}

func TestAnalyzeSupportedConsensusLowersScore(t *testing.T) {
	engine := newTestEngine()
	base := &AnalyzeRequest{
		Title: "Heavy rain expected across the region this weekend",
		Text:  "The weather department forecast heavy rain across several districts over the weekend, officials said on Friday.",
	}

	withSupport := *base
	withSupport.WebSources = &WebVerificationResult{
		TotalSources: 4,
		Consensus:    ConsensusMostlySupported,
	}
	withoutSupport := *base
	withoutSupport.SkipWebVerify = true

	supported, err := engine.Analyze(context.Background(), &withSupport)
	require.NoError(t, err)
	plain, err := engine.Analyze(context.Background(), &withoutSupport)
	require.NoError(t, err)

	assert.Less(t, supported.MisinformationLikelihood, plain.MisinformationLikelihood)
}

func TestAnalyzeLowCredibilityPenalty(t *testing.T) {
	engine := newTestEngine()
	req := func(cred float64) *AnalyzeRequest {
		return &AnalyzeRequest{
			Title:             "New traffic rules announced for the city",
			Text:              "The transport department announced revised traffic rules effective from next month.",
			SourceCredibility: cred,
			SkipWebVerify:     true,
		}
	}

	low, err := engine.Analyze(context.Background(), req(2.0))
	require.NoError(t, err)
	high, err := engine.Analyze(context.Background(), req(9.0))
	require.NoError(t, err)

	assert.Greater(t, low.MisinformationLikelihood, high.MisinformationLikelihood)
}

func TestAnalyzeDeterministic(t *testing.T) {
	engine := newTestEngine()
	req := &AnalyzeRequest{
		Title:         "SHOCKING: 500 children kidnapped from city schools",
		Text:          "Sources say gangs have kidnapped 500 children. Forwarded as received. Share before they delete this!",
		SkipWebVerify: true,
	}

	first, err := engine.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.MisinformationLikelihood, second.MisinformationLikelihood)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.SignalScores, second.SignalScores)
}

func TestAnalyzeCallerTopicsPreserved(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title:         "Community event draws large crowd",
		Text:          "Thousands attended the annual cultural event at the city grounds over the weekend.",
		Topics:        []string{"Culture", "regional"},
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	assert.Contains(t, result.AffectedTopics, "culture")
	assert.Contains(t, result.AffectedTopics, "regional")
}

func TestAnalyzeFallbackExplanationWithoutOracle(t *testing.T) {
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title:         "SHOCKING miracle cure doctors hate",
		Text:          "This miracle cure that doctors hate cures cancer instantly, sources say.",
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Explanation)
	assert.Empty(t, result.SourceAttribution)
	assert.Nil(t, result.Forecast)
}

func TestRiskLevelBoundaries(t *testing.T) {
	tests := []struct {
		impact float64
		want   string
	}{
		{0.0, RiskLevelLow},
		{2.49, RiskLevelLow},
		{2.5, RiskLevelMedium},
		{4.99, RiskLevelMedium},
		{5.0, RiskLevelHigh},
		{7.49, RiskLevelHigh},
		{7.5, RiskLevelCritical},
		{10.0, RiskLevelCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskLevel(tt.impact), "impact %.2f", tt.impact)
	}
}

func TestAmplificationRiskSensitiveBoost(t *testing.T) {
	sensitive := &TopicResult{Labels: []string{"health"}, MaxSensitivity: 0.90, Sensitive: true}
	neutral := &TopicResult{}

	boosted := amplificationRisk(0.5, 0.6, sensitive, 0.5)
	plain := amplificationRisk(0.5, 0.6, neutral, 0.5)
	assert.Greater(t, boosted, plain)
	assert.LessOrEqual(t, boosted, 1.0)
}

func TestEstimatedReachTiers(t *testing.T) {
	assert.Equal(t, 500000, estimatedReach(0.80))
	assert.Equal(t, 100000, estimatedReach(0.60))
	assert.Equal(t, 25000, estimatedReach(0.40))
	assert.Equal(t, 5000, estimatedReach(0.10))
}

func TestConfidenceScoreCap(t *testing.T) {
	assert.InDelta(t, 0.52, confidenceScore(2, false), 1e-9)
	assert.InDelta(t, 0.64, confidenceScore(2, true), 1e-9)
	assert.Equal(t, 0.95, confidenceScore(50, true))
}

func TestDeterministicExplanationBanners(t *testing.T) {
	low := deterministicExplanation(&AnalysisResult{MisinformationLikelihood: 0.1})
	mid := deterministicExplanation(&AnalysisResult{MisinformationLikelihood: 0.45})
	high := deterministicExplanation(&AnalysisResult{MisinformationLikelihood: 0.9})

	assert.Contains(t, low, "few signs")
	assert.Contains(t, mid, "should be verified")
	assert.Contains(t, high, "strong characteristics")
}

func TestFusionWeightsSumToOne(t *testing.T) {
	total := 0.0
	for _, w := range fusionWeights {
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestCredibilityScoreIsComplement(t *testing.T) {
	engine := newTestEngine()
	requests := []*AnalyzeRequest{
		{
			Title:         "Sun rises in the east",
			Text:          "The sun rises in the east each day, as it has throughout recorded history.",
			SkipWebVerify: true,
		},
		{
			Title:         "Putin is the next Prime Minister of India",
			Text:          "Sources say Vladimir Putin will take oath as Prime Minister of India next week.",
			SkipWebVerify: true,
		},
		{
			Title: "Government announces free petrol for everyone",
			Text:  "A viral message claims the government will distribute free petrol at all stations.",
			FactChecks: []FactCheckClaim{
				{ClaimText: "Free petrol scheme", Rating: "False", Publisher: "BOOM"},
			},
			SkipWebVerify: true,
		},
		{
			Title: "City water supply poisoned overnight",
			Text:  "Unconfirmed reports claim the entire water supply was poisoned.",
			WebSources: &WebVerificationResult{
				TotalSources: 3,
				Consensus:    ConsensusMostlyDenied,
			},
		},
	}

	for _, req := range requests {
		result, err := engine.Analyze(context.Background(), req)
		require.NoError(t, err, req.Title)

		assert.Equal(t, 1-result.MisinformationLikelihood, result.CredibilityScore, req.Title)

		assertUnitRange(t, result.MisinformationLikelihood, req.Title+" likelihood")
		assertUnitRange(t, result.CredibilityScore, req.Title+" credibility")
		assertUnitRange(t, result.BiasScore, req.Title+" bias")
		assertUnitRange(t, result.AmplificationRisk, req.Title+" amplification")
		assertUnitRange(t, result.VelocityScore, req.Title+" velocity")
		assertUnitRange(t, result.ConfidenceScore, req.Title+" confidence")
		for name, score := range result.SignalScores {
			assertUnitRange(t, score, req.Title+" signal "+name)
		}
		assert.GreaterOrEqual(t, result.SocietalImpactScore, 0.0, req.Title)
		assert.LessOrEqual(t, result.SocietalImpactScore, 10.0, req.Title)
		assert.GreaterOrEqual(t, result.SentimentScore, -1.0, req.Title)
		assert.LessOrEqual(t, result.SentimentScore, 1.0, req.Title)
	}
}

func TestImplausibilityTierFloorsKeyOnOracleScore(t *testing.T) {
	rule := findFusionRule(t, "oracle_implausibility_tiers")

	// Pattern plausibility alone must not trip the tiers.
	st := &fusionState{score: 0.20}
	rule.apply(st, &fusionInput{plausibility: 0.90})
	assert.Equal(t, 0.20, st.score)

	tiers := []struct {
		oracle float64
		want   float64
	}{
		{0.90, 0.82},
		{0.72, 0.68},
		{0.56, 0.55},
		{0.40, 0.20},
	}
	for _, tt := range tiers {
		st := &fusionState{score: 0.20}
		rule.apply(st, &fusionInput{oracleAnswered: true, oracleScore: tt.oracle})
		assert.Equal(t, tt.want, st.score, "oracle score %.2f", tt.oracle)
	}
}

func TestAnalyzePatternPlausibilityAloneDoesNotTriggerTierFloor(t *testing.T) {
	// Doomsday vocabulary pushes pattern plausibility to 0.55, but with
	// credible sourcing, no sensitive topic and no oracle the verdict must
	// stay below the 0.55 tier floor.
	engine := newTestEngine()
	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title: "Documentary titled End of Days draws large audiences",
		Text: "A new documentary titled End of Days premiered this week across select theatres. " +
			"A detailed review published on reuters.com praised the film for its restrained " +
			"storytelling and careful pacing, noting that the production team spent nearly " +
			"four years researching archival material for the project.",
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	require.True(t, hasIndicator(result.KeyIndicators, "doomsday_language"))
	assert.GreaterOrEqual(t, result.SignalScores[SignalPlausibility], 0.55)
	assert.Less(t, result.MisinformationLikelihood, 0.55)
}

func TestAnalyzeOracleAnswerEstablishesTierFloor(t *testing.T) {
	engine := NewEngine(NewLexiconSentiment(),
		plausibilityOracle{implausibility: 0.90, reason: "claim is physically impossible"},
		NewNullFactCheck(), nil)

	result, err := engine.Analyze(context.Background(), &AnalyzeRequest{
		Title:         "Sun rises in the east",
		Text:          "The sun rises in the east each day, as it has throughout recorded history.",
		SkipWebVerify: true,
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.MisinformationLikelihood, 0.82)
	assert.True(t, hasIndicator(result.KeyIndicators, "oracle_plausibility"))
}

// plausibilityOracle answers plausibility assessments with a fixed score
// and fails every other oracle call.
type plausibilityOracle struct {
	NullOracle
	implausibility float64
	reason         string
}

func (o plausibilityOracle) Available() bool { return true }

func (o plausibilityOracle) AssessPlausibility(ctx context.Context, title, text string) (float64, string, error) {
	return o.implausibility, o.reason, nil
}

func findFusionRule(t *testing.T, name string) fusionRule {
	t.Helper()
	for _, rule := range fusionRules {
		if rule.name == name {
			return rule
		}
	}
	t.Fatalf("no fusion rule named %q", name)
	return fusionRule{}
}

func hasIndicator(indicators []Indicator, indType string) bool {
	for _, ind := range indicators {
		if ind.Type == indType {
			return true
		}
	}
	return false
}

func assertUnitRange(t *testing.T, v float64, label string) {
	t.Helper()
	assert.GreaterOrEqual(t, v, 0.0, label)
	assert.LessOrEqual(t, v, 1.0, label)
}
