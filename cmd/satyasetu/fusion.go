// cmd/satyasetu/fusion.go
//
// Signal fusion: weighted combination of the five analyzer signals followed
// by an ordered list of override rules. Rule order is significant and floors
// are sticky: once a later rule establishes a floor, no subsequent rescale
// may drop the score below it.
package main

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Signal names used as SignalScores keys
const (
	SignalPlausibility  = "plausibility"
	SignalLinguistic    = "linguistic"
	SignalSourceQuality = "source_quality"
	SignalFactCheck     = "fact_check"
	SignalTopic         = "topic"
)

// signalOrder fixes the summation order so the weighted total is
// bit-identical across runs
var signalOrder = []string{
	SignalPlausibility,
	SignalLinguistic,
	SignalSourceQuality,
	SignalFactCheck,
	SignalTopic,
}

// Fusion weights; they sum to 1.0
var fusionWeights = map[string]float64{
	SignalPlausibility:  0.35,
	SignalLinguistic:    0.08,
	SignalSourceQuality: 0.18,
	SignalFactCheck:     0.25,
	SignalTopic:         0.14,
}

const neutralCredibility = 5.0

// Engine runs the full analysis pipeline
type Engine struct {
	sentiment SentimentAnalyzer
	oracle    ReasoningOracle
	factCheck FactCheckProvider
	verifier  *WebVerifier
}

func NewEngine(sentiment SentimentAnalyzer, oracle ReasoningOracle, factCheck FactCheckProvider, verifier *WebVerifier) *Engine {
	return &Engine{
		sentiment: sentiment,
		oracle:    oracle,
		factCheck: factCheck,
		verifier:  verifier,
	}
}

// fusionInput bundles everything the override rules may inspect
type fusionInput struct {
	plausibility float64
	sourceSignal float64
	topics       *TopicResult
	factSignal   *FactCheckSignal
	credibility  float64
	web          *WebVerificationResult

	// Set only when the reasoning oracle returned a plausibility opinion.
	// The implausibility tier floors key on the oracle's score, not the
	// pattern score, and stay inert when no oracle answered.
	oracleAnswered bool
	oracleScore    float64
}

// fusionState is threaded through the rules in order
type fusionState struct {
	score      float64
	floor      float64
	indicators []Indicator
}

// establishFloor raises the sticky floor and lifts the score onto it
func (st *fusionState) establishFloor(f float64) {
	if f > st.floor {
		st.floor = f
	}
	if st.score < st.floor {
		st.score = st.floor
	}
	st.score = clamp01(st.score)
}

type fusionRule struct {
	name  string
	apply func(st *fusionState, in *fusionInput)
}

// The override rules, in the order they run. Every rule clamps.
var fusionRules = []fusionRule{
	{"implausible_unsourced_boost", func(st *fusionState, in *fusionInput) {
		if in.plausibility >= 0.4 && in.sourceSignal >= 0.45 {
			st.score = clamp01(st.score * 1.35)
		}
	}},
	{"sensitive_topic_boost", func(st *fusionState, in *fusionInput) {
		if in.topics.Sensitive && in.plausibility >= 0.3 {
			st.score = clamp01(st.score * 1.25)
		}
	}},
	{"fact_checked_false_floor", func(st *fusionState, in *fusionInput) {
		if in.factSignal.FalseCount > 0 {
			st.establishFloor(0.80)
		}
	}},
	{"low_credibility_penalty", func(st *fusionState, in *fusionInput) {
		if in.credibility < neutralCredibility {
			st.score = clamp01(st.score + (neutralCredibility-in.credibility)/neutralCredibility*0.12)
		}
	}},
	{"implausible_unsourced_floor", func(st *fusionState, in *fusionInput) {
		if in.plausibility >= 0.35 && in.sourceSignal >= 0.50 {
			st.establishFloor(0.55)
		}
	}},
	{"oracle_implausibility_tiers", func(st *fusionState, in *fusionInput) {
		if !in.oracleAnswered {
			return
		}
		switch {
		case in.oracleScore >= 0.85:
			st.establishFloor(0.82)
		case in.oracleScore >= 0.70:
			st.establishFloor(0.68)
		case in.oracleScore >= 0.55:
			st.establishFloor(0.55)
		}
	}},
	{"web_consensus_denied", func(st *fusionState, in *fusionInput) {
		if in.web != nil && in.web.Consensus == ConsensusMostlyDenied && in.web.TotalSources >= 2 {
			st.establishFloor(0.70)
			st.indicators = append(st.indicators, Indicator{
				Type:        "web_consensus_denied",
				Score:       0.70,
				Description: fmt.Sprintf("Independent sources mostly dispute the claim (%s)", in.web.Summary),
			})
		}
	}},
	{"web_consensus_supported", func(st *fusionState, in *fusionInput) {
		if in.web != nil && in.web.Consensus == ConsensusMostlySupported && in.web.TotalSources >= 2 {
			st.score = clamp01(math.Max(st.score*0.65, st.floor))
		}
	}},
	{"web_consensus_conflicting", func(st *fusionState, in *fusionInput) {
		if in.web != nil && in.web.Consensus == ConsensusConflicting {
			st.indicators = append(st.indicators, Indicator{
				Type:        "web_consensus_conflicting",
				Score:       0.50,
				Description: "Independent sources conflict on this claim",
			})
		}
	}},
	{"fact_checker_denial_floor", func(st *fusionState, in *fusionInput) {
		if in.web == nil {
			return
		}
		for _, src := range in.web.SourcesScraped {
			if src.SourceType != SourceTypeFactChecker {
				continue
			}
			text := strings.ToLower(src.Title + " " + src.FullText)
			if countPatternHits(text, denialPatterns) > 0 {
				st.establishFloor(0.80)
				st.indicators = append(st.indicators, Indicator{
					Type:        "fact_checker_denial",
					Score:       0.80,
					Description: fmt.Sprintf("Fact checker %s disputes the claim", src.SourceName),
				})
				return
			}
		}
	}},
}

// Analyze runs every signal analyzer, fuses the scores through the rule
// table and derives the downstream metrics. The only hard error is empty
// input; every external dependency degrades to its null behavior.
func (e *Engine) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalysisResult, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Text) == "" {
		return nil, NewAnalysisError(ErrAnalysisInput, "title and text are both empty", nil)
	}
	IncrementCounter(CounterAnalyses)

	credibility := req.SourceCredibility
	if credibility == 0 {
		credibility = neutralCredibility
	}

	topics := ClassifyTopics(req.Title, req.Text)
	for _, label := range req.Topics {
		topics.Labels = appendUnique(topics.Labels, strings.ToLower(label))
	}

	web := e.gatherWebVerification(ctx, req)
	factChecks := e.gatherFactChecks(ctx, req)

	plausibility := AnalyzePlausibility(req.Title, req.Text)
	linguistic := AnalyzeLinguistic(req.Title, req.Text, e.sentiment)
	sourceQuality := AnalyzeSourceQuality(req.Title + " " + req.Text)
	factSignal := InterpretFactChecks(factChecks)

	// Oracle plausibility overrides the pattern score only when it is
	// strictly more alarmed than the patterns.
	plausScore := plausibility.Score
	oracleAnswered := false
	oracleScore := 0.0
	if e.oracle.Available() {
		oracleCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.OracleTimeoutSeconds)*time.Second)
		implausibility, reason, err := e.oracle.AssessPlausibility(oracleCtx, req.Title, req.Text)
		cancel()
		if err != nil {
			Logger().Warning("oracle plausibility unavailable: %v", err)
		} else {
			oracleAnswered = true
			oracleScore = clamp01(implausibility)
			if oracleScore > plausScore {
				plausScore = oracleScore
				plausibility.Indicators = append(plausibility.Indicators, Indicator{
					Type:        "oracle_plausibility",
					Score:       oracleScore,
					Description: reason,
				})
			}
		}
	}

	signalScores := map[string]float64{
		SignalPlausibility:  plausScore,
		SignalLinguistic:    linguistic.Score,
		SignalSourceQuality: sourceQuality.Score,
		SignalFactCheck:     factSignal.Score,
		SignalTopic:         TopicSignalScore(topics),
	}

	weighted := 0.0
	for _, name := range signalOrder {
		weighted += fusionWeights[name] * signalScores[name]
	}

	in := &fusionInput{
		plausibility:   plausScore,
		sourceSignal:   sourceQuality.Score,
		topics:         topics,
		factSignal:     factSignal,
		credibility:    credibility,
		web:            web,
		oracleAnswered: oracleAnswered,
		oracleScore:    oracleScore,
	}
	st := &fusionState{score: clamp01(weighted)}
	for _, rule := range fusionRules {
		rule.apply(st, in)
	}
	likelihood := clamp01(st.score)

	result := &AnalysisResult{
		MisinformationLikelihood: likelihood,
		CredibilityScore:         1 - likelihood,
		BiasScore:                clamp01(math.Abs(linguistic.Compound)),
		AffectedTopics:           topics.Labels,
		SentimentScore:           linguistic.Compound,
		SignalScores:             signalScores,
		WebVerification:          web,
		AnalyzedAt:               time.Now().UTC(),
	}

	result.KeyIndicators = mergeIndicators(
		plausibility.Indicators,
		linguistic.Indicators,
		sourceQuality.Indicators,
		factSignal.Indicators,
		topicIndicators(topics),
		st.indicators,
	)

	result.EmotionalTriggers = emotionalTriggers(linguistic)
	result.AmplificationRisk = amplificationRisk(linguistic.Compound, likelihood, topics, plausScore)
	result.EstimatedReach = estimatedReach(result.AmplificationRisk)
	result.VelocityScore = 0.85 * result.AmplificationRisk
	result.SocietalImpactScore = impactScore(likelihood, result.AmplificationRisk, topics.MaxSensitivity)
	result.RiskLevel = riskLevel(result.SocietalImpactScore)
	result.ConfidenceScore = confidenceScore(len(result.KeyIndicators), len(factChecks) > 0)

	e.enrichWithOracle(ctx, req, result)
	if result.Explanation == "" {
		result.Explanation = deterministicExplanation(result)
	}
	return result, nil
}

// gatherWebVerification prefers caller-supplied sources, then the live
// verifier, then an empty default. Verifier failure is non-fatal.
func (e *Engine) gatherWebVerification(ctx context.Context, req *AnalyzeRequest) *WebVerificationResult {
	if req.WebSources != nil {
		return req.WebSources
	}
	if req.SkipWebVerify || e.verifier == nil || !cfg.EnableWebVerify {
		return &WebVerificationResult{Query: req.Title, Consensus: ConsensusInsufficient}
	}
	query := req.Title
	if strings.TrimSpace(query) == "" {
		query = truncate(req.Text, 120)
	}
	web, err := e.verifier.Verify(ctx, query)
	if err != nil {
		Logger().Warning("web verification failed: %v", err)
		return &WebVerificationResult{Query: query, Consensus: ConsensusInsufficient}
	}
	return web
}

func (e *Engine) gatherFactChecks(ctx context.Context, req *AnalyzeRequest) []FactCheckClaim {
	if len(req.FactChecks) > 0 {
		return req.FactChecks
	}
	if !cfg.EnableFactCheck || !e.factCheck.Available() {
		return nil
	}
	claims, err := e.factCheck.Search(ctx, req.Title)
	if err != nil {
		Logger().Warning("fact check lookup failed: %v", err)
		IncrementCounter(CounterAPIErrors)
		return nil
	}
	return claims
}

// enrichWithOracle adds explanation, attribution and forecast, best effort
func (e *Engine) enrichWithOracle(ctx context.Context, req *AnalyzeRequest, result *AnalysisResult) {
	if !e.oracle.Available() {
		return
	}
	oracleCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.OracleTimeoutSeconds)*time.Second)
	defer cancel()

	if explanation, err := e.oracle.ExplainVerdict(oracleCtx, result, req.Title); err == nil {
		result.Explanation = explanation
	} else {
		Logger().Debug("oracle explanation unavailable: %v", err)
	}
	if attribution, err := e.oracle.AttributeSources(oracleCtx, req.Title, req.Text); err == nil {
		result.SourceAttribution = attribution
	}
	if forecast, err := e.oracle.Forecast(oracleCtx, req.Title, req.Text, result); err == nil {
		result.Forecast = forecast
	}
}

// amplificationRisk estimates how far the content is likely to spread
func amplificationRisk(compound, likelihood float64, topics *TopicResult, plausibility float64) float64 {
	risk := 0.25*math.Abs(compound) + 0.35*likelihood + 0.25*topics.MaxSensitivity + 0.15*plausibility
	if topics.Sensitive && likelihood > 0.4 {
		risk *= 1.4
	}
	return clamp01(risk)
}

func estimatedReach(amplification float64) int {
	switch {
	case amplification >= 0.75:
		return 500000
	case amplification >= 0.55:
		return 100000
	case amplification >= 0.35:
		return 25000
	default:
		return 5000
	}
}

// impactScore blends likelihood, amplification and topic sensitivity into a
// 0-10 societal impact score
func impactScore(likelihood, amplification, sensitivity float64) float64 {
	return (0.40*likelihood + 0.30*amplification + 0.30*sensitivity) * 10
}

func riskLevel(impact float64) string {
	switch {
	case impact >= 7.5:
		return RiskLevelCritical
	case impact >= 5.0:
		return RiskLevelHigh
	case impact >= 2.5:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// confidenceScore grows with evidence volume, capped at 0.95
func confidenceScore(indicatorCount int, hasFactChecks bool) float64 {
	confidence := 0.40 + 0.06*float64(indicatorCount)
	if hasFactChecks {
		confidence += 0.12
	}
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

func emotionalTriggers(linguistic *LinguisticResult) []string {
	var triggers []string
	if linguistic.Negative > 0.3 {
		triggers = append(triggers, "negative")
	}
	if linguistic.Positive > 0.3 {
		triggers = append(triggers, "positive")
	}
	if math.Abs(linguistic.Compound) > 0.5 {
		triggers = append(triggers, "strong_emotion")
	}
	return triggers
}

func topicIndicators(topics *TopicResult) []Indicator {
	if !topics.Sensitive {
		return nil
	}
	return []Indicator{{
		Type:        "sensitive_topic",
		Score:       topics.MaxSensitivity,
		Description: fmt.Sprintf("Touches sensitive topics: %s", strings.Join(topics.Labels, ", ")),
	}}
}

func mergeIndicators(groups ...[]Indicator) []Indicator {
	var merged []Indicator
	for _, group := range groups {
		merged = append(merged, group...)
	}
	return merged
}

// deterministicExplanation builds a plain-language verdict without the
// oracle: a verdict banner, the strongest findings, topics and spread risk.
func deterministicExplanation(result *AnalysisResult) string {
	var b strings.Builder

	switch {
	case result.MisinformationLikelihood < 0.3:
		b.WriteString("This content shows few signs of misinformation.")
	case result.MisinformationLikelihood < 0.6:
		b.WriteString("This content shows some characteristics associated with misinformation and should be verified before sharing.")
	default:
		b.WriteString("This content shows strong characteristics of misinformation.")
	}

	if len(result.KeyIndicators) > 0 {
		top := make([]Indicator, len(result.KeyIndicators))
		copy(top, result.KeyIndicators)
		sort.SliceStable(top, func(a, c int) bool { return top[a].Score > top[c].Score })
		if len(top) > 4 {
			top = top[:4]
		}
		b.WriteString(" Key findings: ")
		var parts []string
		for _, ind := range top {
			parts = append(parts, ind.Description)
		}
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(".")
	}

	if len(result.AffectedTopics) > 0 {
		b.WriteString(fmt.Sprintf(" It touches on %s.", strings.Join(result.AffectedTopics, ", ")))
	}

	switch {
	case result.AmplificationRisk >= 0.7:
		b.WriteString(" It is highly likely to spread rapidly if shared.")
	case result.AmplificationRisk >= 0.4:
		b.WriteString(" It has moderate potential to spread if shared.")
	}

	if result.RiskLevel == RiskLevelHigh || result.RiskLevel == RiskLevelCritical {
		b.WriteString(fmt.Sprintf(" Societal impact risk is rated %s.", result.RiskLevel))
	}
	return b.String()
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
