// cmd/satyasetu/types.go
package main

import "time"

// Risk levels derived from the societal impact score
const (
	RiskLevelLow      = "low"
	RiskLevelMedium   = "medium"
	RiskLevelHigh     = "high"
	RiskLevelCritical = "critical"
)

// Consensus values inferred across scraped web sources
const (
	ConsensusInsufficient    = "insufficient"
	ConsensusMostlyDenied    = "mostly_denied"
	ConsensusMostlySupported = "mostly_supported"
	ConsensusConflicting     = "conflicting"
)

// Source types for scraped publishers
const (
	SourceTypeMainstream  = "mainstream"
	SourceTypeFactChecker = "fact_checker"
	SourceTypeUnknown     = "unknown"
)

// Indicator is a single traceable reason contributing to a verdict
type Indicator struct {
	Type        string  `json:"type"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// SignalResult is the common output of one signal analyzer
type SignalResult struct {
	Score      float64     `json:"score"`
	Indicators []Indicator `json:"indicators"`
}

// LinguisticResult carries the linguistic signal plus sentiment detail
// needed downstream for emotional-trigger labeling
type LinguisticResult struct {
	SignalResult
	Compound float64 `json:"compound"`
	Negative float64 `json:"negative"`
	Positive float64 `json:"positive"`
}

// SourceQualityResult carries the citation-pattern signal plus raw counts
type SourceQualityResult struct {
	SignalResult
	CredibleCount int `json:"credible_count"`
	WeakCount     int `json:"weak_count"`
}

// FactCheckSignal carries the cross-reference signal plus rating buckets
type FactCheckSignal struct {
	SignalResult
	FalseCount int `json:"false_count"`
	TrueCount  int `json:"true_count"`
	MixedCount int `json:"mixed_count"`
}

// TopicResult is the topic sensitivity classification output
type TopicResult struct {
	Labels         []string `json:"labels"`
	MaxSensitivity float64  `json:"max_sensitivity"`
	Sensitive      bool     `json:"is_sensitive"`
}

// FactCheckClaim is one externally supplied fact-check verdict
type FactCheckClaim struct {
	ClaimText string `json:"claim_text"`
	Claimant  string `json:"claimant"`
	ClaimDate string `json:"claim_date,omitempty"`
	Rating    string `json:"rating"`
	Publisher string `json:"publisher"`
	URL       string `json:"url"`
}

// ScrapedSource is one web page scraped during verification
type ScrapedSource struct {
	SourceName     string  `json:"source_name"`
	SourceDomain   string  `json:"source_domain"`
	SourceType     string  `json:"source_type"`
	Credibility    float64 `json:"credibility"`
	Title          string  `json:"title"`
	Snippet        string  `json:"snippet"`
	FullText       string  `json:"full_text"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
}

// WebVerificationResult aggregates all scraped sources for one query
type WebVerificationResult struct {
	Query              string          `json:"query"`
	SourcesScraped     []ScrapedSource `json:"sources_scraped"`
	TotalSources       int             `json:"total_sources"`
	FactCheckerSources int             `json:"fact_checker_sources"`
	MainstreamSources  int             `json:"mainstream_sources"`
	SourceNames        []string        `json:"source_names"`
	Consensus          string          `json:"consensus"`
	Summary            string          `json:"summary"`
}

// ForecastScenario is one predicted outcome in an oracle forecast
type ForecastScenario struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Probability int    `json:"probability"`
}

// ForecastResult is the oracle's 3-scenario spread forecast
type ForecastResult struct {
	Timeframe string             `json:"timeframe"`
	Scenarios []ForecastScenario `json:"scenarios"`
	Summary   string             `json:"summary"`
}

// AnalysisResult is the complete fusion verdict for one piece of content
type AnalysisResult struct {
	MisinformationLikelihood float64 `json:"misinformation_likelihood"`
	CredibilityScore         float64 `json:"credibility_score"`
	BiasScore                float64 `json:"bias_score"`

	AmplificationRisk float64 `json:"amplification_risk"`
	EstimatedReach    int     `json:"estimated_reach"`
	VelocityScore     float64 `json:"velocity_score"`

	SocietalImpactScore float64  `json:"societal_impact_score"`
	RiskLevel           string   `json:"risk_level"`
	AffectedTopics      []string `json:"affected_topics"`

	SentimentScore    float64  `json:"sentiment_score"`
	EmotionalTriggers []string `json:"emotional_triggers"`

	Explanation       string `json:"explanation"`
	SourceAttribution string `json:"source_attribution,omitempty"`
	ConfidenceScore   float64 `json:"confidence_score"`

	KeyIndicators []Indicator        `json:"key_indicators"`
	SignalScores  map[string]float64 `json:"signal_scores"`

	WebVerification *WebVerificationResult `json:"web_verification,omitempty"`
	Forecast        *ForecastResult        `json:"forecast,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AnalyzeRequest is the input to one analysis call
type AnalyzeRequest struct {
	Title             string                 `json:"title"`
	Text              string                 `json:"text"`
	URL               string                 `json:"url,omitempty"`
	SourceCredibility float64                `json:"source_credibility,omitempty"`
	Topics            []string               `json:"topics,omitempty"`
	FactChecks        []FactCheckClaim       `json:"fact_check_results,omitempty"`
	WebSources        *WebVerificationResult `json:"web_sources,omitempty"`
	SkipWebVerify     bool                   `json:"skip_web_verification,omitempty"`
}

// clamp01 bounds a probability-like score to [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
