// cmd/satyasetu/oracle.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ReasoningOracle provides LLM-backed judgment calls. Every method degrades
// cleanly: callers treat an error (or Available() == false) as "no opinion"
// and fall back to deterministic output.
type ReasoningOracle interface {
	Available() bool
	AssessPlausibility(ctx context.Context, title, text string) (float64, string, error)
	ExplainVerdict(ctx context.Context, result *AnalysisResult, title string) (string, error)
	AttributeSources(ctx context.Context, title, text string) (string, error)
	Forecast(ctx context.Context, title, text string, result *AnalysisResult) (*ForecastResult, error)
}

// GroqOracle speaks the OpenAI chat API against Groq's endpoint
type GroqOracle struct {
	client *openai.Client
	model  string
}

func NewGroqOracle(apiKey, baseURL, model string) *GroqOracle {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &GroqOracle{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (o *GroqOracle) Available() bool { return o != nil && o.client != nil }

func (o *GroqOracle) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.2,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		IncrementCounter(CounterOracleFailures)
		return "", NewOracleError(ErrOracleCall, "chat completion failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", NewOracleError(ErrOracleCall, "empty completion response", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// AssessPlausibility asks the model for an implausibility rating in [0,1]
func (o *GroqOracle) AssessPlausibility(ctx context.Context, title, text string) (float64, string, error) {
	system := "You assess how implausible a news claim is. Respond with JSON only: " +
		`{"implausibility": <number 0.0-1.0>, "reason": "<one sentence>"}`
	user := fmt.Sprintf("Title: %s\n\nText: %s", title, truncate(text, 1500))

	raw, err := o.complete(ctx, system, user, 200)
	if err != nil {
		return 0, "", err
	}

	var parsed struct {
		Implausibility float64 `json:"implausibility"`
		Reason         string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return 0, "", NewOracleError(ErrOracleParse, "parsing plausibility response", err)
	}
	return clamp01(parsed.Implausibility), parsed.Reason, nil
}

// ExplainVerdict produces a reader-facing explanation of the analysis
func (o *GroqOracle) ExplainVerdict(ctx context.Context, result *AnalysisResult, title string) (string, error) {
	system := "You explain misinformation analysis verdicts to ordinary readers in 3-4 plain sentences. " +
		"Do not use technical jargon or mention internal scores by name."
	var indicators []string
	for _, ind := range result.KeyIndicators {
		indicators = append(indicators, ind.Description)
	}
	user := fmt.Sprintf(
		"Claim: %s\nMisinformation likelihood: %.2f\nRisk level: %s\nFindings:\n- %s",
		title, result.MisinformationLikelihood, result.RiskLevel, strings.Join(indicators, "\n- "))

	explanation, err := o.complete(ctx, system, user, 300)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(explanation), nil
}

// AttributeSources speculates on the likely origin and spread pattern
func (o *GroqOracle) AttributeSources(ctx context.Context, title, text string) (string, error) {
	system := "Given a claim circulating online, describe in 2-3 sentences what kind of source " +
		"most likely originated it and through which channels it typically spreads. Be concrete but cautious."
	user := fmt.Sprintf("Title: %s\n\nText: %s", title, truncate(text, 1000))

	attribution, err := o.complete(ctx, system, user, 250)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(attribution), nil
}

// Forecast asks for spread scenarios with probabilities summing to 100
func (o *GroqOracle) Forecast(ctx context.Context, title, text string, result *AnalysisResult) (*ForecastResult, error) {
	system := "You forecast how a piece of content will spread over the next 48 hours. Respond with JSON only: " +
		`{"timeframe": "48h", "summary": "<one sentence>", "scenarios": ` +
		`[{"title": "...", "description": "...", "probability": <integer percent>}]}` +
		" Provide 2-4 scenarios whose probabilities sum to 100."
	user := fmt.Sprintf(
		"Title: %s\nText: %s\nMisinformation likelihood: %.2f\nAmplification risk: %.2f",
		title, truncate(text, 800), result.MisinformationLikelihood, result.AmplificationRisk)

	raw, err := o.complete(ctx, system, user, 500)
	if err != nil {
		return nil, err
	}

	var forecast ForecastResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &forecast); err != nil {
		return nil, NewOracleError(ErrOracleParse, "parsing forecast response", err)
	}
	if len(forecast.Scenarios) == 0 {
		return nil, NewOracleError(ErrOracleParse, "forecast contained no scenarios", nil)
	}
	if forecast.Timeframe == "" {
		forecast.Timeframe = "48h"
	}
	normalizeScenarioProbabilities(forecast.Scenarios)
	return &forecast, nil
}

// normalizeScenarioProbabilities rescales probabilities to sum to exactly
// 100, assigning any rounding remainder to the largest scenario.
func normalizeScenarioProbabilities(scenarios []ForecastScenario) {
	total := 0
	for _, s := range scenarios {
		total += s.Probability
	}
	if total == 100 || total <= 0 {
		return
	}

	largest := 0
	scaled := 0
	for i := range scenarios {
		scenarios[i].Probability = scenarios[i].Probability * 100 / total
		scaled += scenarios[i].Probability
		if scenarios[i].Probability > scenarios[largest].Probability {
			largest = i
		}
	}
	scenarios[largest].Probability += 100 - scaled
}

// extractJSON strips markdown fences and trims to the outermost JSON object
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if i := strings.LastIndex(raw, "```"); i >= 0 {
			raw = raw[:i]
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

// NullOracle disables LLM features when no API key is configured
type NullOracle struct{}

func NewNullOracle() NullOracle { return NullOracle{} }

func (NullOracle) Available() bool { return false }

func (NullOracle) AssessPlausibility(context.Context, string, string) (float64, string, error) {
	return 0, "", NewOracleError(ErrOracleCall, "oracle not configured", nil)
}

func (NullOracle) ExplainVerdict(context.Context, *AnalysisResult, string) (string, error) {
	return "", NewOracleError(ErrOracleCall, "oracle not configured", nil)
}

func (NullOracle) AttributeSources(context.Context, string, string) (string, error) {
	return "", NewOracleError(ErrOracleCall, "oracle not configured", nil)
}

func (NullOracle) Forecast(context.Context, string, string, *AnalysisResult) (*ForecastResult, error) {
	return nil, NewOracleError(ErrOracleCall, "oracle not configured", nil)
}
