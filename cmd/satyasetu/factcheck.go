// cmd/satyasetu/factcheck.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FactCheckProvider looks up published fact-check verdicts for a claim
type FactCheckProvider interface {
	Available() bool
	Search(ctx context.Context, query string) ([]FactCheckClaim, error)
}

// Rating buckets, checked in order false, mixed, true: "not true, rated
// false" lands in the false bucket and "partly true" in the mixed bucket.
var falseRatings = []string{
	"false", "fake", "incorrect", "misleading", "pants on fire", "hoax",
	"fabricated", "debunked", "altered", "wrong",
}

var trueRatings = []string{"true", "correct", "accurate", "legit", "genuine"}

var mixedRatings = []string{
	"mixture", "mixed", "partly", "partially", "half", "unproven", "unverified",
}

// InterpretFactChecks converts published verdicts into a risk signal.
// No fact checks at all is weak evidence either way; true-only verdicts
// drive the signal down sharply.
func InterpretFactChecks(claims []FactCheckClaim) *FactCheckSignal {
	result := &FactCheckSignal{}
	if len(claims) == 0 {
		result.Score = 0.30
		result.Indicators = []Indicator{{
			Type:        "no_fact_checks",
			Score:       0.30,
			Description: "No published fact checks found for this claim",
		}}
		return result
	}

	var publishers []string
	for _, claim := range claims {
		rating := strings.ToLower(claim.Rating)
		switch {
		case containsAny(rating, falseRatings):
			result.FalseCount++
		case containsAny(rating, mixedRatings):
			result.MixedCount++
		case containsAny(rating, trueRatings):
			result.TrueCount++
		}
		if claim.Publisher != "" {
			publishers = append(publishers, claim.Publisher)
		}
	}

	var score float64
	var indType, desc string
	switch {
	case result.FalseCount > 0:
		score = 0.65 + 0.07*float64(result.FalseCount-1)
		if score > 1.0 {
			score = 1.0
		}
		indType = "fact_checked_false"
		desc = fmt.Sprintf("Rated false by %d fact check(s)", result.FalseCount)
	case result.MixedCount > 0:
		score = 0.45
		indType = "fact_checked_mixed"
		desc = fmt.Sprintf("Rated mixed or unproven by %d fact check(s)", result.MixedCount)
	case result.TrueCount > 0:
		score = 0.25 / float64(result.TrueCount)
		if score < 0.05 {
			score = 0.05
		}
		indType = "fact_checked_true"
		desc = fmt.Sprintf("Rated true by %d fact check(s)", result.TrueCount)
	default:
		score = 0.25
		indType = "fact_checks_unclassified"
		desc = fmt.Sprintf("%d fact check(s) found but ratings were unclassifiable", len(claims))
	}
	if len(publishers) > 0 {
		desc += " (" + strings.Join(publishers, ", ") + ")"
	}

	result.Score = clamp01(score)
	result.Indicators = []Indicator{{Type: indType, Score: result.Score, Description: desc}}
	return result
}

// googleFactCheck queries the Google Fact Check Tools claim search API
type googleFactCheck struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

const googleFactCheckURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

func NewGoogleFactCheck(apiKey string) FactCheckProvider {
	return &googleFactCheck{
		apiKey:  apiKey,
		baseURL: googleFactCheckURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *googleFactCheck) Available() bool { return g.apiKey != "" }

func (g *googleFactCheck) Search(ctx context.Context, query string) ([]FactCheckClaim, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("key", g.apiKey)
	params.Set("languageCode", "en")
	params.Set("pageSize", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewAPIError(ErrAPIRequest, "building fact check request", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, NewAPIError(ErrAPIRequest, "fact check request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(ErrAPIRequest, fmt.Sprintf("fact check API returned status %d", resp.StatusCode), nil)
	}

	var payload struct {
		Claims []struct {
			Text     string `json:"text"`
			Claimant string `json:"claimant"`
			Date     string `json:"claimDate"`
			Review   []struct {
				Publisher struct {
					Name string `json:"name"`
				} `json:"publisher"`
				URL    string `json:"url"`
				Rating string `json:"textualRating"`
			} `json:"claimReview"`
		} `json:"claims"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewAPIError(ErrAPIRequest, "decoding fact check response", err)
	}

	var claims []FactCheckClaim
	for _, c := range payload.Claims {
		claim := FactCheckClaim{
			ClaimText: c.Text,
			Claimant:  c.Claimant,
			ClaimDate: c.Date,
		}
		if len(c.Review) > 0 {
			claim.Rating = c.Review[0].Rating
			claim.Publisher = c.Review[0].Publisher.Name
			claim.URL = c.Review[0].URL
		}
		claims = append(claims, claim)
	}
	return claims, nil
}

// nullFactCheck is used when no API key is configured
type nullFactCheck struct{}

func NewNullFactCheck() FactCheckProvider { return nullFactCheck{} }

func (nullFactCheck) Available() bool { return false }

func (nullFactCheck) Search(context.Context, string) ([]FactCheckClaim, error) {
	return nil, nil
}
