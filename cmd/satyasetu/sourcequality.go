// cmd/satyasetu/sourcequality.go
package main

import (
	"fmt"
	"regexp"
	"strings"
)

var credibleSourceDomains = []string{
	"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "thehindu.com",
	"hindustantimes.com", "indianexpress.com", "ndtv.com", "pib.gov.in",
	"who.int", "altnews.in", "boomlive.in", "factly.in", "snopes.com",
	"politifact.com", "factcheck.org", "afp.com", "theguardian.com",
	"nytimes.com", "washingtonpost.com",
}

// Phrase-level citation patterns: official records and scholarly references
// count as credible attribution even without a recognizable outlet domain.
var credibleSourcePhrases = []string{
	"official statement", "official press release", "press release",
	"court order", "court ruling", "court records", "police said",
	"police statement", "police records", "fir registered",
	"peer-reviewed", "peer reviewed", "published in the journal",
	"government notification", "official gazette",
}

var credibleURLPattern = regexp.MustCompile(`\b[a-z0-9][a-z0-9.-]*\.(gov|edu|org)\b`)

var weakSourcePatterns = []string{
	"blogspot", "wordpress.com", "wixsite", "weebly", "substack",
	"telegram", "whatsapp", "bit.ly", "tinyurl", "viral", "breaking24",
	"newsupdate", "trending",
}

// AnalyzeSourceQuality scores the claim by the mix of credible and weak
// citations found in it. Content citing nothing at all is treated as worse
// than content citing reputable outlets but better than content resting
// entirely on weak ones.
func AnalyzeSourceQuality(text string) *SourceQualityResult {
	result := &SourceQualityResult{}
	lower := strings.ToLower(text)

	for _, domain := range credibleSourceDomains {
		if strings.Contains(lower, domain) {
			result.CredibleCount++
		}
	}
	for _, phrase := range credibleSourcePhrases {
		if strings.Contains(lower, phrase) {
			result.CredibleCount++
		}
	}
	// Generic institutional URLs count once each, unless the domain was
	// already credited via the outlet list above.
	for _, match := range dedupeStrings(credibleURLPattern.FindAllString(lower, -1)) {
		if !matchesCredibleDomain(match) {
			result.CredibleCount++
		}
	}
	for _, pattern := range weakSourcePatterns {
		if strings.Contains(lower, pattern) {
			result.WeakCount++
		}
	}

	c, w := result.CredibleCount, result.WeakCount
	var score float64
	var indType, desc string
	switch {
	case c == 0 && w == 0:
		score = 0.55
		indType = "no_sources"
		desc = "No identifiable sources cited"
	case c == 0 && w > 0:
		score = 0.75
		indType = "weak_attribution"
		desc = fmt.Sprintf("Cites only weak sources (%d)", w)
	case w > c:
		score = 0.35
		indType = "mixed_attribution"
		desc = fmt.Sprintf("Weak sources (%d) outnumber credible ones (%d)", w, c)
	case c >= w:
		score = 0.30 - 0.05*float64(c)
		if score < 0.05 {
			score = 0.05
		}
		indType = "credible_attribution"
		desc = fmt.Sprintf("Cites credible sources (%d)", c)
	default:
		score = 0.40
		indType = "unclassified_attribution"
		desc = "Source quality could not be classified"
	}

	result.Score = clamp01(score)
	result.Indicators = []Indicator{{Type: indType, Score: result.Score, Description: desc}}
	return result
}

func matchesCredibleDomain(host string) bool {
	for _, domain := range credibleSourceDomains {
		if strings.Contains(host, domain) || strings.Contains(domain, host) {
			return true
		}
	}
	return false
}

func dedupeStrings(list []string) []string {
	var out []string
	for _, item := range list {
		out = appendUnique(out, item)
	}
	return out
}
