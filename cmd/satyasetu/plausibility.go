// cmd/satyasetu/plausibility.go
package main

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fixed contribution weights per pattern class. Politically impossible
// claims carry the highest weight of all classes.
const (
	weightImpossiblePolitical = 0.90
	weightContradictoryClaim  = 0.75
	weightMiracleCure         = 0.65
	weightDoomsday            = 0.55
	weightSuppressedTruth     = 0.55
	weightConspiracy          = 0.50
	weightNumericAnomaly      = 0.45
	weightAbsoluteLanguage    = 0.35
	weightThinContent         = 0.20
	weightVaguePerPhrase      = 0.10
	weightVagueCap            = 0.30

	thinContentWordLimit = 40
	massEventMinCount    = 10
	massEventMaxCount    = 200
)

// Mass-event numeric claims: victim/casualty counts. All patterns are
// scanned but only the single largest number drives the score, so one
// sentence can never contribute twice.
var massEventPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d[\d,]*)\s+(?:people\s+|persons\s+|children\s+|students\s+|passengers\s+|villagers\s+)?(?:killed|dead|died|dies|deaths|feared\s+dead|injured|hospitalized|hospitalised|kidnapped|abducted|missing)\b`),
	regexp.MustCompile(`(?i)\b(?:death\s+toll\s+(?:of|reaches|rises\s+to|crosses)|claimed\s+the\s+lives\s+of|leaves)\s+(\d[\d,]*)`),
	regexp.MustCompile(`(?i)\bkill(?:s|ed|ing)?\s+(?:over\s+|more\s+than\s+|nearly\s+|at\s+least\s+|around\s+)?(\d[\d,]*)`),
}

var conspiracyPhrases = []string{
	"deep state", "new world order", "illuminati", "cover-up", "coverup",
	"cover up", "they don't want you to know", "false flag", "plandemic",
	"secret agenda", "global elite", "puppet masters", "wake up people",
}

var miracleCurePhrases = []string{
	"miracle cure", "miracle drug", "cures cancer", "cures all", "cure for all",
	"secret remedy", "doctors hate", "instant cure", "magic cure",
	"100% effective cure", "cures every disease", "ancient remedy cures",
}

var doomsdayPhrases = []string{
	"end of the world", "apocalypse", "doomsday", "extinction of humanity",
	"world war 3", "world war iii", "wipe out humanity", "total collapse",
	"end of days", "civilization will end",
}

var suppressedTruthPhrases = []string{
	"the truth about", "hidden truth", "what they don't want you to know",
	"media blackout", "banned video", "suppressed by the media",
	"they are hiding", "mainstream media won't tell you", "leaked truth",
}

var absoluteWords = []string{
	"all", "every", "never", "always", "everyone", "nobody", "guaranteed",
}

var absolutePhrases = []string{
	"100%", "no one", "without exception", "each and every",
}

var vagueAttributionPhrases = []string{
	"according to media", "according to reports", "according to sources",
	"sources say", "sources said", "forwarded as received", "viral message",
	"social media claims", "whatsapp forward", "it is said that",
	"reportedly", "unconfirmed reports",
}

var contradictionDeathWords = []string{"dead", "died", "death", "passed away", "no more"}
var contradictionAliveWords = []string{"alive", "still alive", "resurrected", "came back to life", "seen alive", "spotted alive"}

var anomalyContextWords = []string{
	"crime", "crimes", "robbery", "robberies", "murder", "murders",
	"assault", "kidnapping", "kidnappings", "rape cases",
	"virus", "outbreak", "infections", "infected", "cases", "poisoned",
	"poisoning", "hospitalized", "hospitalised",
}

// Foreign leaders and the nation they actually belong to
var foreignLeaders = map[string]string{
	"putin":           "russia",
	"vladimir putin":  "russia",
	"joe biden":       "united states",
	"biden":           "united states",
	"donald trump":    "united states",
	"trump":           "united states",
	"xi jinping":      "china",
	"kim jong un":     "north korea",
	"kim jong-un":     "north korea",
	"emmanuel macron": "france",
	"macron":          "france",
	"rishi sunak":     "united kingdom",
	"keir starmer":    "united kingdom",
	"netanyahu":       "israel",
	"zelensky":        "ukraine",
	"zelenskyy":       "ukraine",
	"olaf scholz":     "germany",
	"scholz":          "germany",
	"narendra modi":   "india",
	"modi":            "india",
}

var countryAliases = map[string][]string{
	"india":          {"india"},
	"russia":         {"russia"},
	"united states":  {"united states", "america", "usa"},
	"china":          {"china"},
	"france":         {"france"},
	"north korea":    {"north korea"},
	"united kingdom": {"united kingdom", "britain", "uk"},
	"israel":         {"israel"},
	"ukraine":        {"ukraine"},
	"germany":        {"germany"},
}

var nationalityAdjectives = map[string]string{
	"russian":   "russia",
	"american":  "united states",
	"chinese":   "china",
	"french":    "france",
	"british":   "united kingdom",
	"israeli":   "israel",
	"ukrainian": "ukraine",
	"german":    "germany",
	"indian":    "india",
}

var politicalOfficePattern = regexp.MustCompile(`(?i)\b(?:prime\s+minister|president|chief\s+minister|chancellor|head\s+of\s+(?:the\s+)?government)\s+of\s+(?:the\s+)?([a-z]+(?:\s+[a-z]+)?)`)

var nationalityOfficePattern = regexp.MustCompile(`(?i)\b(russian|american|chinese|french|british|israeli|ukrainian|german|indian)\s+(?:president|prime\s+minister|pm)\s+of\s+(?:the\s+)?([a-z]+(?:\s+[a-z]+)?)`)

var sentenceSplitPattern = regexp.MustCompile(`[.!?\n]+`)

// AnalyzePlausibility scans title and body for extraordinary or implausible
// claims, numeric anomalies, vague attribution and thin content. Pure
// function: the same input always yields the same score and indicator set.
func AnalyzePlausibility(title, text string) *SignalResult {
	result := &SignalResult{}
	full := strings.ToLower(title + " " + text)
	sentences := splitSentences(full)

	total := 0.0
	add := func(contribution float64, indType, desc string) {
		total += contribution
		result.Indicators = append(result.Indicators, Indicator{
			Type:        indType,
			Score:       clamp01(contribution),
			Description: desc,
		})
	}

	// Pass 1: pattern classes over sentences
	massFired := make([]bool, len(sentences))
	largestCasualty := 0
	for i, sentence := range sentences {
		for _, pattern := range massEventPatterns {
			matches := pattern.FindAllStringSubmatch(sentence, -1)
			if len(matches) == 0 {
				continue
			}
			for _, m := range matches {
				if n, ok := parseCount(m[1]); ok && n > largestCasualty {
					largestCasualty = n
				}
			}
			massFired[i] = true
		}
	}
	if largestCasualty >= massEventMinCount {
		score := massCasualtyScore(largestCasualty)
		add(score, "mass_casualty_claim",
			fmt.Sprintf("Claims a mass event affecting %d people", largestCasualty))
	}

	if phrases := matchedPhrases(full, conspiracyPhrases); len(phrases) > 0 {
		add(weightConspiracy, "conspiracy_language",
			fmt.Sprintf("Uses conspiracy vocabulary (%s)", strings.Join(phrases, ", ")))
	}

	if phrases := matchedPhrases(full, miracleCurePhrases); len(phrases) > 0 {
		add(weightMiracleCure, "miracle_cure",
			fmt.Sprintf("Claims a miracle or impossible cure (%s)", strings.Join(phrases, ", ")))
	}

	if phrases := matchedPhrases(full, doomsdayPhrases); len(phrases) > 0 {
		add(weightDoomsday, "doomsday_language",
			fmt.Sprintf("Uses doomsday language (%s)", strings.Join(phrases, ", ")))
	}

	if phrases := matchedPhrases(full, suppressedTruthPhrases); len(phrases) > 0 {
		add(weightSuppressedTruth, "suppressed_truth",
			fmt.Sprintf("Claims a suppressed or hidden truth (%s)", strings.Join(phrases, ", ")))
	}

	if hits := countAbsoluteLanguage(full); hits >= 2 {
		add(weightAbsoluteLanguage, "absolute_language",
			fmt.Sprintf("Uses absolute or universal language (%d occurrences)", hits))
	}

	if desc, ok := detectImpossiblePolitical(full); ok {
		add(weightImpossiblePolitical, "impossible_political", desc)
	}

	if detectDeadAliveContradiction(sentences) {
		add(weightContradictoryClaim, "contradictory_claim",
			"Contains contradictory life/death statements")
	}

	// Pass 2: numeric anomalies in crime or health-scare context that the
	// mass-event patterns did not already cover
	if sentence, ok := detectNumericAnomaly(sentences, massFired); ok {
		add(weightNumericAnomaly, "numeric_anomaly",
			fmt.Sprintf("Large number in alarming context: %q", truncate(sentence, 90)))
	}

	// Pass 3: vague attribution
	if phrases := matchedPhrases(full, vagueAttributionPhrases); len(phrases) > 0 {
		contribution := weightVaguePerPhrase * float64(len(phrases))
		if contribution > weightVagueCap {
			contribution = weightVagueCap
		}
		add(contribution, "vague_attribution",
			fmt.Sprintf("Relies on vague attribution (%s)", strings.Join(phrases, ", ")))
	}

	// Pass 4: thin content
	if wordCount(text) < thinContentWordLimit {
		add(weightThinContent, "thin_content",
			"Content is too short to substantiate its claim")
	}

	result.Score = clamp01(total)
	return result
}

// massCasualtyScore maps the largest claimed casualty count to [0.30, 1.00].
// A claim of ~10 people scores 0.30, 200 or more scores 1.00.
func massCasualtyScore(n int) float64 {
	if n >= massEventMaxCount {
		return 1.0
	}
	span := float64(massEventMaxCount - massEventMinCount)
	return 0.30 + float64(n-massEventMinCount)/span*0.70
}

// Sorted leader names so indicator text is stable run to run
var leaderNames = func() []string {
	names := make([]string, 0, len(foreignLeaders))
	for name := range foreignLeaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

// detectImpossiblePolitical looks for a named foreign leader assigned to
// head another nation's government, or a nationality/office mismatch.
func detectImpossiblePolitical(full string) (string, bool) {
	for _, m := range politicalOfficePattern.FindAllStringSubmatch(full, -1) {
		country, ok := canonicalCountry(m[1])
		if !ok {
			continue
		}
		for _, leader := range leaderNames {
			if foreignLeaders[leader] != country && strings.Contains(full, leader) {
				return fmt.Sprintf("Assigns %s to head the government of %s", titleCase(leader), titleCase(country)), true
			}
		}
	}

	for _, m := range nationalityOfficePattern.FindAllStringSubmatch(full, -1) {
		homeland := nationalityAdjectives[strings.ToLower(m[1])]
		country, ok := canonicalCountry(m[2])
		if ok && homeland != "" && homeland != country {
			return fmt.Sprintf("Describes a %s head of government for %s", strings.ToLower(m[1]), titleCase(country)), true
		}
	}

	return "", false
}

// canonicalCountry resolves captured text to a canonical country name
func canonicalCountry(captured string) (string, bool) {
	captured = strings.TrimSpace(strings.ToLower(captured))
	for canonical, aliases := range countryAliases {
		for _, alias := range aliases {
			if captured == alias || strings.HasPrefix(captured, alias+" ") {
				return canonical, true
			}
		}
	}
	return "", false
}

// detectDeadAliveContradiction reports whether any sentence asserts both
// death and being alive.
func detectDeadAliveContradiction(sentences []string) bool {
	for _, sentence := range sentences {
		if containsAny(sentence, contradictionDeathWords) && containsAny(sentence, contradictionAliveWords) {
			return true
		}
	}
	return false
}

// detectNumericAnomaly flags sentences pairing a number >= 10 with crime or
// health-scare vocabulary, skipping sentences a mass-event pattern consumed.
func detectNumericAnomaly(sentences []string, massFired []bool) (string, bool) {
	numberPattern := regexp.MustCompile(`\b(\d[\d,]*)\b`)
	for i, sentence := range sentences {
		if massFired[i] {
			continue
		}
		if !containsAny(sentence, anomalyContextWords) {
			continue
		}
		for _, m := range numberPattern.FindAllStringSubmatch(sentence, -1) {
			if n, ok := parseCount(m[1]); ok && n >= massEventMinCount {
				return strings.TrimSpace(sentence), true
			}
		}
	}
	return "", false
}

// countAbsoluteLanguage counts absolute/universal word and phrase hits
func countAbsoluteLanguage(full string) int {
	count := 0
	for _, tok := range tokenizeWords(full) {
		for _, w := range absoluteWords {
			if tok == w {
				count++
				break
			}
		}
	}
	for _, phrase := range absolutePhrases {
		count += strings.Count(full, phrase)
	}
	return count
}

// Helper functions

func splitSentences(text string) []string {
	parts := sentenceSplitPattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

func matchedPhrases(text string, phrases []string) []string {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			matched = append(matched, phrase)
		}
	}
	return matched
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// truncate cuts on a rune boundary so snippets stay valid UTF-8
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
