// cmd/satyasetu/topics.go
package main

import (
	"sort"
	"strings"
)

// sensitiveThreshold marks the sensitivity level above which a topic makes
// the whole claim high-stakes
const sensitiveThreshold = 0.80

type topicClass struct {
	Label       string
	Sensitivity float64
	Keywords    []string
}

// Topic classes ordered by sensitivity. Substring matching on lowercased
// text, same as the keyword passes elsewhere.
var topicClasses = []topicClass{
	{"public_safety", 0.95, []string{
		"bomb", "explosion", "terrorist", "terror attack", "shooting",
		"stampede", "riot", "curfew", "evacuation", "hostage",
	}},
	{"communal", 0.95, []string{
		"communal", "religious violence", "temple attacked", "mosque attacked",
		"church attacked", "hindu-muslim", "lynching", "mob attack",
	}},
	{"children", 0.95, []string{
		"child kidnapping", "children kidnapped", "child trafficking",
		"kidnappers", "child abduction", "missing children",
	}},
	{"health", 0.90, []string{
		"vaccine", "virus", "outbreak", "epidemic", "pandemic", "cure",
		"cancer", "hospital", "medicine", "disease", "infection", "covid",
	}},
	{"disaster", 0.90, []string{
		"earthquake", "flood", "cyclone", "tsunami", "landslide", "drought",
		"wildfire", "dam burst", "building collapse",
	}},
	{"politics", 0.85, []string{
		"election", "prime minister", "minister", "president", "government",
		"parliament", "vote", "party", "campaign", "opposition", "ballot",
	}},
	{"financial", 0.80, []string{
		"bank", "stock market", "crash", "demonetization", "demonetisation",
		"currency ban", "atm", "rbi", "investment scheme", "ponzi",
	}},
}

// ClassifyTopics tags the claim with topic labels and reports the maximum
// sensitivity across matched topics.
func ClassifyTopics(title, text string) *TopicResult {
	result := &TopicResult{}
	lower := strings.ToLower(title + " " + text)

	for _, class := range topicClasses {
		for _, kw := range class.Keywords {
			if strings.Contains(lower, kw) {
				result.Labels = append(result.Labels, class.Label)
				if class.Sensitivity > result.MaxSensitivity {
					result.MaxSensitivity = class.Sensitivity
				}
				break
			}
		}
	}

	sort.Strings(result.Labels)
	result.Sensitive = result.MaxSensitivity >= sensitiveThreshold
	return result
}

// TopicSignalScore converts the topic classification into the fusion signal:
// the maximum sensitivity, or a low baseline when nothing matched.
func TopicSignalScore(topics *TopicResult) float64 {
	if topics == nil || len(topics.Labels) == 0 {
		return 0.20
	}
	return topics.MaxSensitivity
}
