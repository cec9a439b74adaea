// cmd/satyasetu/topics_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTopics(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		text          string
		wantLabels    []string
		wantSensitive bool
	}{
		{
			name:          "health claim",
			title:         "New vaccine side effects reported",
			text:          "Hospitals report cases linked to the vaccine rollout.",
			wantLabels:    []string{"health"},
			wantSensitive: true,
		},
		{
			name:          "political claim",
			title:         "Prime Minister announces election date",
			text:          "The government confirmed the vote will take place in April.",
			wantLabels:    []string{"politics"},
			wantSensitive: true,
		},
		{
			name:          "financial at threshold",
			title:         "Bank collapse rumor spreads",
			text:          "A message claims the bank will freeze all deposits.",
			wantLabels:    []string{"financial"},
			wantSensitive: true,
		},
		{
			name:          "no topics",
			title:         "Local artist paints mural",
			text:          "A new mural brightens the community center wall downtown.",
			wantLabels:    nil,
			wantSensitive: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyTopics(tt.title, tt.text)
			assert.Equal(t, tt.wantLabels, result.Labels)
			assert.Equal(t, tt.wantSensitive, result.Sensitive)
		})
	}
}

func TestClassifyTopicsMultipleTakesMaxSensitivity(t *testing.T) {
	result := ClassifyTopics(
		"Bomb scare near election rally",
		"Police responded to a bomb threat close to the campaign venue ahead of the vote.",
	)
	assert.Contains(t, result.Labels, "public_safety")
	assert.Contains(t, result.Labels, "politics")
	assert.InDelta(t, 0.95, result.MaxSensitivity, 1e-9)
	assert.True(t, result.Sensitive)
}

func TestTopicSignalScore(t *testing.T) {
	assert.InDelta(t, 0.20, TopicSignalScore(&TopicResult{}), 1e-9)
	assert.InDelta(t, 0.20, TopicSignalScore(nil), 1e-9)
	assert.InDelta(t, 0.90, TopicSignalScore(&TopicResult{
		Labels:         []string{"health"},
		MaxSensitivity: 0.90,
	}), 1e-9)
}
