package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMagnitude(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"12K", 12000},
		{"12k", 12000},
		{"3.4M", 3400000},
		{"1,250", 1250},
		{"1 250", 1250},
		{"250", 250},
		{"2.5", 2.5},
		{"120K+", 120000},
		{"15%", 15},
		{"  8k ", 8000},
		{"", 0},
		{"abc", 0},
		{"K", 0},
		{"12KB", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMagnitude(tt.input))
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"float64", float64(7), 7},
		{"int", 7, 7},
		{"int64", int64(7), 7},
		{"numeric string", "7", 7},
		{"magnitude string", "2k", 2000},
		{"range takes upper bound", "1-2", 2},
		{"en dash range", "3–5", 5},
		{"empty string", "", 0},
		{"garbage", "lots", 0},
		{"unsupported type", []string{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCount(tt.input))
		})
	}
}

func TestMatchKPIField(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"Estimated Reach", "targetReach", true},
		{"חשיפה כוללת", "targetReach", true},
		{"Engagement Rate", "targetEngagement", true},
		{"ER", "targetEngagement", true},
		{"total views", "targetImpressions", true},
		{"המרות", "targetConversions", true},
		{"CVR", "targetConversions", true},
		{"brand lift", "", false},
		{"", "", false},
		// Acronyms must not match inside longer words.
		{"supercharged", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := matchKPIField(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
