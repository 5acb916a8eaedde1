package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func score(v float64) *float64 { return &v }

func TestTips(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedTips  string
		expectedScore *float64
	}{
		{
			name:          "Fenced JSON",
			input:         "```json\n{\"tips\": \"Use stronger verbs.\", \"match_score\": 72}\n```",
			expectedTips:  "Use stronger verbs.",
			expectedScore: score(72),
		},
		{
			name:         "Plain prose passes through",
			input:        "Lead with measurable outcomes.\n\n- Quantify impact\n",
			expectedTips: "Lead with measurable outcomes.\n\n- Quantify impact\n",
		},
		{
			name:         "Empty input",
			input:        "",
			expectedTips: "",
		},
		{
			name:          "Literal newline inside string value",
			input:         "```json\n{\"tips\": \"Line one\nLine two\", \"match_score\": 64}\n```",
			expectedTips:  "Line one\nLine two",
			expectedScore: score(64),
		},
		{
			name:          "Escaped sequences in broken JSON",
			input:         `{"tips": "Say \"led\" not \"helped\".\nAdd metrics", "match_score": 88`,
			expectedTips:  "Say \"led\" not \"helped\".\nAdd metrics",
			expectedScore: score(88),
		},
		{
			name:          "Score above range is clamped",
			input:         `{"tips": "ok", "match_score": 140}`,
			expectedTips:  "ok",
			expectedScore: score(100),
		},
		{
			name:          "Score as string",
			input:         `{"tips": "ok", "match_score": "55"}`,
			expectedTips:  "ok",
			expectedScore: score(55),
		},
		{
			name:          "Tips as list",
			input:         `{"tips": ["One", "Two"], "match_score": 10}`,
			expectedTips:  "One\nTwo",
			expectedScore: score(10),
		},
		{
			name:          "Prose preamble before object",
			input:         "Here is the analysis:\n{\"tips\": \"Tighten summary.\", \"match_score\": 47.5}",
			expectedTips:  "Tighten summary.",
			expectedScore: score(47.5),
		},
		{
			name:         "Truncated reply",
			input:        `{"tips": "Cut filler`,
			expectedTips: "Cut filler",
		},
		{
			name:          "Score without tips keeps the prose",
			input:         `Score: {"match_score": 30}`,
			expectedTips:  "Score:",
			expectedScore: score(30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Tips(tt.input)
			assert.Equal(t, tt.expectedTips, res.Tips)
			assert.Equal(t, tt.expectedScore, res.MatchScore)
		})
	}
}

func TestTips_NeverPanics(t *testing.T) {
	inputs := []string{
		`"tips"`,
		`"tips":`,
		`"tips": "\`,
		"```",
		"```json",
		`{"match_score": }`,
		`}{"tips": "x"`,
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Tips(in) }, in)
	}
}

func TestAuthenticity(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name     string
		input    string
		expected AuthenticityResult
	}{
		{
			name:  "Full JSON",
			input: "```json\n{\"is_authentic\": true, \"confidence_score\": 87, \"evidence\": \"Company domain verified.\", \"extracted_data\": {\"company\": \"Acme\", \"location\": \"Berlin\", \"industry\": \"Software\"}}\n```",
			expected: AuthenticityResult{
				IsAuthentic: &yes,
				Confidence:  score(87),
				Evidence:    "Company domain verified.",
				Company:     "Acme",
				Location:    "Berlin",
				Industry:    "Software",
			},
		},
		{
			name:  "Fallback extraction",
			input: "{\"is_authentic\": false, \"confidence_score\": 12, \"evidence\": \"Asks for\nupfront fee\"}",
			expected: AuthenticityResult{
				IsAuthentic: &no,
				Confidence:  score(12),
				Evidence:    "Asks for\nupfront fee",
			},
		},
		{
			name:  "Prose becomes evidence",
			input: "  Looks legitimate overall.  ",
			expected: AuthenticityResult{
				Evidence: "Looks legitimate overall.",
			},
		},
		{
			name:  "String verdict",
			input: `{"is_authentic": "no", "confidence_score": "20%"}`,
			expected: AuthenticityResult{
				IsAuthentic: &no,
				Confidence:  score(20),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Authenticity(tt.input))
		})
	}
}

func TestSuggestions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "JSON array",
			input:    `["Add salary range", "List tech stack"]`,
			expected: []string{"Add salary range", "List tech stack"},
		},
		{
			name:     "Object with suggestions",
			input:    "```json\n{\"suggestions\": [\"Ask about team size\", \" \"]}\n```",
			expected: []string{"Ask about team size"},
		},
		{
			name:     "Bullet list",
			input:    "- Add salary\n* Mention remote policy\n1. Clarify team size\n\n",
			expected: []string{"Add salary", "Mention remote policy", "Clarify team size"},
		},
		{
			name:     "Empty",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Suggestions(tt.input))
		})
	}
}
