package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestValidateScore(t *testing.T) {
	tests := []struct {
		name      string
		score     *float64
		expectErr bool
	}{
		{name: "nil", score: nil},
		{name: "lower bound", score: ptr(0.0)},
		{name: "upper bound", score: ptr(100.0)},
		{name: "negative", score: ptr(-0.5), expectErr: true},
		{name: "above hundred", score: ptr(100.1), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScore(tt.score)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrScoreOutOfRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobAnalysis_Validate(t *testing.T) {
	assert.NoError(t, (&JobAnalysis{ConfidenceScore: ptr(87.0), CreditsUsed: 2}).Validate())
	assert.Error(t, (&JobAnalysis{ConfidenceScore: ptr(187.0)}).Validate())
	assert.Error(t, (&JobAnalysis{MatchScore: ptr(-1.0)}).Validate())
	assert.Error(t, (&JobAnalysis{CreditsUsed: -1}).Validate())
}

func TestResumeAnalysis_Validate(t *testing.T) {
	assert.NoError(t, (&ResumeAnalysis{CreditsUsed: 5}).Validate())
	assert.Error(t, (&ResumeAnalysis{MatchScore: ptr(101.0)}).Validate())
}

func TestTransactionStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusSuccess.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
