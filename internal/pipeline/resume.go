package pipeline

import (
	"context"

	"github.com/GlebRadaev/jobverify/internal/ai"
	"github.com/GlebRadaev/jobverify/internal/normalizer"
)

const (
	StageTips = "tips"
	TipsCost  = 5
)

type ResumeTarget struct {
	Title       string
	Company     string
	Description string
}

type ResumeState struct {
	ResumeText string
	Level      string
	Target     *ResumeTarget

	Tips       string
	MatchScore *float64
}

func NewResumeChain(client ai.Client) *Chain[ResumeState] {
	return NewChain[ResumeState](&TipsStage{client: client})
}

type TipsStage struct {
	client ai.Client
}

func (s *TipsStage) Name() string { return StageTips }
func (s *TipsStage) Cost() int    { return TipsCost }

func (s *TipsStage) Run(ctx context.Context, state *ResumeState) (Verdict, error) {
	text, err := s.client.Generate(ctx, tipsPrompt(state))
	if err != nil {
		return Continue, err
	}

	res := normalizer.Tips(text)
	state.Tips = res.Tips
	// match_score is only defined against a target posting.
	if state.Target != nil {
		state.MatchScore = res.MatchScore
	}
	return Continue, nil
}
