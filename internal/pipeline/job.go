package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/GlebRadaev/jobverify/internal/ai"
	"github.com/GlebRadaev/jobverify/internal/normalizer"
)

const (
	StageAuthenticity = "authenticity"
	StageScoring      = "scoring"
	StageSuggestion   = "suggestion"

	AuthenticityCost = 1
	ScoringCost      = 0
	SuggestionCost   = 1
)

var salaryPattern = regexp.MustCompile(`(?i)(\$|€|£|\bsalary\b|\bcompensation\b|\b\d{2,3}k\b|\bper (hour|year|annum)\b)`)

type JobInput struct {
	Title        string
	Company      string
	Location     *string
	Description  string
	Requirements string
	SalaryMin    *int
	SalaryMax    *int
}

type JobState struct {
	Input          JobInput
	Authenticity   normalizer.AuthenticityResult
	MatchScore     *float64
	ScoringFactors []string
	Suggestions    []string
}

// Inauthentic is true only for an explicit negative verdict.
func (s *JobState) Inauthentic() bool {
	return s.Authenticity.IsAuthentic != nil && !*s.Authenticity.IsAuthentic
}

func (s *JobState) hasSalary() bool {
	return s.Input.SalaryMin != nil || s.Input.SalaryMax != nil || salaryPattern.MatchString(s.Input.Description)
}

func NewJobChain(client ai.Client) *Chain[JobState] {
	return NewChain[JobState](
		&AuthenticityStage{client: client},
		&ScoringStage{},
		&SuggestionStage{client: client},
	)
}

type AuthenticityStage struct {
	client ai.Client
}

func (s *AuthenticityStage) Name() string { return StageAuthenticity }
func (s *AuthenticityStage) Cost() int    { return AuthenticityCost }

func (s *AuthenticityStage) Run(ctx context.Context, state *JobState) (Verdict, error) {
	text, err := s.client.Generate(ctx, authenticityPrompt(state.Input))
	if err != nil {
		return Continue, err
	}

	res := normalizer.Authenticity(text)
	state.Authenticity = res
	if strings.TrimSpace(state.Input.Company) == "" && res.Company != "" {
		state.Input.Company = res.Company
	}
	if state.Input.Location == nil && res.Location != "" {
		location := res.Location
		state.Input.Location = &location
	}

	if state.Inauthentic() {
		return Halt, nil
	}
	return Continue, nil
}

// ScoringStage rates how complete a posting is. It runs locally.
type ScoringStage struct{}

func (s *ScoringStage) Name() string { return StageScoring }
func (s *ScoringStage) Cost() int    { return ScoringCost }

func (s *ScoringStage) Run(_ context.Context, state *JobState) (Verdict, error) {
	in := state.Input
	score := 0.0
	factors := make([]string, 0, 5)

	if len(in.Description) > 100 {
		score += 20
		factors = append(factors, "Complete job description")
	}
	if strings.TrimSpace(in.Company) != "" {
		score += 20
		factors = append(factors, "Company information provided")
	}
	if in.Location != nil && strings.TrimSpace(*in.Location) != "" {
		score += 20
		factors = append(factors, "Location specified")
	}
	if state.hasSalary() {
		score += 20
		factors = append(factors, "Salary information available")
	}
	if len(in.Requirements) > 50 {
		score += 20
		factors = append(factors, "Clear requirements")
	}

	state.MatchScore = &score
	state.ScoringFactors = factors
	return Continue, nil
}

type SuggestionStage struct {
	client ai.Client
}

func (s *SuggestionStage) Name() string { return StageSuggestion }
func (s *SuggestionStage) Cost() int    { return SuggestionCost }

func (s *SuggestionStage) Run(ctx context.Context, state *JobState) (Verdict, error) {
	text, err := s.client.Generate(ctx, suggestionPrompt(state))
	if err != nil {
		return Continue, err
	}

	suggestions := ruleSuggestions(state)
	seen := make(map[string]struct{}, len(suggestions))
	for _, item := range suggestions {
		seen[strings.ToLower(item)] = struct{}{}
	}
	for _, item := range normalizer.Suggestions(text) {
		if _, dup := seen[strings.ToLower(item)]; dup {
			continue
		}
		seen[strings.ToLower(item)] = struct{}{}
		suggestions = append(suggestions, item)
	}
	state.Suggestions = suggestions
	return Continue, nil
}

func ruleSuggestions(state *JobState) []string {
	var out []string
	auth := state.Authenticity
	if auth.IsAuthentic != nil && *auth.IsAuthentic && auth.Confidence != nil && *auth.Confidence < 30 {
		out = append(out, "High fraud risk detected. Verify company credentials.")
	}
	if state.MatchScore != nil && *state.MatchScore < 50 {
		out = append(out, "Job posting lacks important details. Request more information.")
	}
	if !state.hasSalary() {
		out = append(out, "Consider requesting salary range information.")
	}
	if state.Input.Location == nil || strings.TrimSpace(*state.Input.Location) == "" {
		out = append(out, "Location information would improve job match quality.")
	}
	return out
}
