package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GlebRadaev/jobverify/internal/domain"
)

type AnalyzeJobRequestDTO struct {
	Title        string  `json:"title" validate:"required,max=300" example:"Backend Engineer"`
	Company      string  `json:"company" validate:"required,max=200" example:"Acme Inc."`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200" example:"Berlin"`
	Description  string  `json:"description" validate:"required,max=50000"`
	Requirements string  `json:"requirements,omitempty" validate:"max=20000"`
	SalaryMin    *int    `json:"salary_min,omitempty" validate:"omitempty,gte=0" example:"60000"`
	SalaryMax    *int    `json:"salary_max,omitempty" validate:"omitempty,gte=0" example:"80000"`
	Source       string  `json:"source,omitempty" validate:"omitempty,oneof=manual document" example:"manual"`
	SourceURL    *string `json:"source_url,omitempty" validate:"omitempty,max=2048"`
	Force        bool    `json:"force"`
}

type AnalyzeURLRequestDTO struct {
	URL   string `json:"url" validate:"required,max=2048" example:"https://www.linkedin.com/jobs/view/3912345678"`
	Force bool   `json:"force"`
}

type JobPostingDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    *string   `json:"location"`
	Description string    `json:"description"`
	Source      string    `json:"source" example:"linkedin"`
	SourceURL   *string   `json:"source_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewJobPostingDTO(p *domain.JobPosting) *JobPostingDTO {
	if p == nil {
		return nil
	}
	return &JobPostingDTO{
		ID:          p.ID,
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Description: p.Description,
		Source:      string(p.Source),
		SourceURL:   p.SourceURL,
		CreatedAt:   p.CreatedAt,
	}
}

type JobAnalysisDTO struct {
	ID              uuid.UUID  `json:"id"`
	PostingID       *uuid.UUID `json:"posting_id"`
	ConfidenceScore *float64   `json:"confidence_score" example:"87"`
	IsAuthentic     *bool      `json:"is_authentic" example:"true"`
	Evidence        string     `json:"evidence"`
	MatchScore      *float64   `json:"match_score" example:"80"`
	Suggestions     []string   `json:"suggestions"`
	StagesCompleted []string   `json:"stages_completed"`
	CreditsUsed     int        `json:"credits_used" example:"2"`
	CreatedAt       time.Time  `json:"created_at"`
}

func NewJobAnalysisDTO(a *domain.JobAnalysis) JobAnalysisDTO {
	suggestions := a.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	stages := a.StagesCompleted
	if stages == nil {
		stages = []string{}
	}
	return JobAnalysisDTO{
		ID:              a.ID,
		PostingID:       a.PostingID,
		ConfidenceScore: a.ConfidenceScore,
		IsAuthentic:     a.IsAuthentic,
		Evidence:        a.Evidence,
		MatchScore:      a.MatchScore,
		Suggestions:     suggestions,
		StagesCompleted: stages,
		CreditsUsed:     a.CreditsUsed,
		CreatedAt:       a.CreatedAt,
	}
}

// JobResultDTO answers an analysis request. CreditsUsed is what this request
// was charged; a cache hit costs nothing even though the stored analysis
// keeps its original price.
type JobResultDTO struct {
	Bookmarked       bool           `json:"bookmarked"`
	AlreadyProcessed bool           `json:"already_processed"`
	CreditsUsed      int            `json:"credits_used" example:"2"`
	Posting          *JobPostingDTO `json:"posting"`
	Analysis         JobAnalysisDTO `json:"analysis"`
}
