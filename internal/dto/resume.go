package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GlebRadaev/jobverify/internal/domain"
)

type CreateResumeRequestDTO struct {
	Filename        string     `json:"filename" validate:"required,max=255" example:"cv.pdf"`
	Content         string     `json:"content" validate:"required,max=100000"`
	ExperienceLevel string     `json:"experience_level,omitempty" validate:"omitempty,oneof=junior mid_senior director executive" example:"mid_senior"`
	TargetPostingID *uuid.UUID `json:"target_posting_id,omitempty"`
}

type SetTargetRequestDTO struct {
	TargetPostingID *uuid.UUID `json:"target_posting_id"`
}

type AnalyzeResumeRequestDTO struct {
	Force bool `json:"force"`
}

type ResumeDTO struct {
	ID              uuid.UUID  `json:"id"`
	Filename        string     `json:"filename"`
	Content         string     `json:"content,omitempty"`
	TargetPostingID *uuid.UUID `json:"target_posting_id"`
	ExperienceLevel string     `json:"experience_level" example:"mid_senior"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewResumeDTO omits the extracted text unless withContent is set.
func NewResumeDTO(r *domain.Resume, withContent bool) ResumeDTO {
	res := ResumeDTO{
		ID:              r.ID,
		Filename:        r.Filename,
		TargetPostingID: r.TargetPostingID,
		ExperienceLevel: string(r.ExperienceLevel),
		CreatedAt:       r.CreatedAt,
	}
	if withContent {
		res.Content = r.Content
	}
	return res
}

type ResumeResultDTO struct {
	ResumeID        uuid.UUID  `json:"resume_id"`
	TargetPostingID *uuid.UUID `json:"target_posting_id"`
	MatchScore      *float64   `json:"match_score" example:"72"`
	RecommendedTips string     `json:"recommended_tips"`
	CreditsUsed     int        `json:"credits_used" example:"5"`
	AnalyzedAt      time.Time  `json:"analyzed_at"`
	Cached          bool       `json:"cached"`
}

func NewResumeResultDTO(a *domain.ResumeAnalysis, creditsUsed int, cached bool) ResumeResultDTO {
	return ResumeResultDTO{
		ResumeID:        a.ResumeID,
		TargetPostingID: a.TargetPostingID,
		MatchScore:      a.MatchScore,
		RecommendedTips: a.RecommendedTips,
		CreditsUsed:     creditsUsed,
		AnalyzedAt:      a.CreatedAt,
		Cached:          cached,
	}
}
