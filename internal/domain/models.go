package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InitialCredits is granted on account creation without a ledger row.
const InitialCredits = 50

type Account struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Credits      int       `db:"credits"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

type TransactionKind string

const (
	KindDebit    TransactionKind = "debit"
	KindPurchase TransactionKind = "purchase"
	KindRefund   TransactionKind = "refund"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusSuccess   TransactionStatus = "success"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s TransactionStatus) Terminal() bool {
	return s != StatusPending
}

type CreditTransaction struct {
	ID          int64             `db:"id"`
	AccountID   int               `db:"account_id"`
	Amount      int               `db:"amount"`
	Kind        TransactionKind   `db:"kind"`
	Status      TransactionStatus `db:"status"`
	ExternalRef *string           `db:"external_reference"`
	Description string            `db:"description"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

type Source string

const (
	SourceLinkedIn Source = "linkedin"
	SourceIndeed   Source = "indeed"
	SourceManual   Source = "manual"
	SourceDocument Source = "document"
	SourceOther    Source = "other"
)

type JobPosting struct {
	ID          uuid.UUID `db:"id"`
	AccountID   int       `db:"account_id"`
	Title       string    `db:"title"`
	Company     string    `db:"company"`
	Location    *string   `db:"location"`
	Description string    `db:"description"`
	Source      Source    `db:"source"`
	SourceURL   *string   `db:"source_url"`
	Fingerprint string    `db:"fingerprint"`
	CreatedAt   time.Time `db:"created_at"`
}

type JobAnalysis struct {
	ID              uuid.UUID  `db:"id"`
	AccountID       int        `db:"account_id"`
	PostingID       *uuid.UUID `db:"posting_id"`
	Fingerprint     string     `db:"fingerprint"`
	ConfidenceScore *float64   `db:"confidence_score"`
	IsAuthentic     *bool      `db:"is_authentic"`
	Evidence        string     `db:"evidence"`
	MatchScore      *float64   `db:"match_score"`
	Suggestions     []string   `db:"suggestions"`
	StagesCompleted []string   `db:"stages_completed"`
	CreditsUsed     int        `db:"credits_used"`
	CreatedAt       time.Time  `db:"created_at"`
}

type ExperienceLevel string

const (
	LevelJunior    ExperienceLevel = "junior"
	LevelMidSenior ExperienceLevel = "mid_senior"
	LevelDirector  ExperienceLevel = "director"
	LevelExecutive ExperienceLevel = "executive"
)

type Resume struct {
	ID              uuid.UUID       `db:"id"`
	AccountID       int             `db:"account_id"`
	Filename        string          `db:"filename"`
	Content         string          `db:"content"`
	TargetPostingID *uuid.UUID      `db:"target_posting_id"`
	ExperienceLevel ExperienceLevel `db:"experience_level"`
	CreatedAt       time.Time       `db:"created_at"`
}

type ResumeAnalysis struct {
	ID              uuid.UUID  `db:"id"`
	ResumeID        uuid.UUID  `db:"resume_id"`
	TargetPostingID *uuid.UUID `db:"target_posting_id"`
	MatchScore      *float64   `db:"match_score"`
	RecommendedTips string     `db:"recommended_tips"`
	CreditsUsed     int        `db:"credits_used"`
	CreatedAt       time.Time  `db:"created_at"`
}

var ErrScoreOutOfRange = errors.New("score out of range")

// ValidateScore rejects scores outside [0, 100]. Nil is valid.
func ValidateScore(score *float64) error {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 100 {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, *score)
	}
	return nil
}

func (a *JobAnalysis) Validate() error {
	if err := ValidateScore(a.ConfidenceScore); err != nil {
		return fmt.Errorf("confidence_score: %w", err)
	}
	if err := ValidateScore(a.MatchScore); err != nil {
		return fmt.Errorf("match_score: %w", err)
	}
	if a.CreditsUsed < 0 {
		return errors.New("credits_used must not be negative")
	}
	return nil
}

func (a *ResumeAnalysis) Validate() error {
	if err := ValidateScore(a.MatchScore); err != nil {
		return fmt.Errorf("match_score: %w", err)
	}
	if a.CreditsUsed < 0 {
		return errors.New("credits_used must not be negative")
	}
	return nil
}
