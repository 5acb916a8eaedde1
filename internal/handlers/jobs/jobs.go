package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/dto"
	"github.com/GlebRadaev/jobverify/internal/service/jobservice"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	"github.com/GlebRadaev/jobverify/pkg/auth"
	"github.com/GlebRadaev/jobverify/pkg/utils"
)

//go:generate mockgen -source=jobs.go -destination=mock.go -package=jobs

const retryAfterSeconds = "30"

type Service interface {
	Analyze(ctx context.Context, accountID int, sub jobservice.Submission) (*jobservice.Result, error)
	AnalyzeURL(ctx context.Context, accountID int, rawURL string, force bool) (*jobservice.Result, error)
	Bookmarks(ctx context.Context, accountID int) ([]domain.JobPosting, error)
	History(ctx context.Context, accountID int) ([]domain.JobAnalysis, error)
}

type JobHandler struct {
	jobService Service
}

func New(jobService Service) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// Analyze godoc
//
//	@Summary		Analyze a job posting
//	@Description	Check a pasted or extracted posting for authenticity, score its completeness and suggest questions.
//	@Description	A posting the account already analysed is returned with already_processed=true at no cost unless force is set.
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AnalyzeJobRequestDTO	true	"Job posting"
//	@Success		200		{object}	dto.JobResultDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Account not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient credits"
//	@Failure		422		{object}	utils.Response	"Invalid source url"
//	@Failure		503		{object}	utils.Response	"AI service unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/jobs/analyze [post]
func (h *JobHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.AnalyzeJobRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, dto.ValidationMessage(err))
		return
	}

	res, err := h.jobService.Analyze(r.Context(), accountID, jobservice.Submission{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Source:       domain.Source(req.Source),
		SourceURL:    req.SourceURL,
		Force:        req.Force,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newResult(res))
}

// AnalyzeURL godoc
//
//	@Summary		Analyze a job posting by link
//	@Description	Fetch a LinkedIn, Indeed or company careers page and analyze the posting behind it.
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AnalyzeURLRequestDTO	true	"Job link"
//	@Success		200		{object}	dto.JobResultDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Account not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient credits"
//	@Failure		422		{object}	utils.Response	"Invalid job url"
//	@Failure		503		{object}	utils.Response	"Page or AI service unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/jobs/analyze-url [post]
func (h *JobHandler) AnalyzeURL(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.AnalyzeURLRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, dto.ValidationMessage(err))
		return
	}

	res, err := h.jobService.AnalyzeURL(r.Context(), accountID, req.URL, req.Force)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, newResult(res))
}

// GetBookmarks godoc
//
//	@Summary		List bookmarked postings
//	@Description	Postings judged authentic are bookmarked automatically.
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.JobPostingDTO
//	@Success		204	{string}	string			"No bookmarks"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/jobs [get]
func (h *JobHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postings, err := h.jobService.Bookmarks(r.Context(), accountID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(postings) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]*dto.JobPostingDTO, 0, len(postings))
	for i := range postings {
		response = append(response, dto.NewJobPostingDTO(&postings[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetHistory godoc
//
//	@Summary		List job analyses
//	@Description	The latest analyses of the account, newest first.
//	@Tags			Jobs
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.JobAnalysisDTO
//	@Success		204	{string}	string			"No analyses"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/jobs/analyses [get]
func (h *JobHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	analyses, err := h.jobService.History(r.Context(), accountID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(analyses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.JobAnalysisDTO, 0, len(analyses))
	for i := range analyses {
		response = append(response, dto.NewJobAnalysisDTO(&analyses[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func newResult(res *jobservice.Result) dto.JobResultDTO {
	return dto.JobResultDTO{
		Bookmarked:       res.Bookmarked(),
		AlreadyProcessed: res.AlreadyProcessed,
		CreditsUsed:      res.CreditsUsed,
		Posting:          dto.NewJobPostingDTO(res.Posting),
		Analysis:         dto.NewJobAnalysisDTO(res.Analysis),
	}
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgerservice.ErrInsufficientCredits):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ledgerservice.ErrAccountInactive):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, jobservice.ErrInvalidURL):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, jobservice.ErrInvalidSubmission):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, jobservice.ErrExternalServiceUnavailable):
		w.Header().Set("Retry-After", retryAfterSeconds)
		utils.RespondWithError(w, http.StatusServiceUnavailable, "External service unavailable, no credits were charged")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
