package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/dto"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	"github.com/GlebRadaev/jobverify/internal/service/resumeservice"
	"github.com/GlebRadaev/jobverify/pkg/auth"
	"github.com/GlebRadaev/jobverify/pkg/utils"
)

//go:generate mockgen -source=resumes.go -destination=mock.go -package=resumes

const retryAfterSeconds = "30"

type Service interface {
	Create(ctx context.Context, accountID int, resume domain.Resume) (*domain.Resume, error)
	Get(ctx context.Context, accountID int, id uuid.UUID) (*domain.Resume, error)
	List(ctx context.Context, accountID int) ([]domain.Resume, error)
	SetTarget(ctx context.Context, accountID int, id uuid.UUID, target *uuid.UUID) error
	Analyze(ctx context.Context, accountID int, id uuid.UUID, force bool) (*resumeservice.Result, error)
	Analyses(ctx context.Context, accountID int, id uuid.UUID) ([]domain.ResumeAnalysis, error)
}

type ResumeHandler struct {
	resumeService Service
}

func New(resumeService Service) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
	}
}

// Create godoc
//
//	@Summary		Upload a resume
//	@Description	Store the extracted text of a resume, optionally aimed at a bookmarked posting.
//	@Tags			Resumes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateResumeRequestDTO	true	"Resume"
//	@Success		201		{object}	dto.ResumeDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Account not authorized"
//	@Failure		404		{object}	utils.Response	"Target posting not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/resumes [post]
func (h *ResumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateResumeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, dto.ValidationMessage(err))
		return
	}

	resume, err := h.resumeService.Create(r.Context(), accountID, domain.Resume{
		Filename:        req.Filename,
		Content:         req.Content,
		ExperienceLevel: domain.ExperienceLevel(req.ExperienceLevel),
		TargetPostingID: req.TargetPostingID,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewResumeDTO(resume, false))
}

// List godoc
//
//	@Summary		List resumes
//	@Tags			Resumes
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ResumeDTO
//	@Success		204	{string}	string			"No resumes"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/resumes [get]
func (h *ResumeHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resumes, err := h.resumeService.List(r.Context(), accountID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(resumes) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.ResumeDTO, 0, len(resumes))
	for i := range resumes {
		response = append(response, dto.NewResumeDTO(&resumes[i], false))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get a resume with its text
//	@Tags			Resumes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Resume ID"
//	@Success		200	{object}	dto.ResumeDTO
//	@Failure		400	{object}	utils.Response	"Invalid resume id"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		404	{object}	utils.Response	"Resume not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/resumes/{id} [get]
func (h *ResumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, id, ok := resumeRequest(w, r)
	if !ok {
		return
	}

	resume, err := h.resumeService.Get(r.Context(), accountID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewResumeDTO(resume, true))
}

// SetTarget godoc
//
//	@Summary		Aim a resume at a posting
//	@Description	Set or clear (null) the bookmarked posting a resume is analysed against.
//	@Tags			Resumes
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	string					true	"Resume ID"
//	@Param			request	body	dto.SetTargetRequestDTO	true	"Target posting"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Invalid request"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		404	{object}	utils.Response	"Resume or posting not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/resumes/{id}/target [put]
func (h *ResumeHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	accountID, id, ok := resumeRequest(w, r)
	if !ok {
		return
	}

	var req dto.SetTargetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.resumeService.SetTarget(r.Context(), accountID, id, req.TargetPostingID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Analyze godoc
//
//	@Summary		Get resume tips
//	@Description	Tips for the resume against its target posting. The latest stored result for the same target is returned free of charge unless force is set.
//	@Tags			Resumes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Resume ID"
//	@Param			request	body		dto.AnalyzeResumeRequestDTO	false	"Options"
//	@Success		200		{object}	dto.ResumeResultDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		401		{object}	utils.Response	"Account not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient credits"
//	@Failure		404		{object}	utils.Response	"Resume not found"
//	@Failure		503		{object}	utils.Response	"AI service unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/resumes/{id}/analyze [post]
func (h *ResumeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	accountID, id, ok := resumeRequest(w, r)
	if !ok {
		return
	}

	var req dto.AnalyzeResumeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.resumeService.Analyze(r.Context(), accountID, id, req.Force)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewResumeResultDTO(res.Analysis, res.CreditsUsed, res.Cached))
}

// GetAnalyses godoc
//
//	@Summary		List resume analyses
//	@Tags			Resumes
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Resume ID"
//	@Success		200	{array}		dto.ResumeResultDTO
//	@Success		204	{string}	string			"No analyses"
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Failure		404	{object}	utils.Response	"Resume not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/resumes/{id}/analyses [get]
func (h *ResumeHandler) GetAnalyses(w http.ResponseWriter, r *http.Request) {
	accountID, id, ok := resumeRequest(w, r)
	if !ok {
		return
	}

	analyses, err := h.resumeService.Analyses(r.Context(), accountID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if len(analyses) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.ResumeResultDTO, 0, len(analyses))
	for i := range analyses {
		response = append(response, dto.NewResumeResultDTO(&analyses[i], analyses[i].CreditsUsed, false))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func resumeRequest(w http.ResponseWriter, r *http.Request) (int, uuid.UUID, bool) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid resume id")
		return 0, uuid.Nil, false
	}
	return accountID, id, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resumeservice.ErrResumeNotFound), errors.Is(err, resumeservice.ErrPostingNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, resumeservice.ErrEmptyResume):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledgerservice.ErrInsufficientCredits):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, ledgerservice.ErrAccountInactive):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, resumeservice.ErrExternalServiceUnavailable):
		w.Header().Set("Retry-After", retryAfterSeconds)
		utils.RespondWithError(w, http.StatusServiceUnavailable, "External service unavailable, no credits were charged")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
