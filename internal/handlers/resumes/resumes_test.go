package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/dto"
	"github.com/GlebRadaev/jobverify/internal/service/ledgerservice"
	"github.com/GlebRadaev/jobverify/internal/service/resumeservice"
	"github.com/GlebRadaev/jobverify/pkg/auth"
)

func NewMock(t *testing.T) (*ResumeHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func request(method, target, id, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	if id != "" {
		rctx.URLParams.Add("id", id)
	}
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, auth.AccountIDKey, 1)
	return r.WithContext(ctx)
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)
	id := uuid.New()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Resume stored",
			body: `{"filename":"cv.pdf","content":"Go developer","experience_level":"junior"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, r domain.Resume) (*domain.Resume, error) {
						assert.Equal(t, domain.LevelJunior, r.ExperienceLevel)
						r.ID = id
						return &r, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Experience level omitted",
			body: `{"filename":"cv.pdf","content":"Go developer"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int, r domain.Resume) (*domain.Resume, error) {
						assert.Empty(t, r.ExperienceLevel)
						r.ID = id
						r.ExperienceLevel = domain.LevelMidSenior
						return &r, nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Unknown experience level",
			body:          `{"filename":"cv.pdf","content":"Go developer","experience_level":"intern"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "validation error: ExperienceLevel - oneof",
		},
		{
			name: "Target posting not bookmarked",
			body: `{"filename":"cv.pdf","content":"Go developer","target_posting_id":"` + uuid.NewString() + `"}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, gomock.Any()).Return(nil, resumeservice.ErrPostingNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "target posting not found",
		},
		{
			name: "Blank content",
			body: `{"filename":"cv.pdf","content":"   "}`,
			prepareMock: func() {
				service.EXPECT().Create(gomock.Any(), 1, gomock.Any()).Return(nil, resumeservice.ErrEmptyResume)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.Create(w, request(http.MethodPost, "/api/user/resumes", "", tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)
	id := uuid.New()

	service.EXPECT().Get(gomock.Any(), 1, id).Return(&domain.Resume{ID: id, Filename: "cv.pdf", Content: "Go developer"}, nil)
	w := httptest.NewRecorder()
	handler.Get(w, request(http.MethodGet, "/api/user/resumes/"+id.String(), id.String(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ResumeDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Go developer", resp.Content)

	w = httptest.NewRecorder()
	handler.Get(w, request(http.MethodGet, "/api/user/resumes/nope", "nope", ""))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	service.EXPECT().Get(gomock.Any(), 1, id).Return(nil, resumeservice.ErrResumeNotFound)
	w = httptest.NewRecorder()
	handler.Get(w, request(http.MethodGet, "/api/user/resumes/"+id.String(), id.String(), ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().List(gomock.Any(), 1).Return([]domain.Resume{{ID: uuid.New(), Filename: "cv.pdf", Content: "secret"}}, nil)
	w := httptest.NewRecorder()
	handler.List(w, request(http.MethodGet, "/api/user/resumes", "", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	service.EXPECT().List(gomock.Any(), 1).Return(nil, nil)
	w = httptest.NewRecorder()
	handler.List(w, request(http.MethodGet, "/api/user/resumes", "", ""))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSetTargetHandler(t *testing.T) {
	handler, service := NewMock(t)
	id := uuid.New()
	target := uuid.New()

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Target set",
			body: `{"target_posting_id":"` + target.String() + `"}`,
			prepareMock: func() {
				service.EXPECT().SetTarget(gomock.Any(), 1, id, &target).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Target cleared",
			body: `{"target_posting_id":null}`,
			prepareMock: func() {
				service.EXPECT().SetTarget(gomock.Any(), 1, id, (*uuid.UUID)(nil)).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Malformed target",
			body:         `{"target_posting_id":"abc"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Posting not found",
			body: `{"target_posting_id":"` + target.String() + `"}`,
			prepareMock: func() {
				service.EXPECT().SetTarget(gomock.Any(), 1, id, &target).Return(resumeservice.ErrPostingNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.SetTarget(w, request(http.MethodPut, "/api/user/resumes/"+id.String()+"/target", id.String(), tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAnalyzeHandler(t *testing.T) {
	handler, service := NewMock(t)
	id := uuid.New()
	score := 72.0
	analysis := &domain.ResumeAnalysis{ID: uuid.New(), ResumeID: id, MatchScore: &score, RecommendedTips: "Quantify impact", CreditsUsed: 5}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
		expectedBody func(t *testing.T, resp dto.ResumeResultDTO)
	}{
		{
			name: "Without body",
			body: "",
			prepareMock: func() {
				service.EXPECT().Analyze(gomock.Any(), 1, id, false).
					Return(&resumeservice.Result{Analysis: analysis, Cached: true}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, resp dto.ResumeResultDTO) {
				assert.True(t, resp.Cached)
				assert.Equal(t, 0, resp.CreditsUsed)
				assert.Equal(t, 72.0, *resp.MatchScore)
			},
		},
		{
			name: "Forced",
			body: `{"force":true}`,
			prepareMock: func() {
				service.EXPECT().Analyze(gomock.Any(), 1, id, true).
					Return(&resumeservice.Result{Analysis: analysis, CreditsUsed: 5}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: func(t *testing.T, resp dto.ResumeResultDTO) {
				assert.False(t, resp.Cached)
				assert.Equal(t, 5, resp.CreditsUsed)
				assert.Equal(t, "Quantify impact", resp.RecommendedTips)
			},
		},
		{
			name: "Insufficient credits",
			body: `{"force":true}`,
			prepareMock: func() {
				service.EXPECT().Analyze(gomock.Any(), 1, id, true).Return(nil, ledgerservice.ErrInsufficientCredits)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "AI unavailable",
			body: "",
			prepareMock: func() {
				service.EXPECT().Analyze(gomock.Any(), 1, id, false).Return(nil, resumeservice.ErrExternalServiceUnavailable)
			},
			expectedCode: http.StatusServiceUnavailable,
		},
		{
			name: "Internal server error",
			body: "",
			prepareMock: func() {
				service.EXPECT().Analyze(gomock.Any(), 1, id, false).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.Analyze(w, request(http.MethodPost, "/api/user/resumes/"+id.String()+"/analyze", id.String(), tt.body))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != nil {
				var resp dto.ResumeResultDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				tt.expectedBody(t, resp)
			}
		})
	}
}

func TestGetAnalysesHandler(t *testing.T) {
	handler, service := NewMock(t)
	id := uuid.New()

	service.EXPECT().Analyses(gomock.Any(), 1, id).Return([]domain.ResumeAnalysis{{ID: uuid.New(), ResumeID: id, CreditsUsed: 5}}, nil)
	w := httptest.NewRecorder()
	handler.GetAnalyses(w, request(http.MethodGet, "/api/user/resumes/"+id.String()+"/analyses", id.String(), ""))
	require.Equal(t, http.StatusOK, w.Code)
	var resp []dto.ResumeResultDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 5, resp[0].CreditsUsed)

	service.EXPECT().Analyses(gomock.Any(), 1, id).Return(nil, resumeservice.ErrResumeNotFound)
	w = httptest.NewRecorder()
	handler.GetAnalyses(w, request(http.MethodGet, "/api/user/resumes/"+id.String()+"/analyses", id.String(), ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
