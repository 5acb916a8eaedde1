package resumeservice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/jobverify/internal/ai"
	"github.com/GlebRadaev/jobverify/internal/domain"
	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/internal/pg"
	"github.com/GlebRadaev/jobverify/internal/pipeline"
)

type mocks struct {
	resumes   *MockResumeRepo
	postings  *MockPostingRepo
	ledger    *MockLedger
	chain     *MockChain
	txManager *pg.MockTXManager
	publisher *events.MockPublisher
}

func NewMock(t *testing.T) (*Service, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		resumes:   NewMockResumeRepo(ctrl),
		postings:  NewMockPostingRepo(ctrl),
		ledger:    NewMockLedger(ctrl),
		chain:     NewMockChain(ctrl),
		txManager: pg.NewMockTXManager(ctrl),
		publisher: events.NewMockPublisher(ctrl),
	}
	return New(m.resumes, m.postings, m.ledger, m.chain, m.txManager, m.publisher), m
}

func (m mocks) inTx() {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
}

func (m mocks) reserve() {
	m.chain.EXPECT().MaxCost().Return(pipeline.TipsCost)
	m.ledger.EXPECT().Reserve(gomock.Any(), 1, pipeline.TipsCost, gomock.Any()).
		Return(&domain.CreditTransaction{ID: 9, AccountID: 1, Amount: -pipeline.TipsCost, Status: domain.StatusPending}, nil)
}

func ptr[T any](v T) *T { return &v }

func tips(_ context.Context, state *pipeline.ResumeState) (pipeline.Outcome, error) {
	state.Tips = "Quantify your impact"
	if state.Target != nil {
		state.MatchScore = ptr(72.0)
	}
	return pipeline.Outcome{Completed: []string{pipeline.StageTips}, Cost: pipeline.TipsCost}, nil
}

func TestService_Analyze(t *testing.T) {
	resumeID := uuid.New()
	targetID := uuid.New()
	plain := &domain.Resume{ID: resumeID, AccountID: 1, Filename: "cv.pdf", Content: "Go developer", ExperienceLevel: domain.LevelMidSenior}
	targeted := &domain.Resume{ID: resumeID, AccountID: 1, Filename: "cv.pdf", Content: "Go developer", TargetPostingID: &targetID}
	posting := &domain.JobPosting{ID: targetID, AccountID: 1, Title: "Backend Engineer", Company: "Acme", Description: "Build services"}
	previous := &domain.ResumeAnalysis{ID: uuid.New(), ResumeID: resumeID, RecommendedTips: "Old tips", CreditsUsed: 5}

	tests := []struct {
		name        string
		force       bool
		prepareMock func(m mocks)
		wantErr     error
		check       func(t *testing.T, res *Result)
	}{
		{
			name: "Unknown resume",
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(nil, nil)
			},
			wantErr: ErrResumeNotFound,
		},
		{
			name: "Cached analysis is returned unmodified",
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(plain, nil)
				m.resumes.EXPECT().LatestAnalysis(gomock.Any(), resumeID, (*uuid.UUID)(nil)).Return(previous, nil)
			},
			check: func(t *testing.T, res *Result) {
				assert.True(t, res.Cached)
				assert.Equal(t, 0, res.CreditsUsed)
				assert.Equal(t, previous, res.Analysis)
			},
		},
		{
			name: "Miss without target has no match score",
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(plain, nil)
				m.resumes.EXPECT().LatestAnalysis(gomock.Any(), resumeID, (*uuid.UUID)(nil)).Return(nil, nil)
				m.reserve()
				m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, state *pipeline.ResumeState) (pipeline.Outcome, error) {
						assert.Equal(t, "mid_senior", state.Level)
						assert.Nil(t, state.Target)
						return tips(ctx, state)
					})
				m.inTx()
				m.resumes.EXPECT().InsertAnalysis(gomock.Any(), gomock.Any()).Return(nil)
				m.ledger.EXPECT().CommitPartial(gomock.Any(), int64(9), pipeline.TipsCost).Return(nil)
				m.publisher.EXPECT().Publish(gomock.Any())
			},
			check: func(t *testing.T, res *Result) {
				assert.False(t, res.Cached)
				assert.Equal(t, pipeline.TipsCost, res.CreditsUsed)
				assert.Nil(t, res.Analysis.MatchScore)
				assert.Equal(t, "Quantify your impact", res.Analysis.RecommendedTips)
			},
		},
		{
			name:  "Forced run against a target always bills",
			force: true,
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(targeted, nil)
				m.postings.EXPECT().FindByID(gomock.Any(), 1, targetID).Return(posting, nil)
				m.reserve()
				m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, state *pipeline.ResumeState) (pipeline.Outcome, error) {
						assert.Equal(t, "Backend Engineer", state.Target.Title)
						return tips(ctx, state)
					})
				m.inTx()
				m.resumes.EXPECT().InsertAnalysis(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *domain.ResumeAnalysis) error {
						assert.Equal(t, targetID, *a.TargetPostingID)
						return nil
					})
				m.ledger.EXPECT().CommitPartial(gomock.Any(), int64(9), pipeline.TipsCost).Return(nil)
				m.publisher.EXPECT().Publish(gomock.Any())
			},
			check: func(t *testing.T, res *Result) {
				assert.Equal(t, 72.0, *res.Analysis.MatchScore)
				assert.Equal(t, pipeline.TipsCost, res.CreditsUsed)
			},
		},
		{
			name: "AI failure rolls back the reservation",
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(plain, nil)
				m.resumes.EXPECT().LatestAnalysis(gomock.Any(), resumeID, (*uuid.UUID)(nil)).Return(nil, nil)
				m.reserve()
				m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).Return(pipeline.Outcome{}, ai.ErrUnavailable)
				m.ledger.EXPECT().Rollback(gomock.Any(), int64(9), domain.StatusFailed).Return(nil)
			},
			wantErr: ErrExternalServiceUnavailable,
		},
		{
			name: "Store failure rolls back the reservation",
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(plain, nil)
				m.resumes.EXPECT().LatestAnalysis(gomock.Any(), resumeID, (*uuid.UUID)(nil)).Return(nil, nil)
				m.reserve()
				m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(tips)
				m.inTx()
				m.resumes.EXPECT().InsertAnalysis(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				m.ledger.EXPECT().Rollback(gomock.Any(), int64(9), domain.StatusFailed).Return(nil)
			},
			wantErr: errors.New("save analysis: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			res, err := s.Analyze(context.Background(), 1, resumeID, tt.force)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(err, tt.wantErr) {
					return
				}
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestService_Analyze_WithResumeChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := ai.NewMockClient(ctrl)
	s, m := NewMock(t)
	s.chain = pipeline.NewResumeChain(client)

	resumeID := uuid.New()
	targetID := uuid.New()
	m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).
		Return(&domain.Resume{ID: resumeID, AccountID: 1, Content: "Go developer", TargetPostingID: &targetID}, nil)
	m.resumes.EXPECT().LatestAnalysis(gomock.Any(), resumeID, &targetID).Return(nil, nil)
	m.postings.EXPECT().FindByID(gomock.Any(), 1, targetID).
		Return(&domain.JobPosting{ID: targetID, Title: "Backend Engineer", Company: "Acme"}, nil)
	m.ledger.EXPECT().Reserve(gomock.Any(), 1, pipeline.TipsCost, gomock.Any()).
		Return(&domain.CreditTransaction{ID: 9, AccountID: 1, Amount: -pipeline.TipsCost, Status: domain.StatusPending}, nil)
	client.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return("```json\n{\"tips\": \"Lead with Go projects\", \"match_score\": 81}\n```", nil)
	m.inTx()
	m.resumes.EXPECT().InsertAnalysis(gomock.Any(), gomock.Any()).Return(nil)
	m.ledger.EXPECT().CommitPartial(gomock.Any(), int64(9), pipeline.TipsCost).Return(nil)
	m.publisher.EXPECT().Publish(gomock.Any())

	res, err := s.Analyze(context.Background(), 1, resumeID, false)
	require.NoError(t, err)
	assert.Equal(t, "Lead with Go projects", res.Analysis.RecommendedTips)
	assert.Equal(t, 81.0, *res.Analysis.MatchScore)
}

func arrive(wg *sync.WaitGroup) error {
	wg.Done()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("runs did not overlap")
	}
}

func TestService_Analyze_ConcurrentForcedRuns(t *testing.T) {
	s, m := NewMock(t)
	resumeID := uuid.New()
	plain := &domain.Resume{ID: resumeID, AccountID: 1, Filename: "cv.pdf", Content: "Go developer", ExperienceLevel: domain.LevelMidSenior}

	var overlap sync.WaitGroup
	overlap.Add(2)
	m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(plain, nil).Times(2)
	m.chain.EXPECT().MaxCost().Return(pipeline.TipsCost).Times(2)
	m.ledger.EXPECT().Reserve(gomock.Any(), 1, pipeline.TipsCost, gomock.Any()).
		Return(&domain.CreditTransaction{ID: 9, AccountID: 1, Amount: -pipeline.TipsCost, Status: domain.StatusPending}, nil).
		Times(2)
	m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, state *pipeline.ResumeState) (pipeline.Outcome, error) {
			if err := arrive(&overlap); err != nil {
				return pipeline.Outcome{}, err
			}
			return tips(ctx, state)
		}).Times(2)
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		}).Times(2)
	m.resumes.EXPECT().InsertAnalysis(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.ledger.EXPECT().CommitPartial(gomock.Any(), int64(9), pipeline.TipsCost).Return(nil).Times(2)
	m.publisher.EXPECT().Publish(gomock.Any()).Times(2)

	results := make([]*Result, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.Analyze(context.Background(), 1, resumeID, true)
		}()
	}
	wg.Wait()

	for i := range 2 {
		require.NoError(t, errs[i])
		assert.False(t, results[i].Cached)
		assert.Equal(t, pipeline.TipsCost, results[i].CreditsUsed)
	}
}

func TestService_Analyze_WaiterOutlivesCancelledRunner(t *testing.T) {
	s, m := NewMock(t)
	resumeID := uuid.New()
	plain := &domain.Resume{ID: resumeID, AccountID: 1, Filename: "cv.pdf", Content: "Go developer", ExperienceLevel: domain.LevelMidSenior}

	started := make(chan struct{})
	m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(plain, nil).Times(2)
	m.resumes.EXPECT().LatestAnalysis(gomock.Any(), resumeID, (*uuid.UUID)(nil)).Return(nil, nil).AnyTimes()
	m.chain.EXPECT().MaxCost().Return(pipeline.TipsCost).Times(2)
	m.ledger.EXPECT().Reserve(gomock.Any(), 1, pipeline.TipsCost, gomock.Any()).
		Return(&domain.CreditTransaction{ID: 9, AccountID: 1, Amount: -pipeline.TipsCost, Status: domain.StatusPending}, nil).
		Times(2)
	m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *pipeline.ResumeState) (pipeline.Outcome, error) {
			close(started)
			<-ctx.Done()
			return pipeline.Outcome{}, ctx.Err()
		})
	m.ledger.EXPECT().Rollback(gomock.Any(), int64(9), domain.StatusCancelled).Return(nil)
	m.chain.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(tips)
	m.inTx()
	m.resumes.EXPECT().InsertAnalysis(gomock.Any(), gomock.Any()).Return(nil)
	m.ledger.EXPECT().CommitPartial(gomock.Any(), int64(9), pipeline.TipsCost).Return(nil)
	m.publisher.EXPECT().Publish(gomock.Any())

	ctx, cancel := context.WithCancel(context.Background())
	runnerErr := make(chan error, 1)
	go func() {
		_, err := s.Analyze(ctx, 1, resumeID, false)
		runnerErr <- err
	}()
	<-started

	waiterDone := make(chan struct{})
	var res *Result
	var err error
	go func() {
		defer close(waiterDone)
		res, err = s.Analyze(context.Background(), 1, resumeID, false)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-runnerErr, context.Canceled)
	<-waiterDone
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, pipeline.TipsCost, res.CreditsUsed)
}

func TestService_Create(t *testing.T) {
	targetID := uuid.New()

	tests := []struct {
		name        string
		resume      domain.Resume
		prepareMock func(m mocks)
		wantErr     error
	}{
		{
			name:        "Empty content",
			resume:      domain.Resume{Filename: "cv.pdf", Content: " \n"},
			prepareMock: func(m mocks) {},
			wantErr:     ErrEmptyResume,
		},
		{
			name:   "Unknown target posting",
			resume: domain.Resume{Filename: "cv.pdf", Content: "Go developer", TargetPostingID: &targetID},
			prepareMock: func(m mocks) {
				m.postings.EXPECT().FindByID(gomock.Any(), 1, targetID).Return(nil, nil)
			},
			wantErr: ErrPostingNotFound,
		},
		{
			name:   "Missing level defaults to mid-senior",
			resume: domain.Resume{Filename: "cv.pdf", Content: "Go developer"},
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *domain.Resume) (*domain.Resume, error) {
						assert.Equal(t, domain.LevelMidSenior, r.ExperienceLevel)
						return r, nil
					})
			},
		},
		{
			name:   "Created for the account",
			resume: domain.Resume{Filename: "cv.pdf", Content: "Go developer", TargetPostingID: &targetID},
			prepareMock: func(m mocks) {
				m.postings.EXPECT().FindByID(gomock.Any(), 1, targetID).Return(&domain.JobPosting{ID: targetID}, nil)
				m.resumes.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r *domain.Resume) (*domain.Resume, error) {
						assert.Equal(t, 1, r.AccountID)
						assert.NotEqual(t, uuid.Nil, r.ID)
						return r, nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			res, err := s.Create(context.Background(), 1, tt.resume)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cv.pdf", res.Filename)
		})
	}
}

func TestService_SetTarget(t *testing.T) {
	resumeID := uuid.New()
	targetID := uuid.New()

	tests := []struct {
		name        string
		target      *uuid.UUID
		prepareMock func(m mocks)
		wantErr     error
	}{
		{
			name:   "Clear target",
			target: nil,
			prepareMock: func(m mocks) {
				m.resumes.EXPECT().SetTarget(gomock.Any(), 1, resumeID, (*uuid.UUID)(nil)).Return(true, nil)
			},
		},
		{
			name:   "Resume of another account",
			target: &targetID,
			prepareMock: func(m mocks) {
				m.postings.EXPECT().FindByID(gomock.Any(), 1, targetID).Return(&domain.JobPosting{ID: targetID}, nil)
				m.resumes.EXPECT().SetTarget(gomock.Any(), 1, resumeID, &targetID).Return(false, nil)
			},
			wantErr: ErrResumeNotFound,
		},
		{
			name:   "Posting lookup fails",
			target: &targetID,
			prepareMock: func(m mocks) {
				m.postings.EXPECT().FindByID(gomock.Any(), 1, targetID).Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, m := NewMock(t)
			tt.prepareMock(m)

			err := s.SetTarget(context.Background(), 1, resumeID, tt.target)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_Analyses(t *testing.T) {
	s, m := NewMock(t)
	resumeID := uuid.New()
	want := []domain.ResumeAnalysis{{ID: uuid.New(), ResumeID: resumeID}}

	m.resumes.EXPECT().FindByID(gomock.Any(), 1, resumeID).Return(&domain.Resume{ID: resumeID}, nil)
	m.resumes.EXPECT().ListAnalyses(gomock.Any(), resumeID).Return(want, nil)

	got, err := s.Analyses(context.Background(), 1, resumeID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
