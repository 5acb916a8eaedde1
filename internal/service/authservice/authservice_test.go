package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/jobverify/internal/domain"
	accountrepo "github.com/GlebRadaev/jobverify/internal/repo/account-repo"
	"github.com/GlebRadaev/jobverify/pkg/auth"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	service := New(repo, hashService, jwtService, time.Hour)
	defer ctrl.Finish()
	return service, repo, hashService, jwtService
}

func TestRegister(t *testing.T) {
	service, accountRepo, passwordHasher, _ := NewMock(t)

	tests := []struct {
		name            string
		login           string
		password        string
		prepareMock     func()
		expectedAccount *domain.Account
		expectedError   error
	}{
		{
			name:     "Successful registration",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				accountRepo.EXPECT().Create(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, account *domain.Account) (*domain.Account, error) {
					account.ID = 1
					account.Credits = domain.InitialCredits
					account.IsActive = true
					return account, nil
				})
			},
			expectedAccount: &domain.Account{
				ID:           1,
				Login:        "testuser",
				PasswordHash: "hashedpassword",
				Credits:      domain.InitialCredits,
				IsActive:     true,
			},
		},
		{
			name:     "Account already exists",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(&domain.Account{Login: "testuser"}, nil)
			},
			expectedError: ErrLoginTaken,
		},
		{
			name:     "Concurrent registration of the same login",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				accountRepo.EXPECT().Create(context.Background(), gomock.Any()).Return(nil, accountrepo.ErrLoginTaken)
			},
			expectedError: ErrLoginTaken,
		},
		{
			name:     "Error finding account",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name:     "Error hashing password",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("", errors.New("hashing error"))
			},
			expectedError: errors.New("hashing error"),
		},
		{
			name:     "Error creating account",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				accountRepo.EXPECT().Create(context.Background(), gomock.Any()).Return(nil, errors.New("creation failed"))
			},
			expectedError: errors.New("creation failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			account, err := service.Register(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAccount, account)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	service, accountRepo, passwordHasher, _ := NewMock(t)
	stored := &domain.Account{ID: 1, Login: "testuser", PasswordHash: "hashedpassword", IsActive: true}

	tests := []struct {
		name            string
		login           string
		password        string
		prepareMock     func()
		expectedAccount *domain.Account
		expectedError   error
	}{
		{
			name:     "Successful authentication",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(stored, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(true)
			},
			expectedAccount: stored,
		},
		{
			name:     "Invalid credentials - account not found",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(nil, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Invalid credentials - incorrect password",
			login:    "testuser",
			password: "wrongpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").Return(stored, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "wrongpassword").Return(false)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Inactive account",
			login:    "testuser",
			password: "testpassword",
			prepareMock: func() {
				accountRepo.EXPECT().FindByLogin(context.Background(), "testuser").
					Return(&domain.Account{ID: 1, Login: "testuser", PasswordHash: "hashedpassword"}, nil)
				passwordHasher.EXPECT().ComparePassword("hashedpassword", "testpassword").Return(true)
			},
			expectedError: ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			account, err := service.Authenticate(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAccount, account)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, jwtService := NewMock(t)

	jwtService.EXPECT().GenerateJWT(1, gomock.Any()).DoAndReturn(func(accountID int, exp time.Time) (string, error) {
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
		return "token", nil
	})
	token, err := service.GenerateToken(1)
	assert.NoError(t, err)
	assert.Equal(t, "token", token)

	jwtService.EXPECT().GenerateJWT(2, gomock.Any()).Return("", errors.New("signing failed"))
	_, err = service.GenerateToken(2)
	assert.EqualError(t, err, "signing failed")
}
