package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/domain"
	accountrepo "github.com/GlebRadaev/jobverify/internal/repo/account-repo"
	"github.com/GlebRadaev/jobverify/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=mock.go -package=authservice

var (
	ErrLoginTaken         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

type Service struct {
	accountRepo Repo
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	tokenTTL    time.Duration
}

func New(repo Repo, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, tokenTTL time.Duration) *Service {
	return &Service{
		accountRepo: repo,
		hashService: hashService,
		jwtService:  jwtService,
		tokenTTL:    tokenTTL,
	}
}

// Register creates an account holding the initial credit grant.
func (s *Service) Register(ctx context.Context, login, password string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find account: ", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Info("account already exists", zap.String("login", login))
		return nil, ErrLoginTaken
	}
	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	account, err := s.accountRepo.Create(ctx, &domain.Account{
		Login:        login,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, accountrepo.ErrLoginTaken) {
			return nil, ErrLoginTaken
		}
		zap.L().Error("can't create account: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("account successfully registered", zap.String("login", login), zap.Int("credits", account.Credits))
	return account, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindByLogin(ctx, login)
	if err != nil || account == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, ErrInvalidCredentials
	}
	if ok := s.hashService.ComparePassword(account.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}
	zap.L().Info("account successfully authenticated", zap.String("login", login))
	return account, nil
}

func (s *Service) GenerateToken(accountID int) (string, error) {
	token, err := s.jwtService.GenerateJWT(accountID, time.Now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
