package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emilhuseynli/cardpay-backend/internal/auth"
	"github.com/emilhuseynli/cardpay-backend/internal/models"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserService struct {
	users    repo.Users
	accounts repo.Accounts
	tm       *auth.TokenManager
}

func NewUserService(users repo.Users, accounts repo.Accounts, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, accounts: accounts, tm: tm}
}

// Register creates the user and provisions an account with a freshly
// generated card number and zero balance.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (models.User, models.Account, error) {
	u := models.User{FullName: strings.TrimSpace(fullName), Email: strings.ToLower(strings.TrimSpace(email))}
	if err := u.Validate(); err != nil {
		return models.User{}, models.Account{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, models.Account{}, err
	}
	created, err := s.users.Create(ctx, u.FullName, u.Email, hash)
	if err != nil {
		return models.User{}, models.Account{}, err
	}
	acc, err := s.accounts.Create(ctx, models.NewCardNumber(), created.ID)
	if err != nil {
		return models.User{}, models.Account{}, fmt.Errorf("provision account: %w", err)
	}
	return created, acc, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issuePair(u)
}

// Refresh rotates a refresh token into a new pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	return s.issuePair(u)
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) issuePair(u models.User) (TokenPair, error) {
	access, refresh, exp, err := s.tm.GeneratePair(u.ID, u.Email)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}
