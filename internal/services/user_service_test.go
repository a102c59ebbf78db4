package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emilhuseynli/cardpay-backend/internal/auth"
	"github.com/emilhuseynli/cardpay-backend/internal/models"
	repo "github.com/emilhuseynli/cardpay-backend/internal/repository"
	"github.com/emilhuseynli/cardpay-backend/internal/repository/memory"
)

func newService() (*UserService, memory.Repositories) {
	repos := memory.NewRepositories()
	tm := auth.NewTokenManager("a-secret", "r-secret", time.Minute, time.Hour)
	return NewUserService(repos.Users, repos.Accounts, tm), repos
}

func TestRegisterProvisionsAccount(t *testing.T) {
	s, repos := newService()
	ctx := context.Background()

	u, acc, err := s.Register(ctx, "Alice A", "Alice@Example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash == "hunter2hunter2" {
		t.Error("password stored in plaintext")
	}
	if !models.ValidCardNumber(acc.CardNumber) {
		t.Errorf("provisioned card %q fails Luhn", acc.CardNumber)
	}
	if acc.Balance != 0 {
		t.Errorf("new account balance=%d want=0", acc.Balance)
	}
	if acc.OwnerUserID != u.ID {
		t.Errorf("account owner=%q want=%q", acc.OwnerUserID, u.ID)
	}

	got, err := repos.Accounts.GetByOwner(ctx, u.ID)
	if err != nil || got.CardNumber != acc.CardNumber {
		t.Errorf("GetByOwner = %+v, %v", got, err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()
	if _, _, err := s.Register(ctx, "Alice A", "a@example.com", "hunter2hunter2"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Register(ctx, "Alice B", "a@example.com", "hunter2hunter2"); !errors.Is(err, repo.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()
	if _, _, err := s.Register(ctx, "Alice A", "a@example.com", "hunter2hunter2"); err != nil {
		t.Fatal(err)
	}

	pair, err := s.Login(ctx, "a@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("empty token pair")
	}

	if _, err := s.Login(ctx, "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Login(ctx, "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	s, _ := newService()
	ctx := context.Background()
	if _, _, err := s.Register(ctx, "Alice A", "a@example.com", "hunter2hunter2"); err != nil {
		t.Fatal(err)
	}
	pair, err := s.Login(ctx, "a@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatal(err)
	}

	rotated, err := s.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.AccessToken == "" {
		t.Error("no access token after refresh")
	}

	if _, err := s.Refresh(ctx, pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("access-as-refresh: want ErrInvalidCredentials, got %v", err)
	}
}
