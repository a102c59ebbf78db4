package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParsePair(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, refresh, exp, err := tm.GeneratePair("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if access == refresh {
		t.Fatal("access and refresh tokens should differ")
	}
	if time.Until(exp) <= 0 {
		t.Fatal("access expiry in the past")
	}

	claims, isRefresh, err := tm.ParseAny(access)
	if err != nil {
		t.Fatalf("ParseAny(access): %v", err)
	}
	if isRefresh {
		t.Error("access token classified as refresh")
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" {
		t.Errorf("claims = %+v", claims)
	}

	claims, isRefresh, err = tm.ParseAny(refresh)
	if err != nil {
		t.Fatalf("ParseAny(refresh): %v", err)
	}
	if !isRefresh {
		t.Error("refresh token classified as access")
	}
	if claims.UserID != "user-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseAnyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("a", "b", time.Minute, time.Hour)
	if _, _, err := tm.ParseAny("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func TestParseAnyRejectsForeignSecret(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewTokenManager("other-access", "other-refresh", time.Minute, time.Hour)

	access, _, _, err := other.GeneratePair("user-1", "a@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tm.ParseAny(access); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}
	if err := VerifyPassword("s3cret-pass", hash); err != nil {
		t.Errorf("VerifyPassword: %v", err)
	}
	if err := VerifyPassword("wrong", hash); err == nil {
		t.Error("wrong password accepted")
	}
}
