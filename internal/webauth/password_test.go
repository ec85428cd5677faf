package webauth

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		cost     int
		wantErr  error
	}{
		{
			name:     "valid password",
			password: "validpassword123",
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "password too short",
			password: "short",
			cost:     10,
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password at minimum length",
			password: "123456789012",
			cost:     10,
			wantErr:  nil,
		},
		{
			name:     "password too long",
			password: strings.Repeat("a", 73),
			cost:     10,
			wantErr:  ErrPasswordTooLong,
		},
		{
			name:     "password at maximum length",
			password: strings.Repeat("a", 72),
			cost:     10,
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, tt.cost)
			if err != tt.wantErr {
				t.Errorf("HashPassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && hash == "" {
				t.Error("HashPassword() returned empty hash for valid password")
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery", 10)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if err := CheckPassword("correct-horse-battery", hash); err != nil {
		t.Errorf("CheckPassword() with correct password returned %v", err)
	}

	if err := CheckPassword("wrong-password-here", hash); err != ErrInvalidPassword {
		t.Errorf("CheckPassword() with wrong password returned %v, want ErrInvalidPassword", err)
	}
}

func TestGenerateSessionSecret(t *testing.T) {
	a, err := GenerateSessionSecret()
	if err != nil {
		t.Fatalf("GenerateSessionSecret() error = %v", err)
	}
	if len(a) != 64 {
		t.Errorf("GenerateSessionSecret() length = %d, want 64 hex chars", len(a))
	}

	b, _ := GenerateSessionSecret()
	if a == b {
		t.Error("GenerateSessionSecret() returned the same value twice")
	}
}
