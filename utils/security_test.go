package utils_test

import (
	"testing"
	"time"

	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPasswordHash(t *testing.T) {
	password := "SecurePass123"

	// Generate a hash for testing
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("Failed to generate password hash: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "Valid password should match hash",
			password: password,
			hash:     string(hash),
			want:     true,
		},
		{
			name:     "Invalid password should not match hash",
			password: "WrongPassword123",
			hash:     string(hash),
			want:     false,
		},
		{
			name:     "Empty password should not match hash",
			password: "",
			hash:     string(hash),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := utils.CheckPasswordHash(tt.password, tt.hash); got != tt.want {
				t.Errorf("CheckPasswordHash() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("SecurePass123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !utils.CheckPasswordHash("SecurePass123", hash) {
		t.Error("hashed password did not verify")
	}
	if utils.CheckPasswordHash("OtherPass456", hash) {
		t.Error("wrong password verified against hash")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	userID := uuid.New()
	token, err := utils.GenerateToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	gotID, claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if gotID != userID {
		t.Errorf("ValidateToken() user id = %v, want %v", gotID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("ValidateToken() email = %v, want user@example.com", claims.Email)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	if _, _, err := utils.ValidateToken("not-a-token"); err == nil {
		t.Error("ValidateToken() accepted garbage input")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "first-secret")
	token, err := utils.GenerateToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	t.Setenv("SECRET_KEY", "second-secret")
	if _, _, err := utils.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted token signed with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	claims := jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "user@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, _, err := utils.ValidateToken(expired); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}

func TestValidateTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, _, err := utils.ValidateToken(unsigned); err == nil {
		t.Error("ValidateToken() accepted a token with alg=none")
	}
}
