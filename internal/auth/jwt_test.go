package auth

import (
	"testing"

	"github.com/sopheak-dev/agencyflow/internal/config"
	"github.com/sopheak-dev/agencyflow/internal/constant"
)

// Perform token generation and verify the generated token to ensure VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	cfg := config.AuthConfig{JWT_SECRET: "test-secret"}

	jwtService := NewJwt(cfg, nil)
	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(JWTPayload{
		ID:    7,
		Email: "client@example.com",
		Role:  constant.UserRoleClient,
	})
	if err != nil {
		t.Errorf(
			"An error occurred during refresh token and access token generation. Error: %v", err)
	}

	refreshClaims, err := jwtService.VerifyJwtToken(*refreshToken)
	if err != nil {
		t.Errorf(
			"An error occurred during refresh token verification. Error: %v", err)
	}
	if refreshClaims.Type != constant.JWT_TYPE_REFRESH {
		t.Errorf("Expected refresh token type, got %s", refreshClaims.Type)
	}

	accessClaims, err := jwtService.VerifyJwtToken(*accessToken)
	if err != nil {
		t.Errorf(
			"An error occurred during access token verification. Error: %v", err)
	}
	if accessClaims.Type != constant.JWT_TYPE_ACCESS {
		t.Errorf("Expected access token type, got %s", accessClaims.Type)
	}
	if accessClaims.User.ID != 7 || accessClaims.User.Role != constant.UserRoleClient {
		t.Errorf("Claims do not round-trip the payload, got %+v", accessClaims.User)
	}
}

func TestVerifyJwtTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewJwt(config.AuthConfig{JWT_SECRET: "secret-a"}, nil)
	verifier := NewJwt(config.AuthConfig{JWT_SECRET: "secret-b"}, nil)

	_, accessToken, err := issuer.GenerateRefreshAndAccessToken(JWTPayload{ID: 1, Role: constant.UserRoleAdmin})
	if err != nil {
		t.Fatalf("Token generation failed: %v", err)
	}

	if _, err := verifier.VerifyJwtToken(*accessToken); err == nil {
		t.Error("Expected verification to fail with a different secret")
	}
}
