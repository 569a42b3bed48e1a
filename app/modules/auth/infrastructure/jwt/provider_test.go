package authjwt

import (
	"errors"
	"testing"
	"time"

	"github.com/ZRunner/Axobot-API-V2/pkg/types"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long!!"
	p := NewProvider(secret)

	const userID types.Snowflake = 279063893420122113

	tests := []struct {
		name        string
		generate    bool
		ttl         time.Duration
		validator   Provider
		expectedErr error
	}{
		{
			name:     "success",
			generate: true,
			ttl:      1 * time.Hour,
		},
		{
			name:        "expired token",
			generate:    true,
			ttl:         -1 * time.Hour,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "invalid signature",
			generate:    true,
			ttl:         1 * time.Hour,
			validator:   NewProvider("wrong-secret"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := "not.a.jwt"
			issuedTokenID := ""
			if tt.generate {
				signed, claims, err := p.GenerateToken(userID, tt.ttl)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				token = signed
				issuedTokenID = claims.TokenID
			}

			validateTarget := p
			if tt.validator != nil {
				validateTarget = tt.validator
			}

			validated, err := validateTarget.ValidateToken(token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if validated.UserID != userID {
				t.Errorf("expected userID %s, got %s", userID, validated.UserID)
			}
			if validated.TokenID != issuedTokenID {
				t.Errorf("expected tokenID %s, got %s", issuedTokenID, validated.TokenID)
			}
			if validated.IsExpired() {
				t.Error("fresh token reported as expired")
			}
		})
	}
}
