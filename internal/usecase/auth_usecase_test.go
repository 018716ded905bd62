package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/livemap-service/internal/config"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/usecase/dto"
)

func newAuthUseCaseForTest(t *testing.T) *AuthUseCase {
	hash, err := bcrypt.GenerateFromPassword([]byte("worker-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthUseCase(&config.AuthConfig{
		JWTSecret:        "test-signing-key",
		TokenTTL:         time.Hour,
		WorkerClientID:   "detection-worker",
		WorkerSecretHash: string(hash),
	}, zap.NewNop())
}

func TestIssueToken_ValidCredentials(t *testing.T) {
	uc := newAuthUseCaseForTest(t)

	resp, err := uc.IssueToken(dto.TokenRequest{
		ClientID:     "detection-worker",
		ClientSecret: "worker-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "detection-worker", claims.ClientID)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueToken_WrongClientID(t *testing.T) {
	uc := newAuthUseCaseForTest(t)

	_, err := uc.IssueToken(dto.TokenRequest{
		ClientID:     "someone-else",
		ClientSecret: "worker-secret",
	})
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestIssueToken_WrongSecret(t *testing.T) {
	uc := newAuthUseCaseForTest(t)

	_, err := uc.IssueToken(dto.TokenRequest{
		ClientID:     "detection-worker",
		ClientSecret: "guessed",
	})
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestValidateToken_Garbage(t *testing.T) {
	uc := newAuthUseCaseForTest(t)

	_, err := uc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}

func TestValidateToken_WrongKey(t *testing.T) {
	uc := newAuthUseCaseForTest(t)

	resp, err := uc.IssueToken(dto.TokenRequest{
		ClientID:     "detection-worker",
		ClientSecret: "worker-secret",
	})
	require.NoError(t, err)

	other := NewAuthUseCase(&config.AuthConfig{
		JWTSecret:      "different-key",
		TokenTTL:       time.Hour,
		WorkerClientID: "detection-worker",
	}, zap.NewNop())

	_, err = other.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)
}
