package usecase

import (
	goerrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/livemap-service/internal/config"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase - выдача и проверка bearer-токенов для воркеров обработки
// видео. Чтение API открыто, запись требует токена.
type AuthUseCase struct {
	jwtSecret        []byte
	tokenTTL         time.Duration
	workerClientID   string
	workerSecretHash string
	logger           *zap.Logger
}

// Claims - полезная нагрузка токена воркера
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

func NewAuthUseCase(cfg *config.AuthConfig, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		jwtSecret:        []byte(cfg.JWTSecret),
		tokenTTL:         cfg.TokenTTL,
		workerClientID:   cfg.WorkerClientID,
		workerSecretHash: cfg.WorkerSecretHash,
		logger:           logger,
	}
}

// IssueToken verifies worker credentials and returns a signed token.
// The configured secret is a bcrypt hash, never the plain value.
func (uc *AuthUseCase) IssueToken(req dto.TokenRequest) (*dto.TokenResponse, error) {
	if req.ClientID != uc.workerClientID {
		return nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.workerSecretHash), []byte(req.ClientSecret)); err != nil {
		uc.logger.Warn("Rejected token request", zap.String("client_id", req.ClientID))
		return nil, errors.ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		ClientID: req.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		uc.logger.Error("Failed to sign token", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(uc.tokenTTL.Seconds()),
	}, nil
}

// ValidateToken parses and verifies a bearer token.
func (uc *AuthUseCase) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, goerrors.New("unexpected signing method")
			}
			return uc.jwtSecret, nil
		},
	)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.ErrUnauthorized
	}
	return claims, nil
}
