package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/livemap-service/internal/pkg/utils"
	"github.com/livemap-service/internal/pkg/validator"
	"github.com/livemap-service/internal/usecase"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// AuthHandler - выдача токенов воркерам обработки видео
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

// NewAuthHandler - создание нового AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Token - обмен client credentials на bearer-токен
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	token, err := h.authUC.IssueToken(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, token, nil)
}
