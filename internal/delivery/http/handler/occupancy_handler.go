package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/pkg/utils"
	"github.com/livemap-service/internal/pkg/validator"
	"github.com/livemap-service/internal/usecase"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// OccupancyHandler - обработчик запросов к замерам занятости
type OccupancyHandler struct {
	occupancyUC *usecase.OccupancyUseCase
	logger      *zap.Logger
}

// NewOccupancyHandler - создание нового OccupancyHandler
func NewOccupancyHandler(occupancyUC *usecase.OccupancyUseCase, logger *zap.Logger) *OccupancyHandler {
	return &OccupancyHandler{
		occupancyUC: occupancyUC,
		logger:      logger,
	}
}

// List - страница замеров занятости
func (h *OccupancyHandler) List(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)

	records, total, err := h.occupancyUC.ListOccupancy(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, records, &utils.Meta{
		Total:  total,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
}

// Get - один замер по ID
func (h *OccupancyHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	record, err := h.occupancyUC.GetOccupancy(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, record, nil)
}

// Create - приём замера от воркера. Timestamp выставляет сервер.
func (h *OccupancyHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateOccupancyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	record, err := h.occupancyUC.CreateOccupancy(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, record)
}
