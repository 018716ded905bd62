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

// ParkingHandler - обработчик запросов к парковкам
type ParkingHandler struct {
	parkingUC   *usecase.ParkingUseCase
	occupancyUC *usecase.OccupancyUseCase
	logger      *zap.Logger
}

// NewParkingHandler - создание нового ParkingHandler
func NewParkingHandler(
	parkingUC *usecase.ParkingUseCase,
	occupancyUC *usecase.OccupancyUseCase,
	logger *zap.Logger,
) *ParkingHandler {
	return &ParkingHandler{
		parkingUC:   parkingUC,
		occupancyUC: occupancyUC,
		logger:      logger,
	}
}

// List - все парковки
func (h *ParkingHandler) List(c *fiber.Ctx) error {
	lots, err := h.parkingUC.ListLots(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, lots, &utils.Meta{Total: len(lots)})
}

// Get - одна парковка по ID
func (h *ParkingHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	lot, err := h.parkingUC.GetLot(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, lot, nil)
}

// Create - создание парковки
func (h *ParkingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateParkingLotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	lot, err := h.parkingUC.CreateLot(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, lot)
}

// Delete - удаление парковки вместе с потоками и историей замеров
func (h *ParkingHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.parkingUC.DeleteLot(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Summaries - почасовые сводки занятости парковки
func (h *ParkingHandler) Summaries(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	summaries, err := h.occupancyUC.SummariesForLot(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, summaries, &utils.Meta{Total: len(summaries)})
}
