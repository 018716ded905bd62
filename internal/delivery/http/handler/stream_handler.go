package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/livemap-service/internal/delivery/http/middleware"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/pkg/utils"
	"github.com/livemap-service/internal/pkg/validator"
	"github.com/livemap-service/internal/usecase"
	"github.com/livemap-service/internal/usecase/dto"
	"go.uber.org/zap"
)

const markInUseUntilParam = "mark_in_use_until"

// StreamHandler - обработчик запросов к источникам видеопотоков
type StreamHandler struct {
	streamUC *usecase.StreamUseCase
	logger   *zap.Logger
}

// NewStreamHandler - создание нового StreamHandler
func NewStreamHandler(streamUC *usecase.StreamUseCase, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		streamUC: streamUC,
		logger:   logger,
	}
}

// List - список потоков, сгруппированный по парковкам.
// При mark_in_use_until выдаёт свободные потоки в аренду воркеру.
func (h *StreamHandler) List(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)
	query := dto.ListStreamsQuery{
		ActiveOnly:     c.QueryBool("active_only"),
		MarkInUseUntil: c.Query(markInUseUntilParam),
		Limit:          pagination.Limit,
		Offset:         pagination.Offset,
	}

	// Lease acquisition mutates state, so it needs an authenticated worker
	// even though the route itself is a read.
	if query.MarkInUseUntil != "" && c.Locals(middleware.ClientIDKey) == nil {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	groups, total, err := h.streamUC.ListStreams(c.Context(), query)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, groups, &utils.Meta{
		Total:  total,
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
}

// Get - один поток по ID
func (h *StreamHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	stream, err := h.streamUC.GetStream(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stream, nil)
}

// Create - регистрация нового источника видеопотока
func (h *StreamHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStreamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stream, err := h.streamUC.CreateStream(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, stream)
}

// Update - частичное обновление потока
func (h *StreamHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.UpdateStreamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stream, err := h.streamUC.UpdateStream(c.Context(), int64(id), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stream, nil)
}

// Delete - удаление потока
func (h *StreamHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.streamUC.DeleteStream(c.Context(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
