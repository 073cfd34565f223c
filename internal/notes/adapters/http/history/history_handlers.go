// Package history содержит HTTP-обработчики истории поиска.
package history

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeep/internal/notes/adapters/http/middleware"
	"notekeep/internal/notes/app"
	"notekeep/internal/notes/app/dto"
	"notekeep/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListHistory  = "handling list search history request"
	LogHandlerRemoveTerm   = "handling remove search term request"
	LogHandlerClearHistory = "handling clear search history request"

	ErrMsgMissingTerm = "search term is required"
	ErrMsgInternal    = "internal server error"
)

// Handler обработчик HTTP-запросов для работы с историей поиска.
type Handler struct {
	historyUseCase *app.HistoryUseCase
}

// NewHandler создает новый экземпляр обработчика истории.
func NewHandler(historyUseCase *app.HistoryUseCase) *Handler {
	return &Handler{historyUseCase: historyUseCase}
}

func requestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// ListHistory обрабатывает запрос истории поиска.
func (h *Handler) ListHistory(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListHistory"))
	log.Debug(userCtx, LogHandlerListHistory)

	terms, err := h.historyUseCase.ListHistory(userCtx)
	if err != nil {
		log.Error(userCtx, "failed to list search history", zap.Error(err))
		return internalError(ctx)
	}

	if err := ctx.JSON(dto.HistoryResponse{Terms: terms}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// RemoveTerm обрабатывает запрос на удаление запроса из истории.
func (h *Handler) RemoveTerm(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.RemoveTerm"))
	log.Debug(userCtx, LogHandlerRemoveTerm)

	term := ctx.Params("term")
	if term == "" {
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgMissingTerm,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := h.historyUseCase.RemoveTerm(userCtx, term); err != nil {
		log.Error(userCtx, "failed to remove search term", zap.Error(err))
		return internalError(ctx)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ClearHistory обрабатывает запрос на очистку истории поиска.
func (h *Handler) ClearHistory(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ClearHistory"))
	log.Debug(userCtx, LogHandlerClearHistory)

	if err := h.historyUseCase.ClearHistory(userCtx); err != nil {
		log.Error(userCtx, "failed to clear search history", zap.Error(err))
		return internalError(ctx)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func internalError(ctx fiber.Ctx) error {
	if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": ErrMsgInternal,
	}); err != nil {
		return fmt.Errorf("error sending 500 response: %w", err)
	}
	return nil
}
