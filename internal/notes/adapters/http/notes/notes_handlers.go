// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeep/internal/notes/adapters/http/middleware"
	"notekeep/internal/notes/app"
	"notekeep/internal/notes/app/dto"
	"notekeep/internal/notes/domain/entities"
	"notekeep/internal/notes/ports/repositories"
	"notekeep/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgEmptyNote          = "note must have a title or content"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgStorageTimeout     = "storage timed out"
	ErrMsgInternal           = "internal server error"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase    *app.NoteUseCase
	historyUseCase *app.HistoryUseCase
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteUseCase *app.NoteUseCase, historyUseCase *app.HistoryUseCase) *Handler {
	return &Handler{
		noteUseCase:    noteUseCase,
		historyUseCase: historyUseCase,
	}
}

// requestContext извлекает контекст запроса, подготовленный middleware.
func requestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(middleware.RequestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// ListNotes обрабатывает запрос списка заметок. Параметр q фильтрует список;
// параметр record=1 дополнительно записывает запрос в историю поиска -
// так экран отмечает явно отправленный поиск в отличие от поиска на каждое
// нажатие клавиши.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(userCtx, LogHandlerListNotes)

	query := ctx.Query("q")

	notes, err := h.noteUseCase.SearchNotes(userCtx, query)
	if err != nil {
		log.Error(userCtx, "failed to list notes", zap.Error(err))
		return handleError(ctx, err)
	}

	if query != "" && ctx.Query("record") == "1" {
		if err := h.historyUseCase.RecordTerm(userCtx, query); err != nil {
			// Неудавшаяся запись истории не должна ронять результат поиска.
			log.Warn(userCtx, "failed to record search term", zap.Error(err))
		}
	}

	if err := ctx.JSON(dto.ListNotesResponse{Notes: notes, Total: len(notes)}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(userCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	note, err := h.noteUseCase.CreateNote(userCtx, repositories.CreateNoteParams{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Category:   req.Category,
		TargetDate: req.TargetDate,
	})
	if err != nil {
		log.Error(userCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateNote обрабатывает запрос на обновление заметки.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(userCtx, LogHandlerUpdateNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(userCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(userCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	note, err := h.noteUseCase.UpdateNote(userCtx, &entities.Note{
		ID:         noteID,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Category:   req.Category,
		TargetDate: req.TargetDate,
	})
	if err != nil {
		log.Error(userCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.JSON(note); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteNote обрабатывает запрос на удаление заметки. Удаление отсутствующей
// заметки отвечает тем же статусом, что и успешное: контракт идемпотентен.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	userCtx := requestContext(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(userCtx, LogHandlerDeleteNote)

	noteID := ctx.Params("note_id")
	if noteID == "" {
		log.Error(userCtx, ErrMsgInvalidNoteID)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidNoteID,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := h.noteUseCase.DeleteNote(userCtx, noteID); err != nil {
		log.Error(userCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// handleError переводит ошибки бизнес-логики в HTTP-статусы.
func handleError(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := ErrMsgInternal

	switch {
	case errors.Is(err, app.ErrEmptyNote):
		status, message = fiber.StatusBadRequest, ErrMsgEmptyNote
	case errors.Is(err, app.ErrMissingID):
		status, message = fiber.StatusBadRequest, ErrMsgInvalidNoteID
	case errors.Is(err, repositories.ErrNoteNotFound):
		status, message = fiber.StatusNotFound, ErrMsgNoteNotFound
	case errors.Is(err, repositories.ErrTimeout):
		status, message = fiber.StatusGatewayTimeout, ErrMsgStorageTimeout
	}

	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}
