// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notekeep/internal/notes/adapters/http/history"
	"notekeep/internal/notes/adapters/http/middleware"
	"notekeep/internal/notes/adapters/http/notes"
	"notekeep/internal/notes/app"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(fiberApp *fiber.App, noteUseCase *app.NoteUseCase, historyUseCase *app.HistoryUseCase) {
	notesHandler := notes.NewHandler(noteUseCase, historyUseCase)
	historyHandler := history.NewHandler(historyUseCase)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := fiberApp.Group("/api/v1")

	// Маршруты заметок.
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Patch("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Маршруты истории поиска.
	historyRoutes := apiV1.Group("/search-history")
	historyRoutes.Get("/", historyHandler.ListHistory)
	historyRoutes.Delete("/", historyHandler.ClearHistory)
	historyRoutes.Delete("/:term", historyHandler.RemoveTerm)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
