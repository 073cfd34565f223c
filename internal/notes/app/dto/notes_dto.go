// Package dto определяет структуры запросов и ответов HTTP API.
package dto

import (
	"time"

	"notekeep/internal/notes/domain/entities"
)

// CreateNoteRequest - запрос на создание заметки.
type CreateNoteRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	Category   string     `json:"category"`
	TargetDate *time.Time `json:"targetDate"`
}

// UpdateNoteRequest - запрос на обновление заметки.
type UpdateNoteRequest struct {
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	Category   string     `json:"category"`
	TargetDate *time.Time `json:"targetDate"`
}

// ListNotesResponse - ответ со списком заметок.
type ListNotesResponse struct {
	Notes []entities.Note `json:"notes"`
	Total int             `json:"total"`
}

// HistoryResponse - ответ с историей поиска.
type HistoryResponse struct {
	Terms []string `json:"terms"`
}
