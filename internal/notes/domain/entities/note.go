// Package entities defines the domain entities for the notes service.
package entities

import (
	"strings"
	"time"
)

// Note представляет собой заметку пользователя.
//
// Tags и Category сосуществуют: исторические версии клиента использовали либо
// свободные теги, либо единственную категорию; схема несет оба поля как
// необязательные.
type Note struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tags         []string   `json:"tags"`
	Category     string     `json:"category,omitempty"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	DateCreated  time.Time  `json:"dateCreated"`
	DateModified *time.Time `json:"dateModified,omitempty"`
}

// NewNote создает новую заметку: обрезает пробелы в заголовке и содержимом,
// удаляет повторяющиеся теги с сохранением порядка и проставляет DateCreated.
// Идентификатор назначает хранилище.
func NewNote(title, content string, tags []string, category string, targetDate *time.Time) *Note {
	return &Note{
		Title:       strings.TrimSpace(title),
		Content:     strings.TrimSpace(content),
		Tags:        dedupTags(tags),
		Category:    strings.TrimSpace(category),
		TargetDate:  targetDate,
		DateCreated: time.Now(),
	}
}

// IsEmpty сообщает, пуста ли заметка после обрезки пробелов.
// Пустые заметки не должны сохраняться.
func (n *Note) IsEmpty() bool {
	return strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == ""
}

// dedupTags удаляет повторяющиеся теги, сохраняя порядок вставки.
func dedupTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
