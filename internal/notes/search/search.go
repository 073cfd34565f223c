// Package search реализует сопоставление заметок с поисковым запросом.
package search

import (
	"strings"

	"notekeep/internal/notes/domain/entities"
)

// Match возвращает заметки, содержащие запрос в заголовке, содержимом или
// любом теге, без учета регистра и с сохранением исходного порядка.
// Пустой или состоящий из пробелов запрос возвращает входной список без
// изменений. Функция чистая и безопасна для вызова на каждое нажатие клавиши.
func Match(notes []entities.Note, query string) []entities.Note {
	query = strings.TrimSpace(query)
	if query == "" {
		return notes
	}
	query = strings.ToLower(query)

	matched := make([]entities.Note, 0, len(notes))
	for _, note := range notes {
		if matches(&note, query) {
			matched = append(matched, note)
		}
	}
	return matched
}

func matches(note *entities.Note, query string) bool {
	if strings.Contains(strings.ToLower(note.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(note.Content), query) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
