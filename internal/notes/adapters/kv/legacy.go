package kv

import (
	"encoding/json"
	"strconv"
	"time"

	"notekeep/internal/notes/domain/entities"
)

// noteRecord принимает как каноническую схему заметки, так и формы старых
// версий клиента: `date` вместо `dateCreated` и идентификаторы из десятичных
// миллисекунд.
type noteRecord struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Tags         []string   `json:"tags"`
	Category     string     `json:"category"`
	TargetDate   *time.Time `json:"targetDate"`
	DateCreated  *time.Time `json:"dateCreated"`
	DateModified *time.Time `json:"dateModified"`
	LegacyDate   string     `json:"date"`
}

// legacyDateLayouts - форматы поля `date` старых записей.
var legacyDateLayouts = []string{
	time.RFC3339,
	"1/2/2006",
	"2006-01-02",
	"02.01.2006",
}

// decodeNotes разбирает сохраненную коллекцию и приводит каждую запись к
// канонической схеме.
func decodeNotes(raw []byte) ([]entities.Note, error) {
	var records []noteRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	notes := make([]entities.Note, 0, len(records))
	for _, rec := range records {
		notes = append(notes, rec.normalize())
	}
	return notes, nil
}

// normalize сводит запись любой исторической формы к канонической заметке.
func (rec *noteRecord) normalize() entities.Note {
	note := entities.Note{
		ID:           rec.ID,
		Title:        rec.Title,
		Content:      rec.Content,
		Tags:         rec.Tags,
		Category:     rec.Category,
		TargetDate:   rec.TargetDate,
		DateModified: rec.DateModified,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	switch {
	case rec.DateCreated != nil:
		note.DateCreated = *rec.DateCreated
	case rec.LegacyDate != "":
		note.DateCreated = parseLegacyDate(rec.LegacyDate)
	}

	if note.DateCreated.IsZero() {
		// Старейшие записи несли отметку создания только в идентификаторе:
		// Date.now() в десятичных миллисекундах.
		if ms, err := strconv.ParseInt(rec.ID, 10, 64); err == nil && ms > 0 {
			note.DateCreated = time.UnixMilli(ms)
		}
	}

	return note
}

func parseLegacyDate(value string) time.Time {
	for _, layout := range legacyDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
