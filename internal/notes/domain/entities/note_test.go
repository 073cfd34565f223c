package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"notekeep/internal/notes/domain/entities"
)

func TestNewNote(t *testing.T) {
	t.Run("trims title and content", func(t *testing.T) {
		note := entities.NewNote("  Trip to Paris  ", "  pack light ", nil, "", nil)
		assert.Equal(t, "Trip to Paris", note.Title)
		assert.Equal(t, "pack light", note.Content)
		assert.WithinDuration(t, time.Now(), note.DateCreated, time.Second)
		assert.Nil(t, note.DateModified)
	})

	t.Run("dedups tags preserving insertion order", func(t *testing.T) {
		note := entities.NewNote("t", "", []string{"travel", "monday", "travel", " ", "budget"}, "", nil)
		assert.Equal(t, []string{"travel", "monday", "budget"}, note.Tags)
	})

	t.Run("defaults tags to empty slice", func(t *testing.T) {
		note := entities.NewNote("t", "", nil, "", nil)
		assert.NotNil(t, note.Tags)
		assert.Empty(t, note.Tags)
	})
}

func TestNoteIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    bool
	}{
		{"both empty", "", "", true},
		{"whitespace only", "   ", "\t\n", true},
		{"title set", "Budget", "", false},
		{"content set", "", "Paris hotel costs", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := &entities.Note{Title: tt.title, Content: tt.content}
			assert.Equal(t, tt.want, note.IsEmpty())
		})
	}
}
