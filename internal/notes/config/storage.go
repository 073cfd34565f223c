package config

import "time"

// Поддерживаемые хранилища заметок.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// StorageConfig выбирает хранилище и его параметры.
//
// Локальное хранилище держит коллекции целиком под двумя ключами в Redis;
// удаленное хранит каждую заметку отдельной строкой в Postgres.
type StorageConfig struct {
	Backend        string `yaml:"backend" env:"NOTEKEEP_STORAGE_BACKEND" env-default:"local"`
	NotesKey       string `yaml:"notes_key" env:"NOTEKEEP_STORAGE_NOTES_KEY" env-default:"NOTES_DATA"`
	HistoryKey     string `yaml:"history_key" env:"NOTEKEEP_STORAGE_HISTORY_KEY" env-default:"SEARCH_HISTORY"`
	RemoteTimeout  int    `yaml:"remote_timeout" env:"NOTEKEEP_STORAGE_REMOTE_TIMEOUT" env-default:"5"`
	MigrationsPath string `yaml:"migrations_path" env:"NOTEKEEP_STORAGE_MIGRATIONS_PATH" env-default:"migrations/notes"`
}

// GetRemoteTimeout возвращает предел времени операции удаленного хранилища.
func (s *StorageConfig) GetRemoteTimeout() time.Duration {
	return time.Duration(s.RemoteTimeout) * time.Second
}

// IsRemote сообщает, выбрано ли удаленное хранилище.
func (s *StorageConfig) IsRemote() bool {
	return s.Backend == BackendRemote
}
