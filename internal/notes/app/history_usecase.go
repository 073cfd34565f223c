package app

import (
	"context"
	"fmt"

	"notekeep/internal/notes/ports/repositories"
)

// HistoryUseCase представляет собой бизнес-логику истории поиска.
type HistoryUseCase struct {
	historyRepo repositories.HistoryRepository
}

// NewHistoryUseCase создает новый экземпляр HistoryUseCase.
func NewHistoryUseCase(historyRepo repositories.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo}
}

// RecordTerm добавляет поисковый запрос в историю.
func (uc *HistoryUseCase) RecordTerm(ctx context.Context, term string) error {
	if err := uc.historyRepo.Record(ctx, term); err != nil {
		return fmt.Errorf("failed to record search term: %w", err)
	}
	return nil
}

// ListHistory возвращает историю поиска от самого свежего запроса к самому старому.
func (uc *HistoryUseCase) ListHistory(ctx context.Context) ([]string, error) {
	history, err := uc.historyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	return history, nil
}

// RemoveTerm удаляет поисковый запрос из истории.
func (uc *HistoryUseCase) RemoveTerm(ctx context.Context, term string) error {
	if err := uc.historyRepo.Remove(ctx, term); err != nil {
		return fmt.Errorf("failed to remove search term: %w", err)
	}
	return nil
}

// ClearHistory удаляет историю поиска целиком.
func (uc *HistoryUseCase) ClearHistory(ctx context.Context) error {
	if err := uc.historyRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
