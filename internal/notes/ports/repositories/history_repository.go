package repositories

import "context"

// HistoryLimit - максимальное количество хранимых поисковых запросов.
const HistoryLimit = 10

// HistoryRepository определяет контракт хранилища истории поиска.
//
// История упорядочена от самого свежего запроса к самому старому,
// дедуплицирована без учета регистра и ограничена HistoryLimit записями.
// Record и Remove сравнивают запросы без учета регистра; при повторной
// записи побеждает последнее написание. List отказоустойчив: ошибка
// чтения дает пустой список.
type HistoryRepository interface {
	Record(ctx context.Context, term string) error
	List(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, term string) error
	Clear(ctx context.Context) error
}
