// Package noteid генерирует уникальные идентификаторы заметок для локального
// хранилища, где нет сервера, назначающего идентификаторы.
package noteid

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// suffixBytes - длина случайного суффикса в байтах.
const suffixBytes = 4

// New возвращает новый идентификатор заметки: миллисекундная отметка времени
// в base36 плюс короткий случайный суффикс. Отметка времени делает идентификатор
// пригодным как запасной ключ сортировки по давности создания, суффикс исключает
// коллизии при быстрых последовательных вызовах в пределах одной миллисекунды.
func New() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, suffixBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибку;
		// наносекундный остаток оставлен как крайний случай.
		return ts + "-" + strconv.FormatInt(time.Now().UnixNano()%1_000_000, 36)
	}
	return ts + "-" + hex.EncodeToString(buf)
}
