package clientid

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// suffixDigits количество знаков числового суффикса идентификатора.
const suffixDigits = 5

// Sequential выдает идентификаторы с монотонно растущим числовым суффиксом.
type Sequential struct {
	registry Registry
	prefix   string
}

// NewSequential создает последовательный аллокатор с заданным префиксом.
func NewSequential(registry Registry, prefix string) *Sequential {
	return &Sequential{registry: registry, prefix: prefix}
}

// Next читает колонку идентификаторов, находит максимальный числовой
// суффикс и возвращает следующий номер, дополненный нулями до пяти знаков.
// Чужие и нечитаемые значения пропускаются, поэтому на пустом или
// испорченном хранилище выдается первый номер.
func (a *Sequential) Next(ctx context.Context) (string, error) {
	const op = "clientid.Sequential.Next"
	ids, err := a.registry.ListClientIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	maxSeq := 0
	for _, id := range ids {
		if a.prefix != "" && !strings.HasPrefix(id, a.prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, a.prefix))
		if err != nil || n < 0 {
			continue
		}
		if n > maxSeq {
			maxSeq = n
		}
	}

	return fmt.Sprintf("%s%0*d", a.prefix, suffixDigits, maxSeq+1), nil
}
