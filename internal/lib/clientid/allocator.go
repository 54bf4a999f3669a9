// Package clientid реализует выдачу уникальных идентификаторов клиентов.
//
// Поддерживаются две политики: последовательный счетчик с дополнением
// нулями и случайный буквенно-цифровой суффикс с проверкой коллизий.
// Политика выбирается конфигом один раз на процесс.
package clientid

import (
	"context"
	"fmt"
)

// Registry отдает список уже занятых идентификаторов из хранилища.
type Registry interface {
	ListClientIDs(ctx context.Context) ([]string, error)
}

// Allocator выдает следующий свободный идентификатор клиента.
type Allocator interface {
	Next(ctx context.Context) (string, error)
}

// FromPolicy возвращает аллокатор по имени политики из конфига.
func FromPolicy(policy, prefix string, registry Registry) (Allocator, error) {
	switch policy {
	case "", "sequential":
		return NewSequential(registry, prefix), nil
	case "random":
		return NewRandom(registry, prefix), nil
	default:
		return nil, fmt.Errorf("unknown client id policy: %q", policy)
	}
}
