package clientid

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	suffixLen   = 5
	maxAttempts = 15
)

// Random выдает идентификаторы со случайным буквенно-цифровым суффиксом.
type Random struct {
	registry Registry
	prefix   string

	suffixFn func(int) string
	now      func() time.Time
}

// NewRandom создает случайный аллокатор с заданным префиксом.
func NewRandom(registry Registry, prefix string) *Random {
	return &Random{
		registry: registry,
		prefix:   prefix,
		suffixFn: randomSuffix,
		now:      time.Now,
	}
}

// Next генерирует случайный суффикс и проверяет его на коллизию со всеми
// занятыми идентификаторами. После исчерпания попыток возвращается
// помеченный идентификатор с меткой времени: он остается уникальным
// и заметен при ручной сверке таблицы.
func (a *Random) Next(ctx context.Context) (string, error) {
	const op = "clientid.Random.Next"
	ids, err := a.registry.ListClientIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	taken := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		taken[id] = struct{}{}
	}

	for range maxAttempts {
		id := a.prefix + a.suffixFn(suffixLen)
		if _, ok := taken[id]; !ok {
			return id, nil
		}
	}

	return fmt.Sprintf("%sERR-%d", a.prefix, a.now().Unix()), nil
}

func randomSuffix(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(out)
}
