// Package background запускает отложенные задачи вне цикла запрос-ответ.
// Шлюз обязан ответить Discord в пределах дедлайна диспетчера, поэтому
// выдача ролей и личные сообщения выполняются уже после ответа.
package background

import (
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/license-gateway/internal/lib/sl"
)

// Runner выполняет задачи в отдельных горутинах и дожидается их при
// остановке. Ошибки и паники задач логируются и никуда не поднимаются.
type Runner struct {
	log *slog.Logger
	wg  sync.WaitGroup
}

// New создает Runner с переданным логгером.
func New(log *slog.Logger) *Runner {
	return &Runner{log: log}
}

// Go запускает задачу под именем name.
func (r *Runner) Go(name string, task func() error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("background task panicked",
					slog.String("task", name), slog.Any("panic", rec))
			}
		}()
		if err := task(); err != nil {
			r.log.Error("background task failed",
				slog.String("task", name), sl.Err(err))
		}
	}()
}

// Wait блокируется до завершения всех запущенных задач.
func (r *Runner) Wait() {
	r.wg.Wait()
}
