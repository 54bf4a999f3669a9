// Package scheduler реализует ежедневный обход записей лицензий
// и постановку напоминаний об истечении в очередь.
package scheduler

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/license-gateway/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/license-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/license-gateway/internal/metrics"
	"github.com/magabrotheeeer/license-gateway/internal/models"
)

// ReminderThresholds дни до истечения, в которые отправляется
// напоминание. Совпадение проверяется точно: пропущенный из-за простоя
// день задним числом не досылается.
var ReminderThresholds = []int{30, 14, 1}

// LicenseRepository определяет методы хранилища, нужные планировщику.
type LicenseRepository interface {
	ListAll(ctx context.Context) ([]models.LicenseRecord, error)
}

// Publisher публикует сообщения в очередь напоминаний.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SchedulerService обходит записи лицензий и публикует напоминания.
type SchedulerService struct {
	repo LicenseRepository
	pub  Publisher
	log  *slog.Logger
	now  func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo LicenseRepository, pub Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		pub:  pub,
		log:  log,
		now:  time.Now,
	}
}

// RunDaily запускает обход каждый день в заданное время суток
// до отмены контекста. Начатый обход всегда доводится до конца:
// возврат из RunDaily означает, что публикаций больше не будет.
func (s *SchedulerService) RunDaily(ctx context.Context, hour, minute int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		next := s.nextRunAt(hour, minute)
		s.log.Info("next reminder sweep scheduled", slog.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunSweep(ctx)
		}
	}
}

// RunSweep один проход по всем записям. Ошибки отдельных записей не
// прерывают обход.
func (s *SchedulerService) RunSweep(ctx context.Context) {
	s.log.Info("starting reminder sweep")
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error("failed to list licenses", sl.Err(err))
		return
	}
	if len(records) == 0 {
		s.log.Info("no license records found")
		return
	}

	published := 0
	for _, rec := range records {
		days, ok := s.dueIn(rec)
		if !ok {
			continue
		}
		msg := models.ReminderMessage{
			ID:            uuid.NewString(),
			HolderID:      rec.HolderID,
			ClientID:      rec.ClientID,
			ExpiryDate:    rec.ExpiryDate.Format(models.DateLayout),
			DaysRemaining: days,
		}
		if err := s.pub.Publish(rabbitmq.Exchange, rabbitmq.ReminderRoutingKey, msg); err != nil {
			s.log.Error("failed to publish reminder",
				slog.String("holder_id", rec.HolderID), sl.Err(err))
			continue
		}
		metrics.RemindersPublished.Inc()
		published++
	}
	s.log.Info("reminder sweep finished", slog.Int("published", published))
}

// dueIn возвращает количество дней до истечения, если оно совпадает
// с одним из порогов. Записи без владельца или без читаемой даты
// окончания пропускаются молча.
func (s *SchedulerService) dueIn(rec models.LicenseRecord) (int, bool) {
	if rec.HolderID == "" || rec.ExpiryDate.IsZero() {
		return 0, false
	}
	diff := int(math.Ceil(rec.ExpiryDate.Sub(s.now()).Hours() / 24))
	for _, threshold := range ReminderThresholds {
		if diff == threshold {
			return diff, true
		}
	}
	return 0, false
}

func (s *SchedulerService) nextRunAt(hour, minute int) time.Time {
	now := s.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
