// Package sender доставляет напоминания из очереди в личные сообщения
// Discord.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/license-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/license-gateway/internal/metrics"
	"github.com/magabrotheeeer/license-gateway/internal/models"
)

// Notifier отправляет личные сообщения пользователям.
type Notifier interface {
	SendDM(userID, content string) error
}

// SenderService обрабатывает сообщения очереди напоминаний.
type SenderService struct {
	notifier Notifier
	log      *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(notifier Notifier, log *slog.Logger) *SenderService {
	return &SenderService{
		notifier: notifier,
		log:      log,
	}
}

// SendReminder обрабатывает одно сообщение очереди. Неудачная доставка
// (например, закрытые личные сообщения) логируется и ошибкой не
// считается: напоминание привязано к конкретному дню и повторная
// доставка не нужна.
func (s *SenderService) SendReminder(body []byte) error {
	var msg models.ReminderMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		s.log.Error("failed to unmarshal reminder", sl.Err(err))
		return fmt.Errorf("unmarshal reminder: %w", err)
	}

	text := fmt.Sprintf(
		"⏰ Rappel : ton rôle client expire %s (le %s). Pense à renouveler ton accès !",
		phrase(msg.DaysRemaining), msg.ExpiryDate)

	if err := s.notifier.SendDM(msg.HolderID, text); err != nil {
		s.log.Error("failed to send reminder DM",
			slog.String("holder_id", msg.HolderID),
			slog.String("reminder_id", msg.ID),
			sl.Err(err))
		metrics.RemindersFailed.Inc()
		return nil
	}

	metrics.RemindersSent.Inc()
	s.log.Info("reminder sent",
		slog.String("holder_id", msg.HolderID),
		slog.String("reminder_id", msg.ID))
	return nil
}

// phrase французская формулировка срока для текста напоминания.
func phrase(days int) string {
	switch days {
	case 30:
		return "dans 1 mois"
	case 14:
		return "dans 2 semaines"
	case 1:
		return "demain"
	default:
		return fmt.Sprintf("dans %d jours", days)
	}
}
