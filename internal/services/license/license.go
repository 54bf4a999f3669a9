// Package license реализует жизненный цикл лицензий: создание записи
// по подтвержденной оплате и продление существующей записи.
package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/license-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/license-gateway/internal/metrics"
	"github.com/magabrotheeeer/license-gateway/internal/models"
)

// LicensePeriodDays длительность оплаченного периода.
const LicensePeriodDays = 365

const cacheTTL = 24 * time.Hour

// ErrMissingInput возвращается при пустых обязательных аргументах команды.
var ErrMissingInput = errors.New("required input is empty")

// LicenseRepository определяет методы хранилища, нужные движку лицензий.
type LicenseRepository interface {
	// Append добавляет новую запись в конец листа и возвращает номер строки.
	Append(ctx context.Context, rec models.LicenseRecord) (int, error)
	// FindByClientID возвращает запись и номер ее строки.
	FindByClientID(ctx context.Context, clientID string) (*models.LicenseRecord, int, error)
	// GetRow возвращает запись по номеру строки.
	GetRow(ctx context.Context, rowIndex int) (*models.LicenseRecord, error)
	// UpdateRow перезаписывает строку по номеру.
	UpdateRow(ctx context.Context, rowIndex int, rec models.LicenseRecord) error
}

// Allocator выдает следующий свободный идентификатор клиента.
type Allocator interface {
	Next(ctx context.Context) (string, error)
}

// RoleSynchronizer приводит роли участника в соответствие статусу лицензии.
type RoleSynchronizer interface {
	PromoteToClient(holderID string) error
}

// Notifier отправляет личные сообщения пользователям.
type Notifier interface {
	SendDM(userID, content string) error
}

// Cache описывает методы для кэширования записей лицензий.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// cachedLicense запись вместе с номером ее строки листа. Номер строки
// позволяет продлению читать одну строку вместо полного обхода листа.
type cachedLicense struct {
	Record   models.LicenseRecord `json:"record"`
	RowIndex int                  `json:"row_index"`
}

// LicenseService реализует бизнес-логику лицензий.
type LicenseService struct {
	repo     LicenseRepository
	alloc    Allocator
	roles    RoleSynchronizer
	notifier Notifier
	cache    Cache
	log      *slog.Logger

	// allocMu сериализует выдачу идентификатора и добавление строки:
	// таблица не дает транзакций, поэтому внутри процесса гонку
	// убирает единственный писатель.
	allocMu sync.Mutex
	now     func() time.Time
}

// New создает новый экземпляр LicenseService.
func New(repo LicenseRepository, alloc Allocator, roles RoleSynchronizer, notifier Notifier, cache Cache, log *slog.Logger) *LicenseService {
	return &LicenseService{
		repo:     repo,
		alloc:    alloc,
		roles:    roles,
		notifier: notifier,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

// Create регистрирует новую лицензию: выдает идентификатор, считает
// годовое окно от сегодняшнего дня и добавляет строку в таблицу.
// Выдача роли и подтверждение в личные сообщения выполняются отдельно
// через GrantAccess — запись к этому моменту уже сохранена.
func (s *LicenseService) Create(ctx context.Context, holderID, proof string) (*models.LicenseRecord, error) {
	const op = "services.license.Create"
	if holderID == "" || proof == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingInput)
	}

	s.allocMu.Lock()
	clientID, err := s.alloc.Next(ctx)
	if err != nil {
		s.allocMu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := s.now()
	rec := models.LicenseRecord{
		HolderID:     holderID,
		Proof:        proof,
		ClientID:     clientID,
		StartDate:    start,
		ExpiryDate:   start.AddDate(0, 0, LicensePeriodDays),
		CreatedDate:  start,
		RenewalCount: 0,
	}

	rowIndex, err := s.repo.Append(ctx, rec)
	if err != nil {
		s.allocMu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.allocMu.Unlock()

	s.log.Info("created new license",
		slog.String("client_id", clientID), slog.String("holder_id", holderID))
	metrics.LicensesCreated.Inc()

	cacheKey := "license:" + clientID
	if err := s.cache.Set(ctx, cacheKey, cachedLicense{Record: rec, RowIndex: rowIndex}, cacheTTL); err != nil {
		s.log.Warn("failed to cache license", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return &rec, nil
}

// lookup ищет запись по идентификатору, начиная с кэша. Закэшированный
// номер строки сверяется с листом: при несовпадении идентификатора
// запись в кэше сбрасывается и поиск идет полным обходом.
func (s *LicenseService) lookup(ctx context.Context, clientID string) (*models.LicenseRecord, int, error) {
	cacheKey := "license:" + clientID

	var cached cachedLicense
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read license cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached.RowIndex >= 1 {
		rec, err := s.repo.GetRow(ctx, cached.RowIndex)
		if err == nil && rec.ClientID == clientID {
			return rec, cached.RowIndex, nil
		}
		if ierr := s.cache.Invalidate(ctx, cacheKey); ierr != nil {
			s.log.Warn("failed to invalidate license cache", slog.String("key", cacheKey), slog.Any("err", ierr))
		}
	}

	return s.repo.FindByClientID(ctx, clientID)
}

// Renew продлевает лицензию. Продление до истечения отсчитывается от
// текущей даты окончания — оплаченное время не сгорает; после
// истечения новый период начинается с сегодняшнего дня. Строка
// обновляется на месте, CreatedDate не меняется.
func (s *LicenseService) Renew(ctx context.Context, clientID, newProof string) (*models.LicenseRecord, error) {
	const op = "services.license.Renew"
	if clientID == "" || newProof == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingInput)
	}

	rec, rowIndex, err := s.lookup(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	today := s.now()
	start := today
	if rec.ExpiryDate.After(today) {
		start = rec.ExpiryDate
	}

	updated := *rec
	updated.Proof = newProof
	updated.StartDate = start
	updated.ExpiryDate = start.AddDate(0, 0, LicensePeriodDays)
	updated.RenewalCount = rec.RenewalCount + 1

	if err := s.repo.UpdateRow(ctx, rowIndex, updated); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("renewed license",
		slog.String("client_id", clientID), slog.Int("renewal_count", updated.RenewalCount))
	metrics.LicensesRenewed.Inc()

	cacheKey := "license:" + clientID
	if err := s.cache.Set(ctx, cacheKey, cachedLicense{Record: updated, RowIndex: rowIndex}, cacheTTL); err != nil {
		s.log.Warn("failed to cache license", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return &updated, nil
}

// GrantAccess выдает владельцу роль client и отправляет подтверждение
// в личные сообщения. Ошибки здесь логируются и не влияют на результат
// команды: запись уже сохранена в таблице.
func (s *LicenseService) GrantAccess(rec models.LicenseRecord) {
	if err := s.roles.PromoteToClient(rec.HolderID); err != nil {
		s.log.Error("failed to sync roles",
			slog.String("holder_id", rec.HolderID), sl.Err(err))
	}

	msg := fmt.Sprintf(
		"🎉 Paiement validé, tu as reçu le rôle client pour 1 an (jusqu’au %s) ! Ton ID client est %s",
		rec.ExpiryDate.Format(models.DateLayout), rec.ClientID)
	if err := s.notifier.SendDM(rec.HolderID, msg); err != nil {
		s.log.Error("failed to send confirmation DM",
			slog.String("holder_id", rec.HolderID), sl.Err(err))
	}
}
