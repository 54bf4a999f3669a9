// Package scheduler содержит сборку сервиса ежедневного обхода лицензий.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/license-gateway/internal/config"
	"github.com/magabrotheeeer/license-gateway/internal/lib/rabbitmq"
	schedulerservice "github.com/magabrotheeeer/license-gateway/internal/services/scheduler"
	"github.com/magabrotheeeer/license-gateway/internal/storage/repository"
	"github.com/magabrotheeeer/license-gateway/internal/storage/sheets"
)

// App представляет приложение планировщика напоминаний.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
	sweepHour        int
	sweepMinute      int
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	store, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.CredentialsJSON)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to init sheets store: %w", err)
	}
	repo := repository.New(store)

	schedulerService := schedulerservice.NewSchedulerService(repo, rabbitmq.NewPublisher(ch), logger)

	return &App{
		schedulerService: schedulerService,
		conn:             conn,
		ch:               ch,
		logger:           logger,
		sweepHour:        cfg.SweepHour,
		sweepMinute:      cfg.SweepMinute,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", slog.Any("err", err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", slog.Any("err", err))
		}
	}
}

// Run запускает ежедневный обход и блокируется до отмены контекста.
// Канал и соединение закрываются только после возврата RunDaily, чтобы
// идущий обход не публиковал в закрытый канал.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.schedulerService.RunDaily(ctx, a.sweepHour, a.sweepMinute)
	}()

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")
	<-done
	closeResources(a.ch, a.conn, a.logger)
	return nil
}
