// Package sender содержит сборку сервиса доставки напоминаний.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/license-gateway/internal/config"
	"github.com/magabrotheeeer/license-gateway/internal/discord"
	"github.com/magabrotheeeer/license-gateway/internal/lib/rabbitmq"
	senderservice "github.com/magabrotheeeer/license-gateway/internal/services/sender"
)

// App представляет приложение рассыльщика напоминаний.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	discord       *discord.Session
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New создает новый экземпляр приложения рассыльщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := rabbitmq.GetReminderQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if cerr := conn.Close(); cerr != nil {
			logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	session, err := discord.New(cfg.BotToken, cfg.GuildID, logger)
	if err != nil {
		if cerr := ch.Close(); cerr != nil {
			logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := conn.Close(); cerr != nil {
			logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}

	senderService := senderservice.NewSenderService(session, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		discord:       session,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run подписывается на очередь напоминаний и блокируется до отмены
// контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ReminderQueue, a.senderService.SendReminder)
	if err != nil {
		a.logger.Error("failed to start reminder consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	if err := a.discord.Close(); err != nil {
		a.logger.Error("failed to close discord session", slog.Any("err", err))
	}
	return nil
}
