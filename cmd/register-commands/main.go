// Команда register-commands регистрирует slash-команды validate и renew
// для гильдии. Запускается один раз при развертывании или после
// изменения набора опций.
package main

import (
	"log/slog"
	"os"

	"github.com/magabrotheeeer/license-gateway/internal/config"
	"github.com/magabrotheeeer/license-gateway/internal/discord"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	session, err := discord.New(cfg.BotToken, cfg.GuildID, logger)
	if err != nil {
		logger.Error("failed to open discord session", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("failed to close discord session", slog.Any("err", err))
		}
	}()

	if err := session.RegisterCommands(cfg.ApplicationID); err != nil {
		logger.Error("failed to register commands", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("slash commands registered", slog.String("guild_id", cfg.GuildID))
}
