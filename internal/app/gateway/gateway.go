// Package gateway собирает HTTP-сервис вебхука Discord-интеракций.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/license-gateway/internal/cache"
	"github.com/magabrotheeeer/license-gateway/internal/config"
	"github.com/magabrotheeeer/license-gateway/internal/discord"
	"github.com/magabrotheeeer/license-gateway/internal/lib/background"
	"github.com/magabrotheeeer/license-gateway/internal/lib/clientid"
	"github.com/magabrotheeeer/license-gateway/internal/lib/signature"
	licenseservice "github.com/magabrotheeeer/license-gateway/internal/services/license"
	"github.com/magabrotheeeer/license-gateway/internal/storage/repository"
	"github.com/magabrotheeeer/license-gateway/internal/storage/sheets"
)

// App представляет приложение шлюза интеракций.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	discord *discord.Session
	runner  *background.Runner
}

// New собирает все зависимости шлюза: хранилище записей, кэш, сессию
// Discord, верификатор подписи и сервис лицензий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.CredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to init sheets store: %w", err)
	}
	repo := repository.New(store)

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	session, err := discord.New(cfg.BotToken, cfg.GuildID, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open discord session: %w", err)
	}

	verifier, err := signature.NewVerifier(cfg.PublicKey)
	if err != nil {
		if cerr := session.Close(); cerr != nil {
			logger.Error("failed to close discord session", slog.Any("err", cerr))
		}
		return nil, fmt.Errorf("failed to init signature verifier: %w", err)
	}

	alloc, err := clientid.FromPolicy(cfg.ClientIDPolicy, cfg.ClientIDPrefix, repo)
	if err != nil {
		if cerr := session.Close(); cerr != nil {
			logger.Error("failed to close discord session", slog.Any("err", cerr))
		}
		return nil, fmt.Errorf("failed to init client id allocator: %w", err)
	}

	runner := background.New(logger)
	licenseService := licenseservice.New(repo, alloc, session, session, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, verifier, licenseService, runner)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		discord: session,
		runner:  runner,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста.
// При остановке дожидается фоновых задач выдачи ролей.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.runner.Wait()
		if cerr := a.discord.Close(); cerr != nil {
			a.logger.Error("failed to close discord session", slog.Any("err", cerr))
		}
		return err
	}
}
