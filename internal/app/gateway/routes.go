// Package gateway предоставляет маршруты для сервиса интеракций.
package gateway

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/license-gateway/internal/http/handlers/interactions"
	"github.com/magabrotheeeer/license-gateway/internal/http/middlewarectx"
	"github.com/magabrotheeeer/license-gateway/internal/lib/signature"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, verifier *signature.Verifier, service interactions.Service, runner interactions.Runner) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	// Вебхук интеракций (подпись проверяется в самом обработчике)
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/interactions", interactions.New(logger, verifier, service, runner).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
}
