// Package interactions реализует HTTP-обработчик вебхука Discord-интеракций.
//
// Handler проверяет Ed25519-подпись запроса до разбора тела, отвечает
// Pong на проверочный пинг и разбирает slash-команды validate и renew.
// Любой исход команды завершается статусом 200 и ровно одним конвертом
// ответа; ошибкам соответствует текст без технических деталей.
package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/license-gateway/internal/http/response"
	"github.com/magabrotheeeer/license-gateway/internal/lib/signature"
	"github.com/magabrotheeeer/license-gateway/internal/lib/sl"
	"github.com/magabrotheeeer/license-gateway/internal/metrics"
	"github.com/magabrotheeeer/license-gateway/internal/models"
	"github.com/magabrotheeeer/license-gateway/internal/storage/repository"
)

// Имена slash-команд.
const (
	CommandValidate = "validate"
	CommandRenew    = "renew"
)

// Service описывает интерфейс бизнес-логики работы с лицензиями.
type Service interface {
	Create(ctx context.Context, holderID, proof string) (*models.LicenseRecord, error)
	Renew(ctx context.Context, clientID, newProof string) (*models.LicenseRecord, error)
	GrantAccess(rec models.LicenseRecord)
}

// Runner запускает фоновые задачи вне жизненного цикла запроса.
type Runner interface {
	Go(name string, task func() error)
}

// Handler управляет HTTP-запросами вебхука интеракций.
type Handler struct {
	log      *slog.Logger
	verifier *signature.Verifier
	service  Service
	runner   Runner
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером, верификатором
// подписи, сервисом и раннером фоновых задач.
func New(log *slog.Logger, verifier *signature.Verifier, service Service, runner Runner) *Handler {
	return &Handler{
		log:      log,
		verifier: verifier,
		service:  service,
		runner:   runner,
		validate: validator.New(),
	}
}

type interaction struct {
	Type int             `json:"type"`
	Data interactionData `json:"data"`
}

type interactionData struct {
	Name    string              `json:"name"`
	Options []interactionOption `json:"options"`
}

type interactionOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type validateOptions struct {
	User  string `validate:"required"`
	Proof string `validate:"required"`
}

type renewOptions struct {
	ClientID string `validate:"required"`
	Proof    string `validate:"required"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.interactions"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer func() { _ = r.Body.Close() }()

	// Подпись проверяется до любого разбора тела: Discord при
	// регистрации эндпоинта намеренно шлет запросы с неверной подписью
	// и ждет 401.
	timestamp := r.Header.Get("X-Signature-Timestamp")
	sig := r.Header.Get("X-Signature-Ed25519")
	if !h.verifier.Verify(timestamp, body, sig) {
		log.Warn("invalid request signature")
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var in interaction
	if err := json.Unmarshal(body, &in); err != nil {
		log.Error("failed to unmarshal interaction", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if in.Type == response.InteractionPing {
		log.Info("ping acknowledged")
		render.JSON(w, r, response.Pong())
		return
	}

	switch in.Data.Name {
	case CommandValidate:
		render.JSON(w, r, h.handleValidate(r.Context(), log, in.Data))
	case CommandRenew:
		render.JSON(w, r, h.handleRenew(r.Context(), log, in.Data))
	default:
		log.Warn("unknown command", slog.String("command", in.Data.Name))
		metrics.CommandsTotal.WithLabelValues(in.Data.Name, "unknown").Inc()
		render.JSON(w, r, response.GenericError())
	}
}

func (h *Handler) handleValidate(ctx context.Context, log *slog.Logger, data interactionData) response.InteractionResponse {
	opts := validateOptions{
		User:  optionValue(data.Options, "user"),
		Proof: optionValue(data.Options, "proof"),
	}
	if err := h.validate.Struct(opts); err != nil {
		log.Error("validation failed", sl.Err(err))
		metrics.CommandsTotal.WithLabelValues(CommandValidate, "invalid").Inc()
		return response.ValidationError(err.(validator.ValidationErrors))
	}

	rec, err := h.service.Create(ctx, opts.User, opts.Proof)
	if err != nil {
		log.Error("failed to create license", sl.Err(err))
		metrics.CommandsTotal.WithLabelValues(CommandValidate, "error").Inc()
		return response.GenericError()
	}

	// Выдача роли и личное сообщение идут в фоне: ответ вебхука не
	// должен ждать Discord API.
	created := *rec
	h.runner.Go("grant-access", func() error {
		h.service.GrantAccess(created)
		return nil
	})

	log.Info("license created",
		slog.String("client_id", rec.ClientID),
		slog.String("holder_id", rec.HolderID))
	metrics.CommandsTotal.WithLabelValues(CommandValidate, "ok").Inc()
	return response.ValidationSuccess(*rec)
}

func (h *Handler) handleRenew(ctx context.Context, log *slog.Logger, data interactionData) response.InteractionResponse {
	opts := renewOptions{
		ClientID: optionValue(data.Options, "clientid"),
		Proof:    optionValue(data.Options, "proof"),
	}
	if err := h.validate.Struct(opts); err != nil {
		log.Error("validation failed", sl.Err(err))
		metrics.CommandsTotal.WithLabelValues(CommandRenew, "invalid").Inc()
		return response.ValidationError(err.(validator.ValidationErrors))
	}

	rec, err := h.service.Renew(ctx, opts.ClientID, opts.Proof)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			log.Warn("client not found", slog.String("client_id", opts.ClientID))
			metrics.CommandsTotal.WithLabelValues(CommandRenew, "not_found").Inc()
			return response.UnknownClient(opts.ClientID)
		}
		log.Error("failed to renew license", sl.Err(err))
		metrics.CommandsTotal.WithLabelValues(CommandRenew, "error").Inc()
		return response.GenericError()
	}

	log.Info("license renewed",
		slog.String("client_id", rec.ClientID),
		slog.Int("renewal_count", rec.RenewalCount))
	metrics.CommandsTotal.WithLabelValues(CommandRenew, "ok").Inc()
	return response.RenewalSuccess(*rec)
}

func optionValue(opts []interactionOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.Value
		}
	}
	return ""
}
