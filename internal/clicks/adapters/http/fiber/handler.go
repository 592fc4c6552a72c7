package fiber

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"click-stats-service/internal/clicks/core/domain"
	"click-stats-service/internal/clicks/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

type SubmitClickUseCase interface {
	Execute(ctx context.Context, in usecase.SubmitClickInput) (domain.ClickEvent, error)
}

// ClickRecorder is notified of every stored click.
type ClickRecorder interface {
	ClickIngested(category string)
}

type nopRecorder struct{}

func (nopRecorder) ClickIngested(string) {}

type ClickHandler struct {
	submitUC          SubmitClickUseCase
	log               *zap.Logger
	recorder          ClickRecorder
	trustForwardedFor bool
}

type Option func(*ClickHandler)

func WithRecorder(r ClickRecorder) Option {
	return func(h *ClickHandler) { h.recorder = r }
}

// WithTrustForwardedFor makes the first X-Forwarded-For hop the recorded
// source address. The header is client-controlled; the value is informational.
func WithTrustForwardedFor(trust bool) Option {
	return func(h *ClickHandler) { h.trustForwardedFor = trust }
}

func NewClickHandler(submitUC SubmitClickUseCase, log *zap.Logger, opts ...Option) *ClickHandler {
	h := &ClickHandler{submitUC: submitUC, log: log, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CreateClick godoc
// @Summary Record a click
// @Description Stores a single click for category A, B, C or D (case-insensitive)
// @Tags Clicks
// @Accept json
// @Produce json
// @Param request body CreateClickRequest true "Click payload"
// @Success 201 {object} CreateClickResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/click [post]
func (h *ClickHandler) CreateClick(c *fiber.Ctx) error {
	var req CreateClickRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	category := req.Category
	if category == "" {
		category = req.Box
	}

	input := usecase.SubmitClickInput{
		Category:      category,
		SourceAddress: h.sourceAddress(c),
		AgentString:   utils.CopyString(c.Get(fiber.HeaderUserAgent)),
	}

	ev, err := h.submitUC.Execute(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.log.Warn("Rejected click",
				zap.String("category", category),
				zap.Error(err))
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
			})
		default:
			h.log.Error("Failed to store click",
				zap.String("category", category),
				zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	h.recorder.ClickIngested(string(ev.Category))

	return c.Status(http.StatusCreated).JSON(CreateClickResponse{
		Status:     "saved",
		ID:         ev.ID,
		Category:   string(ev.Category),
		OccurredAt: ev.OccurredAt,
	})
}

func (h *ClickHandler) sourceAddress(c *fiber.Ctx) string {
	if h.trustForwardedFor {
		if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if first = strings.TrimSpace(first); first != "" {
				return utils.CopyString(first)
			}
		}
	}
	return utils.CopyString(c.IP())
}
