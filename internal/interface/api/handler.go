// Package api exposes the booking pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/internal/usecase"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck = func(ctx context.Context) error

// MessageRequest is the body of the parse and request endpoints.
type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ParseResponse is what POST /v1/parse returns.
type ParseResponse struct {
	Intent        entity.BookingIntent `json:"intent"`
	MissingFields []string             `json:"missingFields"`
	Prompts       []string             `json:"prompts"`
	Valid         bool                 `json:"valid"`
}

// RejectionResponse carries the rejected entry and what to ask the user.
type RejectionResponse struct {
	Request *entity.BookingLog `json:"request"`
	Prompts []string           `json:"prompts"`
}

// Handler serves the booking endpoints.
type Handler struct {
	parser    *intent.Parser
	resolver  usecase.Resolver
	processor usecase.Processor
	logs      repository.BookingLogRepository
	checks    map[string]HealthCheck
	logger    logger.Logger
}

// NewHandler creates a new Handler. logs may be nil when no request log is
// configured; the lookup endpoints then answer 503.
func NewHandler(
	parser *intent.Parser,
	resolver usecase.Resolver,
	processor usecase.Processor,
	logs repository.BookingLogRepository,
	checks map[string]HealthCheck,
	logger logger.Logger,
) *Handler {
	return &Handler{
		parser:    parser,
		resolver:  resolver,
		processor: processor,
		logs:      logs,
		checks:    checks,
		logger:    logger,
	}
}

// Parse handles POST /v1/parse. It only extracts, nothing is resolved or
// stored.
func (h *Handler) Parse(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "message is required")
		return
	}

	rec := h.parser.Parse(req.Message)
	missing := rec.MissingFields()
	if missing == nil {
		missing = []string{}
	}
	RespondOK(c, ParseResponse{
		Intent:        rec,
		MissingFields: missing,
		Prompts:       intent.ClarificationPrompts(missing),
		Valid:         intent.Validate(rec, h.parser.Policy()) == nil,
	})
}

// Resolve handles POST /v1/resolve for an already extracted intent.
func (h *Handler) Resolve(c *gin.Context) {
	var rec entity.BookingIntent
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid intent body")
		return
	}

	RespondOK(c, h.resolver.Resolve(c.Request.Context(), rec))
}

// CreateRequest handles POST /v1/requests: the whole flow for one message.
func (h *Handler) CreateRequest(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "message is required")
		return
	}

	entry, err := h.processor.Process(c.Request.Context(), usecase.Submission{
		Source:     entity.SourceAPI,
		SourceRef:  c.GetString(requestIDKey),
		Message:    req.Message,
		ReceivedAt: time.Now(),
	})

	var missing *intent.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		RespondErrorWithData(c, http.StatusUnprocessableEntity, "MISSING_FIELDS", missing.Error(), RejectionResponse{
			Request: entry,
			Prompts: intent.ClarificationPrompts(missing.Fields),
		})
	case err != nil:
		h.handleError(c, err)
	default:
		RespondCreated(c, entry)
	}
}

// GetRequest handles GET /v1/requests/:id
func (h *Handler) GetRequest(c *gin.Context) {
	if h.logs == nil {
		RespondError(c, http.StatusServiceUnavailable, "LOG_UNAVAILABLE", "request log is not configured")
		return
	}

	entry, err := h.logs.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// ListRequests handles GET /v1/requests?limit=N, newest first.
func (h *Handler) ListRequests(c *gin.Context) {
	if h.logs == nil {
		RespondError(c, http.StatusServiceUnavailable, "LOG_UNAVAILABLE", "request log is not configured")
		return
	}

	limit := defaultListLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	entries, err := h.logs.FindRecent(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if entries == nil {
		entries = []*entity.BookingLog{}
	}
	RespondOK(c, entries)
}

// Health handles GET /health, running every registered check.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := gin.H{}
	var failed []string
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", "check", name, "error", err)
			results[name] = "unavailable"
			failed = append(failed, name)
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if len(failed) > 0 {
		overall = "degraded: " + strings.Join(failed, ",")
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(requestIDKey)
		h.logger.Error("Internal error", "requestID", requestID, "error", err)
	}
	RespondError(c, status, code, msg)
}
