package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/metrics"
)

// Resolver builds the final booking request from an intent.
type Resolver interface {
	Resolve(ctx context.Context, in entity.BookingIntent) entity.BookingRequest
}

// Processor runs a submitted message through the whole flow.
type Processor interface {
	Process(ctx context.Context, sub Submission) (*entity.BookingLog, error)
}

// Submission is one message entering the system from a front end.
type Submission struct {
	Source     string
	SourceRef  string
	Message    string
	ReceivedAt time.Time
}

// RequestProcessor parses, validates, resolves and records submissions
type RequestProcessor struct {
	parser   *intent.Parser
	resolver Resolver
	logs     repository.BookingLogRepository
	metrics  *metrics.Metrics
	logger   logger.Logger
	now      func() time.Time
}

// NewRequestProcessor creates a new request processor. logs may be nil, in
// which case nothing is recorded.
func NewRequestProcessor(
	parser *intent.Parser,
	resolver Resolver,
	logs repository.BookingLogRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *RequestProcessor {
	return &RequestProcessor{
		parser:   parser,
		resolver: resolver,
		logs:     logs,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Process handles one submission. Under the strict policy an incomplete
// intent is recorded as rejected and a *intent.MissingFieldsError is returned
// alongside the log entry; resolution problems never produce an error.
func (p *RequestProcessor) Process(ctx context.Context, sub Submission) (*entity.BookingLog, error) {
	receivedAt := sub.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = p.now()
	}

	rec := p.parser.Parse(sub.Message)
	p.metrics.MessagesParsed.WithLabelValues(sub.Source).Inc()

	missing := rec.MissingFields()
	for _, field := range missing {
		p.metrics.FieldsMissing.WithLabelValues(field).Inc()
	}

	entry := &entity.BookingLog{
		ID:            uuid.NewString(),
		Source:        sub.Source,
		SourceRef:     sub.SourceRef,
		Message:       sub.Message,
		Policy:        string(p.parser.Policy()),
		Intent:        rec,
		MissingFields: missing,
		ReceivedAt:    receivedAt,
	}

	validationErr := intent.Validate(rec, p.parser.Policy())
	if validationErr != nil {
		entry.Status = entity.StatusRejected
		p.metrics.RequestsRejected.Inc()
		p.logger.Info("Request rejected",
			"id", entry.ID,
			"source", sub.Source,
			"missing", missing)
	} else {
		req := p.resolver.Resolve(ctx, rec)
		entry.Request = &req
		entry.Status = entity.StatusCompleted
		p.logger.Info("Request completed",
			"id", entry.ID,
			"source", sub.Source)
	}
	entry.ProcessedAt = p.now()

	if p.logs != nil {
		// The result is still returned when recording fails.
		if err := p.logs.Save(ctx, entry); err != nil {
			p.logger.Error("Failed to save booking log",
				"id", entry.ID,
				"error", err)
		}
	}

	return entry, validationErr
}
