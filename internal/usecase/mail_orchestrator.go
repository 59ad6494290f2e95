package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/pkg/logger"
)

// MailOrchestrator dispatches inbound mail to the registered handlers
type MailOrchestrator struct {
	logs   repository.BookingLogRepository
	router MailRouter
	logger logger.Logger
}

// NewMailOrchestrator creates a new mail orchestrator
func NewMailOrchestrator(
	logs repository.BookingLogRepository,
	router MailRouter,
	logger logger.Logger,
) *MailOrchestrator {
	return &MailOrchestrator{
		logs:   logs,
		router: router,
		logger: logger,
	}
}

// ProcessMail processes a single mail immediately after fetching
func (o *MailOrchestrator) ProcessMail(ctx context.Context, mail *entity.MailMessage) error {
	handler := o.router.GetHandler(mail.Subject)
	if handler == nil {
		o.logger.Debug("No handler found for mail",
			"subject", mail.Subject,
			"messageID", mail.MessageID)

		// Record as skipped so the intake does not fetch it again
		now := time.Now()
		err := o.logs.Save(ctx, &entity.BookingLog{
			ID:          uuid.NewString(),
			Source:      entity.SourceMail,
			SourceRef:   mail.MessageID,
			Message:     mail.Subject,
			Status:      entity.StatusSkipped,
			ReceivedAt:  mail.ReceivedAt,
			ProcessedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to record skipped mail: %w", err)
		}
		return nil
	}

	handlerName := fmt.Sprintf("%v", handler)
	o.logger.Info("Processing mail with handler",
		"messageID", mail.MessageID,
		"handler", handlerName,
		"subject", mail.Subject)

	if err := handler.Handle(ctx, mail); err != nil {
		// Log but don't return error - let other mail continue
		o.logger.Error("Handler failed to process mail",
			"messageID", mail.MessageID,
			"handler", handlerName,
			"error", err)
		return nil
	}

	o.logger.Info("Mail processed successfully",
		"messageID", mail.MessageID,
		"handler", handlerName)

	return nil
}
