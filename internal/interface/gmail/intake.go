// Package gmail polls a Gmail mailbox and feeds new booking mails into the
// request pipeline.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/domain/repository"
	"flight-intent-service/pkg/logger"
)

const (
	userID = "me"

	// initialLookback bounds the first fetch when nothing was processed yet.
	initialLookback = 7 * 24 * time.Hour
)

// MailProcessor handles one converted mail.
type MailProcessor interface {
	ProcessMail(ctx context.Context, mail *entity.MailMessage) error
}

// Intake handles Gmail API polling with immediate processing
type Intake struct {
	gmailService *gmail.Service
	logs         repository.BookingLogRepository
	processor    MailProcessor
	logger       logger.Logger
	pollInterval time.Duration
	now          func() time.Time
}

// NewIntake creates a new Gmail intake. opts usually carry the token source
// from the oauth package.
func NewIntake(
	ctx context.Context,
	logs repository.BookingLogRepository,
	processor MailProcessor,
	logger logger.Logger,
	pollInterval time.Duration,
	opts ...option.ClientOption,
) (*Intake, error) {
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Intake{
		gmailService: service,
		logs:         logs,
		processor:    processor,
		logger:       logger,
		pollInterval: pollInterval,
		now:          time.Now,
	}, nil
}

// StartPolling polls Gmail until ctx is cancelled
func (s *Intake) StartPolling(ctx context.Context) {
	if _, err := s.FetchAndProcess(ctx); err != nil {
		s.logger.Error("Initial Gmail fetch failed", "error", err)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Gmail polling stopped")
			return
		case <-ticker.C:
			s.logger.Debug("Polling Gmail for new mail")
			if _, err := s.FetchAndProcess(ctx); err != nil {
				s.logger.Error("Error polling Gmail", "error", err)
			}
		}
	}
}

// FetchAndProcess lists mail received since the latest processed one, skips
// what is already in the request log and processes the rest. It returns how
// many mails were handed to the processor.
func (s *Intake) FetchAndProcess(ctx context.Context) (int, error) {
	fetchFrom := s.now().Add(-initialLookback)
	latest, err := s.logs.GetLatest(ctx, entity.SourceMail)
	if err != nil {
		s.logger.Error("Failed to get latest processed mail", "error", err)
	} else if latest != nil {
		fetchFrom = latest.ReceivedAt
	}

	query := fmt.Sprintf("after:%d", fetchFrom.Unix())
	resp, err := s.gmailService.Users.Messages.List(userID).Q(query).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to list messages: %w", err)
	}

	if len(resp.Messages) == 0 {
		s.logger.Debug("No new messages found")
		return 0, nil
	}

	ids := make([]string, len(resp.Messages))
	for i, msg := range resp.Messages {
		ids[i] = msg.Id
	}

	seen, err := s.logs.FindBySourceRefs(ctx, entity.SourceMail, ids)
	if err != nil {
		s.logger.Error("Failed to check processed mail", "error", err)
		seen = map[string]*entity.BookingLog{}
	}

	processed := 0
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		full, err := s.gmailService.Users.Messages.Get(userID, id).Context(ctx).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "msgId", id, "error", err)
			continue
		}

		mail := convertToMail(full)
		if err := s.processor.ProcessMail(ctx, mail); err != nil {
			s.logger.Error("Failed to process mail", "msgId", id, "error", err)
			continue
		}
		processed++
	}

	s.logger.Info("Mail fetch completed",
		"totalMessages", len(resp.Messages),
		"alreadySeen", len(seen),
		"processed", processed)

	return processed, nil
}

// convertToMail flattens a Gmail message into the fields the pipeline uses
func convertToMail(msg *gmail.Message) *entity.MailMessage {
	mail := &entity.MailMessage{
		MessageID:  msg.Id,
		ReceivedAt: time.UnixMilli(msg.InternalDate).UTC(),
	}
	if msg.Payload == nil {
		return mail
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			mail.From = header.Value
		case "Subject":
			mail.Subject = header.Value
		}
	}

	collectBodies(msg.Payload, mail)
	return mail
}

// collectBodies walks nested multipart parts keeping the first plain and
// HTML bodies found. Attachments are ignored.
func collectBodies(part *gmail.MessagePart, mail *entity.MailMessage) {
	if part.Filename == "" && part.Body != nil && part.Body.Data != "" {
		data, ok := decodeBody(part.Body.Data)
		switch {
		case !ok:
		case strings.HasPrefix(part.MimeType, "text/html"):
			if mail.HTMLBody == "" {
				mail.HTMLBody = data
			}
		case mail.Body == "":
			mail.Body = data
		}
	}
	for _, child := range part.Parts {
		collectBodies(child, mail)
	}
}

func decodeBody(s string) (string, bool) {
	if data, err := base64.URLEncoding.DecodeString(s); err == nil {
		return string(data), true
	}
	if data, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return string(data), true
	}
	return "", false
}
