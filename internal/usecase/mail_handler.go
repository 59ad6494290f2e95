package usecase

import (
	"context"
	"errors"
	"html"
	"regexp"
	"strings"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/textnorm"
)

// MailHandler processes inbound mail it accepts by subject
type MailHandler interface {
	// CanHandle determines if this handler can process the given mail subject
	CanHandle(subject string) bool

	// Handle processes the mail
	Handle(ctx context.Context, mail *entity.MailMessage) error
}

// MailRouter routes mail to the appropriate handler based on subject
type MailRouter interface {
	// Register registers a handler
	Register(handler MailHandler)

	// GetHandler returns the handler for a given subject, or nil
	GetHandler(subject string) MailHandler
}

// BookingMailHandler feeds booking request mail into the processor
type BookingMailHandler struct {
	processor Processor
	name      string
	patterns  []string
}

// NewBookingMailHandler creates a handler accepting subjects that contain
// any of patterns. No patterns means every subject.
func NewBookingMailHandler(processor Processor, name string, patterns []string) *BookingMailHandler {
	return &BookingMailHandler{
		processor: processor,
		name:      name,
		patterns:  patterns,
	}
}

// String names the handler in logs.
func (h *BookingMailHandler) String() string {
	return h.name
}

// CanHandle checks if this handler can process the mail
func (h *BookingMailHandler) CanHandle(subject string) bool {
	if len(h.patterns) == 0 {
		return true
	}
	folded := textnorm.Fold(subject)
	for _, pattern := range h.patterns {
		if strings.Contains(folded, textnorm.Fold(pattern)) {
			return true
		}
	}
	return false
}

// Handle processes the mail body. A rejected request is a normal outcome and
// is not reported as an error.
func (h *BookingMailHandler) Handle(ctx context.Context, mail *entity.MailMessage) error {
	body := mail.Body
	if strings.TrimSpace(body) == "" {
		// Fallback to HTML if no plain text available
		body = cleanHTMLText(mail.HTMLBody)
	}

	_, err := h.processor.Process(ctx, Submission{
		Source:     entity.SourceMail,
		SourceRef:  mail.MessageID,
		Message:    textnorm.Clean(body),
		ReceivedAt: mail.ReceivedAt,
	})

	var missing *intent.MissingFieldsError
	if errors.As(err, &missing) {
		return nil
	}
	return err
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// cleanHTMLText removes HTML tags and entities
func cleanHTMLText(text string) string {
	cleaned := htmlTagRe.ReplaceAllString(text, " ")
	cleaned = html.UnescapeString(cleaned)
	return strings.TrimSpace(cleaned)
}
