package router

import (
	"flight-intent-service/internal/usecase"
	"flight-intent-service/pkg/logger"
)

// SubjectRouter routes mail to handlers based on subject
type SubjectRouter struct {
	handlers []usecase.MailHandler
	logger   logger.Logger
}

// NewSubjectRouter creates a new subject router
func NewSubjectRouter(logger logger.Logger) *SubjectRouter {
	return &SubjectRouter{
		handlers: make([]usecase.MailHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler. Handlers are consulted in registration order.
func (r *SubjectRouter) Register(handler usecase.MailHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the first handler accepting subject, or nil
func (r *SubjectRouter) GetHandler(subject string) usecase.MailHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(subject) {
			return handler
		}
	}
	return nil
}
