package entity

import (
	"time"
)

// Booking log status
const (
	StatusCompleted = "COMPLETED"
	StatusRejected  = "REJECTED"
	StatusSkipped   = "SKIPPED" // mail not routed to any handler
)

// Submission sources
const (
	SourceAPI     = "api"
	SourceConsole = "console"
	SourceMail    = "mail"
)

// BookingLog records one processed submission: the raw message, what was
// extracted from it and the final record when one was built.
type BookingLog struct {
	ID            string          `json:"id" bson:"_id"`
	Source        string          `json:"source" bson:"source"`
	SourceRef     string          `json:"sourceRef,omitempty" bson:"sourceRef,omitempty"` // gmail message id
	Message       string          `json:"message" bson:"message"`
	Policy        string          `json:"policy" bson:"policy"`
	Intent        BookingIntent   `json:"intent" bson:"intent"`
	Request       *BookingRequest `json:"request,omitempty" bson:"request,omitempty"`
	Status        string          `json:"status" bson:"status"`
	MissingFields []string        `json:"missingFields,omitempty" bson:"missingFields,omitempty"`
	ReceivedAt    time.Time       `json:"receivedAt" bson:"receivedAt"`
	ProcessedAt   time.Time       `json:"processedAt" bson:"processedAt"`
}
