package entity

import (
	"time"
)

// MailMessage is an inbound mail fetched by the intake
type MailMessage struct {
	MessageID  string
	From       string
	Subject    string
	Body       string
	HTMLBody   string
	ReceivedAt time.Time
}
