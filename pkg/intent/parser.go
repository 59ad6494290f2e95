// Package intent extracts a flight booking intent from a Spanish free-text
// request with a fixed sequence of pattern passes. Each pass takes the working
// text and returns it with the span it recognized removed, so later passes
// never see a date day as a passenger count or an airline as a city.
//
// A Parser keeps no state between calls and is safe for concurrent use.
package intent

import (
	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/pkg/logger"
	"flight-intent-service/pkg/textnorm"
)

// stage is one extraction pass. It reads the working text, records what it
// found on rec and returns the text left for the next stage.
type stage struct {
	name string
	run  func(p *Parser, text string, rec *entity.BookingIntent) string
}

// stages run in this order. Date goes first so "15 de agosto" can neither be
// read as "de <city>" nor as a count; airline goes before route so "con
// Iberia" never ends up inside a city phrase.
var stages = []stage{
	{name: "date", run: (*Parser).dateStage},
	{name: "airline", run: (*Parser).airlineStage},
	{name: "quantity", run: (*Parser).quantityStage},
	{name: "route", run: (*Parser).routeStage},
}

// Parser turns messages into booking intents.
type Parser struct {
	lexicon *Lexicon
	policy  Policy
	logger  logger.Logger
}

// NewParser creates a parser. A nil lexicon means the built-in one.
func NewParser(lexicon *Lexicon, policy Policy, logger logger.Logger) *Parser {
	if lexicon == nil {
		lexicon = defaultLexicon
	}
	return &Parser{
		lexicon: lexicon,
		policy:  policy,
		logger:  logger,
	}
}

// Policy returns the missing-field policy the parser was built with.
func (p *Parser) Policy() Policy {
	return p.policy
}

// Parse extracts an intent from message. It never fails; fields that could
// not be found are nil.
func (p *Parser) Parse(message string) entity.BookingIntent {
	original := textnorm.Clean(message)

	var rec entity.BookingIntent
	working := original
	for _, st := range stages {
		working = st.run(p, working, &rec)
		p.logger.Debug("Extraction stage done", "stage", st.name, "remaining", working)
	}

	if rec.Origin != nil {
		rec.OriginCountryHint = optional(ExtractCountryHint(original, *rec.Origin))
	}
	if rec.Destination != nil {
		rec.DestinationCountryHint = optional(ExtractCountryHint(original, *rec.Destination))
	}

	if rec.Quantity == nil && p.policy == PolicyLenient {
		one := 1
		rec.Quantity = &one
	}

	p.logger.Info("Message parsed",
		"missing", rec.MissingFields(),
		"policy", p.policy)

	return rec
}

func (p *Parser) dateStage(text string, rec *entity.BookingIntent) string {
	m, rest := ExtractDate(text)
	if m.Found() {
		rec.DateExpression = optional(m.Raw)
	}
	return rest
}

func (p *Parser) airlineStage(text string, rec *entity.BookingIntent) string {
	m, rest := p.lexicon.ExtractAirline(text)
	if m.Found() {
		rec.Airline = optional(m.Name)
	}
	return rest
}

func (p *Parser) quantityStage(text string, rec *entity.BookingIntent) string {
	m, rest := ExtractQuantity(text)
	if m.Found() {
		n := m.Count
		rec.Quantity = &n
	}
	return rest
}

func (p *Parser) routeStage(text string, rec *entity.BookingIntent) string {
	route := ExtractRoute(text)
	rec.Origin = optional(route.Origin)
	rec.Destination = optional(route.Destination)
	return text
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
