package intent

import (
	"fmt"
	"strings"

	"flight-intent-service/internal/domain/entity"
)

// Policy selects how missing fields are handled.
type Policy string

const (
	// PolicyStrict leaves an unstated quantity absent and rejects intents
	// missing origin, destination, date or airline.
	PolicyStrict Policy = "strict"
	// PolicyLenient defaults the quantity to 1 at parse time and lets
	// incomplete intents through.
	PolicyLenient Policy = "lenient"
)

// ParsePolicy maps a config value to a Policy. Unknown values are an error so
// a typo never silently switches behavior.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyStrict:
		return PolicyStrict, nil
	case PolicyLenient:
		return PolicyLenient, nil
	}
	return "", fmt.Errorf("unknown parse policy %q (want %q or %q)", s, PolicyStrict, PolicyLenient)
}

// MissingFieldsError reports required fields absent from an intent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Validate checks intent against the policy. Only the strict policy can fail.
func Validate(b entity.BookingIntent, policy Policy) error {
	if policy != PolicyStrict {
		return nil
	}
	if missing := b.MissingFields(); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

var clarifications = map[string]string{
	entity.FieldOrigin:      "No pude detectar el ORIGEN. Ej: 'de Quito a Madrid ...'",
	entity.FieldDestination: "No pude detectar el DESTINO. Ej: '... a Madrid ...'",
	entity.FieldDate:        "No pude detectar la FECHA. Ej: '... para el 15 de octubre' o '... en septiembre'",
	entity.FieldAirline:     "No pude detectar la AEROLÍNEA. Ej: '... con Iberia' o '... Lufthansa'",
}

// ClarificationPrompts returns one prompt per missing field, asking the user
// to rephrase.
func ClarificationPrompts(fields []string) []string {
	prompts := make([]string, 0, len(fields))
	for _, f := range fields {
		if p, ok := clarifications[f]; ok {
			prompts = append(prompts, p)
		}
	}
	return prompts
}
