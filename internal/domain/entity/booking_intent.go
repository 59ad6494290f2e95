package entity

// BookingIntent is the intermediate record produced by the extraction
// pipeline. Nil means the field was not found in the message.
type BookingIntent struct {
	Origin                 *string `json:"origin" bson:"origin"`
	Destination            *string `json:"destination" bson:"destination"`
	DateExpression         *string `json:"dateExpression" bson:"dateExpression"`
	Quantity               *int    `json:"quantity" bson:"quantity"`
	Airline                *string `json:"airline" bson:"airline"`
	OriginCountryHint      *string `json:"originCountryHint" bson:"originCountryHint"`
	DestinationCountryHint *string `json:"destinationCountryHint" bson:"destinationCountryHint"`
}

// MissingFields lists the required fields that are absent, in display order.
func (b BookingIntent) MissingFields() []string {
	var missing []string
	if b.Origin == nil {
		missing = append(missing, FieldOrigin)
	}
	if b.Destination == nil {
		missing = append(missing, FieldDestination)
	}
	if b.DateExpression == nil {
		missing = append(missing, FieldDate)
	}
	if b.Airline == nil {
		missing = append(missing, FieldAirline)
	}
	return missing
}

// Field names used in validation errors, logs and metrics.
const (
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldDate        = "date"
	FieldQuantity    = "quantity"
	FieldAirline     = "airline"
)
