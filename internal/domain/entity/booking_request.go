package entity

// BookingRequest is the final normalized record handed to the downstream
// reservation system. It is built once and never modified.
type BookingRequest struct {
	OriginCity      *string `json:"originCity" bson:"originCity"`
	DestinationCity *string `json:"destinationCity" bson:"destinationCity"`
	OriginIATA      *string `json:"originIata" bson:"originIata"`
	DestinationIATA *string `json:"destinationIata" bson:"destinationIata"`
	Date            *string `json:"date" bson:"date"` // dd-mm-yyyy
	Passengers      int     `json:"passengers" bson:"passengers"`
	Airline         *string `json:"airline" bson:"airline"`
}

// Place is what the place resolution collaborator returns: a display name and
// a two-letter country code, either of which may be empty.
type Place struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}
