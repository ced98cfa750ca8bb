package models

// Location is a postal address with optional coordinates. At most one
// warehouse sits at a location.
type Location struct {
	ID         int      `json:"location_id" db:"location_id"`
	Latitude   *float64 `json:"latitude" db:"latitude"`
	Longitude  *float64 `json:"longitude" db:"longitude"`
	Country    string   `json:"country" db:"country"`
	PostalCode string   `json:"postal_code" db:"postal_code"`
	City       string   `json:"city" db:"city"`
	Street     string   `json:"street" db:"street"`
}

type LocationDocument struct {
	Latitude   *float64 `json:"latitude,omitempty" jsonschema:"minimum=-90,maximum=90"`
	Longitude  *float64 `json:"longitude,omitempty" jsonschema:"minimum=-180,maximum=180"`
	Country    *string  `json:"country,omitempty" jsonschema:"required,minLength=1,maxLength=64"`
	PostalCode *string  `json:"postal_code,omitempty" jsonschema:"required,minLength=1,maxLength=8"`
	City       *string  `json:"city,omitempty" jsonschema:"required,minLength=1,maxLength=64"`
	Street     *string  `json:"street,omitempty" jsonschema:"required,minLength=1,maxLength=128"`
}

func (l *Location) Serialize() LocationDocument {
	return LocationDocument{
		Latitude:   cloneFloat(l.Latitude),
		Longitude:  cloneFloat(l.Longitude),
		Country:    stringPtr(l.Country),
		PostalCode: stringPtr(l.PostalCode),
		City:       stringPtr(l.City),
		Street:     stringPtr(l.Street),
	}
}

func (l *Location) Deserialize(doc LocationDocument) {
	if doc.Latitude != nil {
		l.Latitude = cloneFloat(doc.Latitude)
	}
	if doc.Longitude != nil {
		l.Longitude = cloneFloat(doc.Longitude)
	}
	if doc.Country != nil {
		l.Country = *doc.Country
	}
	if doc.PostalCode != nil {
		l.PostalCode = *doc.PostalCode
	}
	if doc.City != nil {
		l.City = *doc.City
	}
	if doc.Street != nil {
		l.Street = *doc.Street
	}
}
