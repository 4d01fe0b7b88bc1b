// Package location resolves postal ZIP codes to geographic records. The
// engine consumes a Geocoder port; the transport behind it (external API,
// bundled dataset) is swappable without touching callers.
package location

import "context"

// Data is the immutable result of a ZIP lookup, produced once per ZIP.
type Data struct {
	ZipCode               string  `json:"zip_code"`
	City                  string  `json:"city"`
	State                 string  `json:"state"`
	County                string  `json:"county"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	CongressionalDistrict string  `json:"congressional_district"`
}

// Geocoder resolves a 5-digit ZIP code to location data.
// Implementations return sentinel.ErrNotFound for unassigned ZIP codes.
type Geocoder interface {
	Geocode(ctx context.Context, zip string) (*Data, error)
}
