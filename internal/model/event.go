package model

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RawFields holds the unvalidated strings a site adapter extracted from
// one page. A RawFields value is consumed exactly once by the pipeline
// and then discarded.
type RawFields struct {
	Title            string       `json:"title,omitempty"`
	RawDateText      string       `json:"raw_date_text,omitempty"`
	AddressText      string       `json:"address_text,omitempty"`
	RawCoordinates   *Coordinates `json:"raw_coordinates,omitempty"`
	DescriptionParts []string     `json:"description_parts,omitempty"`
	SourceURL        string       `json:"source_url"`
	SiteID           string       `json:"site_id"`
}

// NormalizedEvent is a validated, store-ready event. It is immutable
// once built: Date is either a canonical MM/DD/YYYY value or empty
// (never a malformed string), and Coordinates, if non-nil, have passed
// the geofence check.
type NormalizedEvent struct {
	Name             string       `json:"name"`
	Date             string       `json:"date,omitempty"`     // canonical MM/DD/YYYY, empty if unresolvable
	RawDate          string       `json:"raw_date,omitempty"` // original text, kept when Date is empty
	ShortDescription string       `json:"short_description,omitempty"`
	FullDescription  string       `json:"full_description,omitempty"`
	Address          string       `json:"address,omitempty"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	Category         string       `json:"category"`
	Subcategory      string       `json:"subcategory"`
	SourceURL        string       `json:"source_url"`
	SiteID           string       `json:"site_id"`
}
