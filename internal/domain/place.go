package domain

// LocationReference is the raw caller input: a map link or free text.
type LocationReference string

const (
	SentinelName = "Unknown"

	NoWebsite = "No website available"
	NoAddress = "No address available"
	NoLink    = "No link available"
	NoCity    = "No city available"
	NoCountry = "No country available"

	PriceGlyph   = "💵"
	UnknownPrice = "❓"

	UnknownCuisine   = "❓"
	CuisineSeparator = ", "
)

// DetailFields is the field set requested on every detail fetch.
var DetailFields = []string{
	"name",
	"formatted_address",
	"website",
	"price_level",
	"address_component",
	"photos",
	"url",
}

// PlaceQuery holds exactly one of ID or Text.
type PlaceQuery struct {
	id   string
	text string
}

func ByIdentifier(id string) PlaceQuery { return PlaceQuery{id: id} }
func ByText(q string) PlaceQuery        { return PlaceQuery{text: q} }

// Identifier reports the identifier variant.
func (q PlaceQuery) Identifier() (string, bool) { return q.id, q.id != "" }

func (q PlaceQuery) Text() string { return q.text }

func (q PlaceQuery) String() string {
	if q.id != "" {
		return "id:" + q.id
	}
	return "text:" + q.text
}

type PlaceDetails struct {
	Name           string
	Website        string
	PriceLevel     string
	City           string
	Country        string
	MapsLink       string
	Address        string
	PhotoReference *string
}

type EnrichedRecord struct {
	PlaceDetails
	Cuisine  string
	CoverURL *string
}

// Enrich returns a copy of d with the enrichment fields set.
func (d PlaceDetails) Enrich(cuisine string, cover *string) EnrichedRecord {
	if d.PhotoReference != nil {
		ref := *d.PhotoReference
		d.PhotoReference = &ref
	}
	if cuisine == "" {
		cuisine = UnknownCuisine
	}
	return EnrichedRecord{PlaceDetails: d, Cuisine: cuisine, CoverURL: cover}
}

// Business is one business-directory match.
type Business struct {
	Categories []Category
}

type Category struct {
	Title string
}

// Outcome is the acknowledgment returned once a record is persisted or already present.
type Outcome struct {
	Record  EnrichedRecord
	Created bool
}
