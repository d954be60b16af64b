package app

import (
	"strings"

	"gastropath/internal/domain"
	"gastropath/internal/payload"
)

// Normalize maps a raw place-details result into PlaceDetails. It never
// fails; absent fields take their marker values.
func Normalize(res payload.Node) domain.PlaceDetails {
	d := domain.PlaceDetails{
		Name:       res.Get("name").StringOr(domain.SentinelName),
		Website:    res.Get("website").StringOr(domain.NoWebsite),
		PriceLevel: RenderPriceLevel(res.Get("price_level")),
		Address:    res.Get("formatted_address").StringOr(domain.NoAddress),
		MapsLink:   res.Get("url").StringOr(domain.NoLink),
		City:       domain.NoCity,
		Country:    domain.NoCountry,
	}

	// last match wins, in provider order
	components, _ := res.Get("address_components").Array()
	for _, c := range components {
		types := c.Get("types")
		if types.Contains("locality") {
			d.City = c.Get("long_name").StringOr(d.City)
		}
		if types.Contains("country") {
			d.Country = c.Get("long_name").StringOr(d.Country)
		}
	}

	if ref, ok := res.Get("photos").Index(0).Get("photo_reference").String(); ok {
		d.PhotoReference = &ref
	}
	return d
}

// MaxPriceLevel is the top of the provider's 0-4 price scale.
const MaxPriceLevel = 4

// RenderPriceLevel repeats the price glyph N times. Level 0 renders as the
// empty string, which is distinct from the unknown marker. Levels outside
// 0..MaxPriceLevel are unknown.
func RenderPriceLevel(n payload.Node) string {
	level, ok := n.Int()
	if !ok || level < 0 || level > MaxPriceLevel {
		return domain.UnknownPrice
	}
	return strings.Repeat(domain.PriceGlyph, int(level))
}
