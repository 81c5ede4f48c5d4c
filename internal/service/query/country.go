package query

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultRegion names the region used when no country can be resolved.
const DefaultRegion = "the Middle East"

var regionNamer = display.English.Regions()

// CountryName resolves an English region name for an ISO country code.
func CountryName(countryCode string) string {
	code := strings.TrimSpace(countryCode)
	if code == "" {
		return DefaultRegion
	}
	region, err := language.ParseRegion(code)
	if err != nil {
		return DefaultRegion
	}
	name := strings.TrimSpace(regionNamer.Name(region))
	if name == "" || strings.EqualFold(name, "Unknown Region") {
		return DefaultRegion
	}
	return name
}
