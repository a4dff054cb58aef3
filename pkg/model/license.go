package model

import "strings"

// License is one of the Creative Commons licenses in use on freesound.org.
// The API represents a license either as a URI or as a textual description
// depending on the endpoint; License is the canonical form for both.
type License int

const (
	// LicenseCC0 is Creative Commons 0 (public domain).
	LicenseCC0 License = iota + 1

	// LicenseAttribution is Creative Commons By-Attribution.
	LicenseAttribution

	// LicenseAttributionNoncommercial is Creative Commons By-Attribution Non-commercial.
	LicenseAttributionNoncommercial
)

type licenseInfo struct {
	license     License
	description string
	uriPrefix   string
}

// licenses is scanned in declaration order by LicenseFromURI. No prefix may be
// a prefix of another entry's prefix.
var licenses = []licenseInfo{
	{LicenseCC0, "Creative Commons 0", "http://creativecommons.org/publicdomain/zero/"},
	{LicenseAttribution, "Attribution", "http://creativecommons.org/licenses/by/"},
	{LicenseAttributionNoncommercial, "Attribution Noncommercial", "http://creativecommons.org/licenses/by-nc/"},
}

// Licenses returns every known license in declaration order.
func Licenses() []License {
	out := make([]License, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, l.license)
	}
	return out
}

// Description returns the textual representation used by the API, or the
// empty string for an unknown value.
func (l License) Description() string {
	for _, info := range licenses {
		if info.license == l {
			return info.description
		}
	}
	return ""
}

// URIPrefix returns the version-agnostic prefix of the license URIs.
func (l License) URIPrefix() string {
	for _, info := range licenses {
		if info.license == l {
			return info.uriPrefix
		}
	}
	return ""
}

// String implements fmt.Stringer.
func (l License) String() string {
	if d := l.Description(); d != "" {
		return d
	}
	return "unknown license"
}

// LicenseFromDescription looks up a license by its exact description.
func LicenseFromDescription(description string) (License, bool) {
	if description == "" {
		return 0, false
	}
	for _, info := range licenses {
		if info.description == description {
			return info.license, true
		}
	}
	return 0, false
}

// LicenseFromURI looks up a license by URI. Any version of a license resolves
// to the same value, e.g. both ".../by/1.0/" and ".../by/3.0/" map to
// LicenseAttribution.
func LicenseFromURI(uri string) (License, bool) {
	if uri == "" {
		return 0, false
	}
	for _, info := range licenses {
		if strings.HasPrefix(uri, info.uriPrefix) {
			return info.license, true
		}
	}
	return 0, false
}
