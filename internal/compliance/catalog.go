package compliance

import "strings"

// frameworkEntry is one row of the canonical compliance-framework catalog:
// its acceptable aliases, the regions that satisfy it without an explicit
// certification, and whether a missing status blocks the vendor outright.
type frameworkEntry struct {
	Canonical   string
	Aliases     []string
	RegionHints []string
	Blocking    bool
}

// catalog mirrors spec §4.D's "canonical catalog (aliases, region hints,
// blocking flag)". Frameworks not present here are treated as unknown: a
// required one is satisfied only by a certification matching the
// requirement string exactly, never by region, and blocks when missing.
var catalog = []frameworkEntry{
	{Canonical: "soc2", Aliases: []string{"soc 2", "soc2_type2", "soc 2 type ii"}, Blocking: true},
	{Canonical: "iso27001", Aliases: []string{"iso 27001", "iso/iec 27001"}, Blocking: true},
	{Canonical: "gdpr", Aliases: []string{"gdpr_compliant"}, RegionHints: []string{"eu"}, Blocking: true},
	{Canonical: "hipaa", Aliases: []string{"hipaa_compliant"}, RegionHints: []string{"us"}, Blocking: true},
	{Canonical: "ccpa", Aliases: []string{"ccpa_compliant"}, RegionHints: []string{"us"}, Blocking: false},
	{Canonical: "pci_dss", Aliases: []string{"pci-dss", "pci dss"}, Blocking: true},
	{Canonical: "fedramp", Aliases: []string{"fedramp_authorized"}, RegionHints: []string{"us"}, Blocking: true},
}

func canonicalFramework(raw string) (frameworkEntry, bool) {
	norm := normalize(raw)
	for _, entry := range catalog {
		if normalize(entry.Canonical) == norm {
			return entry, true
		}
		for _, alias := range entry.Aliases {
			if normalize(alias) == norm {
				return entry, true
			}
		}
	}
	return frameworkEntry{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hasRegionHint(entry frameworkEntry, vendorRegions []string) bool {
	for _, hint := range entry.RegionHints {
		for _, region := range vendorRegions {
			if normalize(region) == normalize(hint) {
				return true
			}
		}
	}
	return false
}
