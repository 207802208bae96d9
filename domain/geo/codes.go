// Package geo holds the static geography-code tables the analysis surface
// resolves display names against. The correlation core never sees these; it
// receives an already-resolved geography type and region code.
package geo

import (
	"fmt"
	"strings"
)

// Type identifies the spatial unit a signal is reported at.
type Type string

const (
	TypeNation Type = "nation"
	TypeState  Type = "state"
	TypeCounty Type = "county"
	TypeHRR    Type = "hrr"
	TypeHHS    Type = "hhs"
	TypeMSA    Type = "msa"
	TypeDMA    Type = "dma"
)

// DisplayNames maps geography types to their analyst-facing labels.
var DisplayNames = map[Type]string{
	TypeNation: "Nation",
	TypeState:  "State",
	TypeCounty: "County",
	TypeHRR:    "Hospital Referral Region",
	TypeHHS:    "HHS Region",
	TypeMSA:    "Metropolitan Statistical Area",
	TypeDMA:    "Designated Market Area",
}

// ParseType resolves a geography type string.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(s))
	if _, ok := DisplayNames[t]; !ok {
		return "", fmt.Errorf("invalid geo type %q", s)
	}
	return t, nil
}

// Nations maps nation codes to display names. The upstream source covers the
// United States only.
var Nations = map[string]string{
	"us": "United States",
}

// States maps postal abbreviations to state names (plus DC and Puerto Rico,
// both reported upstream).
var States = map[string]string{
	"al": "Alabama", "ak": "Alaska", "az": "Arizona", "ar": "Arkansas",
	"ca": "California", "co": "Colorado", "ct": "Connecticut", "de": "Delaware",
	"dc": "District of Columbia", "fl": "Florida", "ga": "Georgia", "hi": "Hawaii",
	"id": "Idaho", "il": "Illinois", "in": "Indiana", "ia": "Iowa",
	"ks": "Kansas", "ky": "Kentucky", "la": "Louisiana", "me": "Maine",
	"md": "Maryland", "ma": "Massachusetts", "mi": "Michigan", "mn": "Minnesota",
	"ms": "Mississippi", "mo": "Missouri", "mt": "Montana", "ne": "Nebraska",
	"nv": "Nevada", "nh": "New Hampshire", "nj": "New Jersey", "nm": "New Mexico",
	"ny": "New York", "nc": "North Carolina", "nd": "North Dakota", "oh": "Ohio",
	"ok": "Oklahoma", "or": "Oregon", "pa": "Pennsylvania", "pr": "Puerto Rico",
	"ri": "Rhode Island", "sc": "South Carolina", "sd": "South Dakota",
	"tn": "Tennessee", "tx": "Texas", "ut": "Utah", "vt": "Vermont",
	"va": "Virginia", "wa": "Washington", "wv": "West Virginia",
	"wi": "Wisconsin", "wy": "Wyoming",
}

// HHSRegions maps HHS region numbers to their descriptions.
var HHSRegions = map[string]string{
	"1":  "Region 1 (Boston)",
	"2":  "Region 2 (New York)",
	"3":  "Region 3 (Philadelphia)",
	"4":  "Region 4 (Atlanta)",
	"5":  "Region 5 (Chicago)",
	"6":  "Region 6 (Dallas)",
	"7":  "Region 7 (Kansas City)",
	"8":  "Region 8 (Denver)",
	"9":  "Region 9 (San Francisco)",
	"10": "Region 10 (Seattle)",
}

// ErrDMAUnsupported is returned for the one geography type the upstream
// source defines but does not freely license.
var ErrDMAUnsupported = fmt.Errorf("designated market areas are proprietary Nielsen data and not supported")

// ValidateRegion checks that a region code is plausible for a geography type.
// County, HRR and MSA codes are validated by shape only; their full name
// tables live upstream.
func ValidateRegion(t Type, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	switch t {
	case TypeNation:
		if _, ok := Nations[code]; !ok {
			return fmt.Errorf("unknown nation %q", code)
		}
	case TypeState:
		if _, ok := States[code]; !ok {
			return fmt.Errorf("unknown state %q", code)
		}
	case TypeHHS:
		if _, ok := HHSRegions[code]; !ok {
			return fmt.Errorf("unknown HHS region %q", code)
		}
	case TypeCounty:
		if !allDigits(code) || len(code) != 5 {
			return fmt.Errorf("county code %q is not a 5-digit FIPS code", code)
		}
	case TypeHRR:
		if !allDigits(code) || len(code) == 0 || len(code) > 3 {
			return fmt.Errorf("HRR code %q is not a 1-3 digit region number", code)
		}
	case TypeMSA:
		if !allDigits(code) || len(code) != 5 {
			return fmt.Errorf("MSA code %q is not a 5-digit CBSA code", code)
		}
	case TypeDMA:
		return ErrDMAUnsupported
	default:
		return fmt.Errorf("invalid geo type %q", t)
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// DisplayRegion returns the analyst-facing name for a region code, falling
// back to the raw code for geography types without an embedded name table.
func DisplayRegion(t Type, code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	switch t {
	case TypeNation:
		if name, ok := Nations[code]; ok {
			return name
		}
	case TypeState:
		if name, ok := States[code]; ok {
			return name
		}
	case TypeHHS:
		if name, ok := HHSRegions[code]; ok {
			return name
		}
	}
	return code
}
