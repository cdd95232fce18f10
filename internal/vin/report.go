package vin

import "strings"

// ForensicNotes carries the raw positional fields a legal report cites.
type ForensicNotes struct {
	WMICode      string `json:"wmi_code"`
	PlantCode    string `json:"plant_code"`
	SerialNumber string `json:"serial_number"`
}

// Summary packages a decode result for legal documentation.
type Summary struct {
	VIN              string            `json:"vin"`
	Manufacturer     string            `json:"manufacturer"`
	ModelYear        int               `json:"model_year"`
	VehicleType      string            `json:"vehicle_type"`
	ValidationStatus string            `json:"validation_status"`
	ForensicNotes    ForensicNotes     `json:"forensic_notes"`
	LegalRelevance   map[string]string `json:"legal_relevance"`
	Errors           []string          `json:"errors,omitempty"`
}

// relevanceRule attaches advisory facts to a decode result when its
// predicate matches. Rules are data, not logic: new case knowledge lands
// here without touching the decoder.
type relevanceRule struct {
	matches func(Decoded) bool
	facts   map[string]string
}

var relevanceRules = []relevanceRule{
	{
		matches: func(d Decoded) bool { return strings.Contains(d.VehicleType, "Palisade") },
		facts: map[string]string{
			"known_issues":     "Oil consumption defects documented in class action suits",
			"warranty_status":  "10-year powertrain warranty applicable",
			"recall_potential": "Check NHTSA database for active recalls",
		},
	},
}

// ForensicSummary decodes vin and derives the report view used in case
// filings. Positional notes degrade to "Unknown" when the input is too short
// to carry them.
func (d *Decoder) ForensicSummary(vin string) Summary {
	decoded := d.Decode(vin)

	status := "INVALID"
	if decoded.Valid {
		status = "VALID"
	}

	notes := ForensicNotes{WMICode: "Unknown", PlantCode: "Unknown", SerialNumber: "Unknown"}
	normalized := decoded.VIN
	if len(normalized) >= 3 {
		notes.WMICode = normalized[:3]
	}
	if len(normalized) >= 11 {
		notes.PlantCode = string(normalized[10])
	}
	if len(normalized) >= 12 {
		notes.SerialNumber = normalized[11:]
	}

	return Summary{
		VIN:              decoded.VIN,
		Manufacturer:     decoded.Manufacturer,
		ModelYear:        decoded.ModelYear,
		VehicleType:      decoded.VehicleType,
		ValidationStatus: status,
		ForensicNotes:    notes,
		LegalRelevance:   assessLegalRelevance(decoded),
		Errors:           decoded.Errors,
	}
}

func assessLegalRelevance(decoded Decoded) map[string]string {
	relevance := map[string]string{}
	for _, rule := range relevanceRules {
		if !rule.matches(decoded) {
			continue
		}
		for key, fact := range rule.facts {
			relevance[key] = fact
		}
	}
	return relevance
}
