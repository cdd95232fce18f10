package vin

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"docket/internal/logging"
)

// Length is the number of characters in a complete VIN per ISO 3779.
const Length = 17

// vinPattern matches the permitted VIN alphabet: digits and uppercase
// letters excluding I, O, and Q.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// Decoded is the immutable result of decoding a VIN. Invalid input still
// yields a populated record with placeholder values.
type Decoded struct {
	VIN          string   `json:"vin"`
	Manufacturer string   `json:"manufacturer"`
	ModelYear    int      `json:"model_year"`
	PlantCode    string   `json:"plant_code"`
	VehicleType  string   `json:"vehicle_type"`
	Valid        bool     `json:"valid"`
	Errors       []string `json:"errors,omitempty"`
}

// Decoder validates and decodes VIN strings.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder constructs a Decoder. A nil logger silences decode logging.
func NewDecoder(logger *slog.Logger) *Decoder {
	return &Decoder{logger: logging.NewComponentLogger(logger, "vin-decoder")}
}

// Validate runs every structural check against the candidate VIN and
// accumulates the failures. Checks do not short-circuit on earlier failures;
// only empty input returns immediately.
func (d *Decoder) Validate(vin string) (bool, []string) {
	var errs []string

	if vin == "" {
		return false, []string{"VIN cannot be empty"}
	}

	if len(vin) != Length {
		errs = append(errs, fmt.Sprintf("VIN must be 17 characters, got %d", len(vin)))
	}

	if !vinPattern.MatchString(strings.ToUpper(vin)) {
		errs = append(errs, "VIN contains invalid characters (I, O, Q not allowed)")
	}

	if len(vin) == Length && !validCheckDigit(strings.ToUpper(vin)) {
		errs = append(errs, "Invalid VIN check digit")
	}

	return len(errs) == 0, errs
}

// Decode validates vin and extracts its descriptive fields. Input is
// normalized to uppercase before extraction. Invalid input yields placeholder
// fields and the accumulated validation errors.
//
// An unmapped model-year code appends an error to the result without
// revoking validity: the validity decision is made before the year lookup
// runs, so Valid can be true while Errors is non-empty.
func (d *Decoder) Decode(vin string) Decoded {
	vin = strings.ToUpper(vin)
	d.logger.Info("decoding VIN", logging.String(logging.FieldVIN, vin))

	valid, errs := d.Validate(vin)
	if !valid {
		d.logger.Warn("VIN failed validation",
			logging.String(logging.FieldVIN, vin),
			logging.Int("error_count", len(errs)),
		)
		return Decoded{
			VIN:          vin,
			Manufacturer: "Unknown",
			ModelYear:    0,
			PlantCode:    "",
			VehicleType:  "",
			Valid:        false,
			Errors:       errs,
		}
	}

	wmi := vin[:3]
	manufacturer, ok := manufacturers[wmi]
	if !ok {
		manufacturer = fmt.Sprintf("Unknown (%s)", wmi)
	}

	yearCode := vin[9]
	modelYear := modelYears[yearCode]
	if modelYear == 0 {
		errs = append(errs, fmt.Sprintf("Unknown model year code: %c", yearCode))
	}

	result := Decoded{
		VIN:          vin,
		Manufacturer: manufacturer,
		ModelYear:    modelYear,
		PlantCode:    string(vin[10]),
		VehicleType:  vehicleType(vin),
		Valid:        true,
		Errors:       errs,
	}

	d.logger.Info("decoded VIN",
		logging.String(logging.FieldVIN, vin),
		logging.String("manufacturer", manufacturer),
		logging.Int("model_year", modelYear),
	)
	return result
}

func vehicleType(vin string) string {
	for _, sig := range vehicleSignatures {
		if strings.HasPrefix(vin, sig.prefix) {
			return sig.description
		}
	}
	return unknownVehicleType
}
