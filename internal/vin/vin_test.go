package vin_test

import (
	"reflect"
	"strings"
	"testing"

	"docket/internal/vin"
)

func TestDecodeKnownPalisadeVIN(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	result := decoder.Decode("KM8R54HE1LU066808")

	if !result.Valid {
		t.Fatalf("expected valid VIN, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if result.Manufacturer != "Hyundai Motor Company" {
		t.Fatalf("unexpected manufacturer: %q", result.Manufacturer)
	}
	if result.ModelYear != 2020 {
		t.Fatalf("expected model year 2020, got %d", result.ModelYear)
	}
	if result.PlantCode != "U" {
		t.Fatalf("expected plant code U, got %q", result.PlantCode)
	}
	if result.VehicleType != "Palisade SUV" {
		t.Fatalf("unexpected vehicle type: %q", result.VehicleType)
	}
}

func TestDecodeNormalizesLowercase(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	result := decoder.Decode("km8r54he1lu066808")
	if !result.Valid {
		t.Fatalf("expected lowercase input to decode, got errors: %v", result.Errors)
	}
	if result.VIN != "KM8R54HE1LU066808" {
		t.Fatalf("expected normalized VIN, got %q", result.VIN)
	}
}

func TestDecodeIsIdempotent(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	for _, input := range []string{"km8r54he1lu066808", "KM8R54HE1LU066808", "", "short", "WBA5A7C54AA123456"} {
		first := decoder.Decode(input)
		second := decoder.Decode(first.VIN)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("decode not idempotent for %q: %+v vs %+v", input, first, second)
		}
	}
}

func TestValidateEmptyShortCircuits(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	valid, errs := decoder.Validate("")
	if valid {
		t.Fatal("expected empty VIN to be invalid")
	}
	if len(errs) != 1 || errs[0] != "VIN cannot be empty" {
		t.Fatalf("unexpected errors: %v", errs)
	}

	result := decoder.Decode("")
	if result.Valid || result.Manufacturer != "Unknown" || result.ModelYear != 0 {
		t.Fatalf("unexpected decode result for empty input: %+v", result)
	}
}

func TestValidateReportsActualLength(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	valid, errs := decoder.Validate("KM8R54HE1L")
	if valid {
		t.Fatal("expected length-10 VIN to be invalid")
	}
	found := false
	for _, e := range errs {
		if e == "VIN must be 17 characters, got 10" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected length error in %v", errs)
	}
}

func TestValidateRejectsForbiddenLetters(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	for _, input := range []string{
		"IM8R54HE1LU066808",
		"KM8O54HE1LU066808",
		"KM8R54HE1LU06680Q",
		"km8r54he1lu06680i",
	} {
		valid, errs := decoder.Validate(input)
		if valid {
			t.Fatalf("expected %q to be invalid", input)
		}
		found := false
		for _, e := range errs {
			if strings.Contains(e, "invalid characters") {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected invalid-character error for %q, got %v", input, errs)
		}
	}
}

func TestValidateRejectsBadCheckDigit(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	valid, errs := decoder.Validate("KM8R54HE2LU066808")
	if valid {
		t.Fatal("expected transposed check digit to fail")
	}
	if len(errs) != 1 || errs[0] != "Invalid VIN check digit" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestDecodeUnknownYearCodeKeepsValidity(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	result := decoder.Decode("WBA5A7C54AA123456")

	if !result.Valid {
		t.Fatalf("expected valid VIN despite unknown year code, got errors: %v", result.Errors)
	}
	if result.Manufacturer != "BMW" {
		t.Fatalf("unexpected manufacturer: %q", result.Manufacturer)
	}
	if result.ModelYear != 0 {
		t.Fatalf("expected sentinel year 0, got %d", result.ModelYear)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "Unknown model year code: A" {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
}

func TestDecodeUnmappedManufacturerDegrades(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	result := decoder.Decode("5YJ3A7C52LA123456")
	if !result.Valid {
		t.Fatalf("expected valid VIN, got errors: %v", result.Errors)
	}
	if result.Manufacturer != "Unknown (5YJ)" {
		t.Fatalf("expected raw-code marker, got %q", result.Manufacturer)
	}
	if result.VehicleType != "Unknown Vehicle Type" {
		t.Fatalf("unexpected vehicle type: %q", result.VehicleType)
	}
}

func TestDecodeNeverPanicsOnValidAlphabet(t *testing.T) {
	decoder := vin.NewDecoder(nil)
	inputs := []string{
		"AAAAAAAAAAAAAAAAA",
		"11111111111111111",
		"ZZZZZZZZ0ZZZZZZZZ",
	}
	for _, input := range inputs {
		result := decoder.Decode(input)
		if result.VIN == "" {
			t.Fatalf("expected populated record for %q", input)
		}
	}
}
