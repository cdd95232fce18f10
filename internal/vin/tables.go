package vin

// manufacturers maps World Manufacturer Identifiers (first three VIN
// characters) to company names.
var manufacturers = map[string]string{
	"KM8": "Hyundai Motor Company",
	"1G1": "General Motors",
	"JHM": "Honda",
	"WBA": "BMW",
}

// modelYears maps the model-year code at VIN position 10 to a calendar year.
var modelYears = map[byte]int{
	'L': 2020,
	'M': 2021,
	'N': 2022,
	'P': 2023,
	'R': 2024,
	'S': 2025,
}

// vehicleSignature pairs a VIN prefix with a vehicle description. Signatures
// are evaluated in order, first match wins, so more specific prefixes must
// precede shorter manufacturer-only ones.
type vehicleSignature struct {
	prefix      string
	description string
}

var vehicleSignatures = []vehicleSignature{
	{prefix: "KM8R54HE", description: "Palisade SUV"},
	{prefix: "KM8", description: "Hyundai Vehicle"},
}

const unknownVehicleType = "Unknown Vehicle Type"
