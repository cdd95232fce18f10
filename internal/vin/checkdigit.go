package vin

// ISO 3779 check digit: each character transliterates to a numeric value,
// the values are multiplied by position weights and summed, and the sum
// modulo 11 must equal the character at position 9 ('X' stands for 10).

var positionWeights = [Length]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

var transliteration = map[byte]int{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5,
	'P': 7, 'R': 9,
	'S': 2, 'T': 3, 'U': 4, 'V': 5, 'W': 6, 'X': 7, 'Y': 8, 'Z': 9,
}

// validCheckDigit reports whether the character at position 9 of a
// 17-character uppercase VIN matches the weighted sum of the others.
func validCheckDigit(vin string) bool {
	if len(vin) != Length {
		return false
	}
	expected, ok := computeCheckDigit(vin)
	if !ok {
		return false
	}
	return vin[8] == expected
}

// computeCheckDigit returns the check digit the other 16 characters of vin
// imply. It reports false when vin contains a character outside the VIN
// alphabet.
func computeCheckDigit(vin string) (byte, bool) {
	sum := 0
	for i := 0; i < Length; i++ {
		c := vin[i]
		var value int
		switch {
		case c >= '0' && c <= '9':
			value = int(c - '0')
		default:
			v, ok := transliteration[c]
			if !ok {
				return 0, false
			}
			value = v
		}
		sum += value * positionWeights[i]
	}

	remainder := sum % 11
	if remainder == 10 {
		return 'X', true
	}
	return byte('0' + remainder), true
}
