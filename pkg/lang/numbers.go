package lang

import "strings"

// AddIntegerUnderscores groups the digits of a decimal integer in threes
// from the right: "1234567" becomes "1_234_567". Values that already
// contain underscores or have at most three digits are returned unchanged.
func AddIntegerUnderscores(digits string) string {
	if len(digits) <= 3 || strings.Contains(digits, "_") {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}

// AddIntegerUnderscoresReverse groups digits in threes from the left, as
// used for fractional parts: "1234567" becomes "123_456_7".
func AddIntegerUnderscoresReverse(digits string) string {
	if len(digits) <= 3 || strings.Contains(digits, "_") {
		return digits
	}
	var sb strings.Builder
	for i := 0; i < len(digits); i += 3 {
		if i > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(digits[i:min(i+3, len(digits))])
	}
	return sb.String()
}
