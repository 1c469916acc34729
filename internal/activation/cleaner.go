package activation

import (
	"strings"
	"unicode/utf8"
)

// Clean normalizes a whitespace separated digit run. Tokens longer than
// seven characters lose their first character, which OCR tends to pick up
// from the dialog border.
func Clean(code string) string {
	parts := strings.Fields(code)
	for i, part := range parts {
		if utf8.RuneCountInString(part) > 7 {
			_, size := utf8.DecodeRuneInString(part)
			parts[i] = part[size:]
		}
	}
	return strings.Join(parts, " ")
}

// FixLeadingDigits corrects the "11" prefix that Tesseract reads as "44".
func FixLeadingDigits(code string) string {
	if strings.HasPrefix(code, "44") {
		return "11" + code[2:]
	}
	return code
}
