package services

import (
	"regexp"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

// zipTokenPattern matches a 5-digit postal code token, optionally with a +4
// suffix. Word boundaries keep it from matching inside longer digit runs such
// as phone numbers.
var zipTokenPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// AddressParser extracts a destination postal code from unstructured,
// multi-line buyer address text.
//
// Marketplace orders deliver the shipping address as free text, so the parser
// scans the non-blank lines from the bottom up and returns the first 5-digit
// (optionally +4) token it finds. Postal addresses conventionally place the
// ZIP on the final line, and scanning backward is more robust to embedded
// numeric noise earlier in the address, such as a street number.
//
// When nothing matches, the parser returns the sentinel postal code "00000"
// rather than failing; callers must treat the sentinel as unusable and block
// downstream rate requests.
//
// Example usage:
//
//	parser := services.NewAddressParser()
//	code := parser.ExtractPostalCode("123 Main St\nGrand Rapids, MI 49503")
//	// code.String() == "49503"
type AddressParser struct{}

// NewAddressParser creates a new AddressParser instance.
func NewAddressParser() AddressParser {
	return AddressParser{}
}

// ExtractPostalCode scans addressText for a postal code, bottom line first.
// Blank and whitespace-only lines are skipped. Returns the sentinel postal
// code when the input is empty or no line contains a postal code token.
func (AddressParser) ExtractPostalCode(addressText string) kernel.PostalCode {
	lines := nonBlankLines(addressText)

	for i := len(lines) - 1; i >= 0; i-- {
		token := zipTokenPattern.FindString(lines[i])
		if token == "" {
			continue
		}

		code, err := kernel.NewPostalCode(token)
		if err != nil {
			continue
		}
		return code
	}

	return kernel.SentinelPostalCode()
}

// nonBlankLines splits text into trimmed lines, dropping blank ones.
func nonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
