package parsing

import (
	"regexp"

	"github.com/jonathan/talentsphere/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Optional country code, then either a 3-3-4 grouping with an optional
	// parenthesized area code or a 5-5 national grouping.
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}|\d{5}[-.\s]?\d{5})`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// ExtractContact finds the first email address and the first plausible phone number in text.
// Fields that cannot be found are set to types.NotFound.
func ExtractContact(text string) types.ContactInfo {
	info := types.ContactInfo{
		Email: types.NotFound,
		Phone: types.NotFound,
	}

	if email := emailPattern.FindString(text); email != "" {
		info.Email = email
	}
	if phone := firstPhone(text); phone != "" {
		info.Phone = phone
	}
	return info
}

// firstPhone returns the first candidate, verbatim, whose digit count is a valid phone length.
// Year ranges like "2019-2023" match the pattern but carry too few digits.
func firstPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		n := countDigits(candidate)
		if n >= minPhoneDigits && n <= maxPhoneDigits {
			return candidate
		}
	}
	return ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
