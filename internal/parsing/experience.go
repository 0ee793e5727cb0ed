package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

var experiencePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\+?\s*(?:years?|yrs?)`)

// ExtractExperience returns the largest "N years" / "N+ yrs" figure mentioned in text, or 0.
// It is a heuristic: the maximum mention is taken as total experience.
func ExtractExperience(text string) float64 {
	var best float64
	for _, m := range experiencePattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if v > best {
			best = v
		}
	}
	return best
}
