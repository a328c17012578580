package certificate

import (
	"fmt"
	"time"
)

// Converter converts Gregorian dates to Bikram Sambat date strings
// (YYYY-MM-DD). Implementations are injectable; the BS date is carried on
// certificates for display and is not part of the engine's correctness
// contract.
type Converter interface {
	ToBS(t time.Time) string
}

// ApproxConverter is a rough arithmetic AD->BS conversion. The BS new year
// falls around mid-April, so dates before it are offset by 56 years and
// dates after by 57. Deployments that need real BS dates should inject a
// proper calendar implementation instead.
type ApproxConverter struct{}

// ToBS returns the approximate Bikram Sambat date string for t
func (ApproxConverter) ToBS(t time.Time) string {
	offset := 56
	if t.Month() > time.April || (t.Month() == time.April && t.Day() >= 14) {
		offset = 57
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year()+offset, int(t.Month()), t.Day())
}
