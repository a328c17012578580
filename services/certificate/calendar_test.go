package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApproxConverterToBS(t *testing.T) {
	converter := ApproxConverter{}

	tests := []struct {
		name string
		ad   time.Time
		want string
	}{
		{"before BS new year", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "2080-01-01"},
		{"day before new year", time.Date(2024, time.April, 13, 0, 0, 0, 0, time.UTC), "2080-04-13"},
		{"on BS new year", time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC), "2081-04-14"},
		{"after BS new year", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), "2081-06-15"},
		{"year end", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "2081-12-31"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, converter.ToBS(tc.ad))
		})
	}
}
