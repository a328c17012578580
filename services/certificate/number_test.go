package certificate

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolms/models"
)

// stubCertRepo overrides just the uniqueness check; the remaining methods
// are never reached by the number generator
type stubCertRepo struct {
	CertificateRepository
	exists func(number string) (bool, error)
}

func (s *stubCertRepo) ExistsByNumber(number string) (bool, error) {
	return s.exists(number)
}

func newStubGenerator(exists func(string) (bool, error), randValues ...int) *NumberGenerator {
	gen := NewNumberGenerator(&stubCertRepo{exists: exists})
	gen.now = func() time.Time { return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC) }
	if len(randValues) > 0 {
		i := 0
		gen.randInt = func(n int) int {
			v := randValues[i%len(randValues)]
			i++
			return v
		}
	}
	return gen
}

func neverExists(string) (bool, error) { return false, nil }

func TestNumberFormatPerType(t *testing.T) {
	tests := []struct {
		certType string
		pattern  string
	}{
		{models.TypeCharacter, `^CERT-CHAR-\d{4}-\d{4}$`},
		{models.TypeTransfer, `^CERT-TRAN-\d{4}-\d{4}$`},
		{models.TypeAcademicExcellence, `^CERT-ACAD-\d{4}-\d{4}$`},
		{models.TypeECA, `^CERT-ECA-\d{4}-\d{4}$`},
		{models.TypeSports, `^CERT-SPRT-\d{4}-\d{4}$`},
		{models.TypeCourseCompletion, `^CERT-CRSE-\d{4}-\d{4}$`},
		{models.TypeBonafide, `^CERT-BONF-\d{4}-\d{4}$`},
		{models.TypeConduct, `^CERT-COND-\d{4}-\d{4}$`},
		{models.TypeParticipation, `^CERT-PART-\d{4}-\d{4}$`},
		{"something_else", `^CERT-CERT-\d{4}-\d{4}$`},
	}

	gen := newStubGenerator(neverExists)
	for _, tc := range tests {
		t.Run(tc.certType, func(t *testing.T) {
			number, err := gen.Next(tc.certType)
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(tc.pattern), number)
		})
	}
}

func TestNumberZeroPadding(t *testing.T) {
	gen := newStubGenerator(neverExists, 7)
	number, err := gen.Next(models.TypeECA)
	require.NoError(t, err)
	assert.Equal(t, "CERT-ECA-2024-0007", number)
}

func TestNumberRetriesOnCollision(t *testing.T) {
	checked := []string{}
	exists := func(number string) (bool, error) {
		checked = append(checked, number)
		return number == "CERT-CHAR-2024-1111", nil
	}

	gen := newStubGenerator(exists, 1111, 2222)
	number, err := gen.Next(models.TypeCharacter)
	require.NoError(t, err)

	// first candidate collided; a second, different candidate was produced
	require.Len(t, checked, 2)
	assert.Equal(t, "CERT-CHAR-2024-1111", checked[0])
	assert.Equal(t, "CERT-CHAR-2024-2222", number)
}

func TestNumberExhaustion(t *testing.T) {
	attempts := 0
	exists := func(string) (bool, error) {
		attempts++
		return true, nil
	}

	gen := newStubGenerator(exists, 1234)
	_, err := gen.Next(models.TypeCharacter)
	assert.ErrorIs(t, err, ErrNumberExhausted)
	assert.Equal(t, maxNumberAttempts, attempts)
}

func TestNumberUniqueAgainstPersistedSet(t *testing.T) {
	db := openTestDB(t)
	repo := NewCertificateRepository(db)
	gen := NewNumberGenerator(repo)

	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		number, err := gen.Next(models.TypeSports)
		require.NoError(t, err)
		assert.False(t, seen[number], "generated duplicate number %s", number)
		seen[number] = true

		require.NoError(t, repo.Create(&models.Certificate{
			CertificateNumber: number,
			TemplateID:        1,
			StudentID:         uint(i + 1),
			Type:              models.TypeSports,
			IssueDate:         time.Now(),
			Status:            models.CertificateStatusActive,
		}))
	}
}
