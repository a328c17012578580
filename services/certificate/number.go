package certificate

import (
	"fmt"
	"math/rand"
	"time"

	"schoolms/models"
)

// typePrefixes maps certificate type tags to the prefix embedded in the
// certificate number. Unknown types fall back to CERT.
var typePrefixes = map[string]string{
	models.TypeCharacter:          "CHAR",
	models.TypeTransfer:           "TRAN",
	models.TypeAcademicExcellence: "ACAD",
	models.TypeECA:                "ECA",
	models.TypeSports:             "SPRT",
	models.TypeCourseCompletion:   "CRSE",
	models.TypeBonafide:           "BONF",
	models.TypeConduct:            "COND",
	models.TypeParticipation:      "PART",
}

// maxNumberAttempts bounds the collision retry loop
const maxNumberAttempts = 100

// NumberGenerator mints certificate numbers of the form
// CERT-<PREFIX>-<year>-<4 digit random>, unique against the persisted
// certificate set. now and randInt are seams for deterministic tests.
type NumberGenerator struct {
	repo    CertificateRepository
	now     func() time.Time
	randInt func(n int) int
}

// NewNumberGenerator returns a NumberGenerator backed by repo
func NewNumberGenerator(repo CertificateRepository) *NumberGenerator {
	return &NumberGenerator{
		repo:    repo,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

// Next returns a certificate number unique among persisted certificates,
// retrying with a fresh random suffix on collision. Returns
// ErrNumberExhausted once the attempt bound is hit.
func (g *NumberGenerator) Next(certType string) (string, error) {
	prefix, ok := typePrefixes[certType]
	if !ok {
		prefix = "CERT"
	}
	year := g.now().Year()

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := fmt.Sprintf("CERT-%s-%d-%04d", prefix, year, g.randInt(10000))
		exists, err := g.repo.ExistsByNumber(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", ErrNumberExhausted
}
