package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolms/models"
)

// testIssuedAt is the fixed clock used by services under test
var testIssuedAt = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.CertificateTemplate{},
		&models.Certificate{},
	))
	return db
}

// fakeRenderer stands in for the PDF renderer so lifecycle tests do not
// touch the filesystem
type fakeRenderer struct {
	err   error
	calls int
}

func (r *fakeRenderer) Produce(certificateNumber, renderedHTML string, qrPNG []byte) (string, error) {
	r.calls++
	if r.err != nil {
		return "", &DocumentProductionError{Err: r.err}
	}
	return "/certificates/" + certificateNumber + ".pdf", nil
}

func newTestService(t *testing.T, db *gorm.DB, renderer Renderer) *Service {
	t.Helper()
	certRepo := NewCertificateRepository(db)
	templates := NewTemplateService(NewTemplateRepository(db))
	numbers := NewNumberGenerator(certRepo)

	svc := NewService(
		certRepo,
		templates,
		numbers,
		NewQRBuilder(),
		renderer,
		ApproxConverter{},
		"https://school.example.com",
	)
	svc.now = func() time.Time { return testIssuedAt }
	numbers.now = svc.now
	return svc
}

// createCharacterTemplate persists the standard two-variable test template
func createCharacterTemplate(t *testing.T, svc *Service, name string) *models.CertificateTemplate {
	t.Helper()
	tpl, err := svc.templates.Create(NewTemplate{
		Name:      name,
		Type:      models.TypeCharacter,
		Body:      "<div>{{student_name}} from {{class}}</div>",
		Variables: []string{"student_name", "class"},
	})
	require.NoError(t, err)
	return tpl
}
