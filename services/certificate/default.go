package certificate

import (
	"sync"

	"schoolms/config"
	"schoolms/database"
)

var (
	defaultOnce      sync.Once
	defaultService   *Service
	defaultTemplates *TemplateService
)

// initDefaults builds the process-wide instances from the global database
// connection and configuration. Controllers use these for convenience; the
// core itself only ever sees the injected collaborators.
func initDefaults() {
	db := database.Database.Db
	certRepo := NewCertificateRepository(db)
	defaultTemplates = NewTemplateService(NewTemplateRepository(db))
	defaultService = NewService(
		certRepo,
		defaultTemplates,
		NewNumberGenerator(certRepo),
		NewQRBuilder(),
		NewPDFRenderer(config.AppConfig.CertificateDir),
		ApproxConverter{},
		config.AppConfig.BaseURL,
	)
}

// Default returns the process-wide lifecycle manager
func Default() *Service {
	defaultOnce.Do(initDefaults)
	return defaultService
}

// DefaultTemplates returns the process-wide template store
func DefaultTemplates() *TemplateService {
	defaultOnce.Do(initDefaults)
	return defaultTemplates
}
