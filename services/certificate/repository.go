package certificate

import (
	"errors"

	"gorm.io/gorm"

	"schoolms/models"
)

type (
	// TemplateFilter narrows template listings
	TemplateFilter struct {
		Type   string
		Active *bool
		Page   int
		Limit  int
	}

	// CertificateFilter narrows certificate listings
	CertificateFilter struct {
		StudentID uint
		Type      string
		Status    string
		Page      int
		Limit     int
	}

	// TemplateRepository persists certificate templates
	TemplateRepository interface {
		Create(t *models.CertificateTemplate) error
		Save(t *models.CertificateTemplate) error
		FindByID(id uint) (*models.CertificateTemplate, error)
		ExistsByName(name string, excludeID uint) (bool, error)
		List(filter TemplateFilter) ([]models.CertificateTemplate, int64, error)
	}

	// CertificateRepository persists issued certificates
	CertificateRepository interface {
		Create(c *models.Certificate) error
		Save(c *models.Certificate) error
		FindByID(id uint) (*models.Certificate, error)
		FindByNumber(number string) (*models.Certificate, error)
		ExistsByNumber(number string) (bool, error)
		List(filter CertificateFilter) ([]models.Certificate, int64, error)
		Numbers() ([]string, error)
	}
)

type gormTemplateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository returns a GORM-backed TemplateRepository
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &gormTemplateRepository{db: db}
}

func (r *gormTemplateRepository) Create(t *models.CertificateTemplate) error {
	return r.db.Create(t).Error
}

func (r *gormTemplateRepository) Save(t *models.CertificateTemplate) error {
	return r.db.Save(t).Error
}

func (r *gormTemplateRepository) FindByID(id uint) (*models.CertificateTemplate, error) {
	var tpl models.CertificateTemplate
	if err := r.db.Where("id = ?", id).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *gormTemplateRepository) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.CertificateTemplate{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormTemplateRepository) List(filter TemplateFilter) ([]models.CertificateTemplate, int64, error) {
	query := r.db.Model(&models.CertificateTemplate{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templates []models.CertificateTemplate
	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query = query.Offset(offset).Limit(filter.Limit)
	}
	if err := query.Find(&templates).Error; err != nil {
		return nil, 0, err
	}
	return templates, total, nil
}

type gormCertificateRepository struct {
	db *gorm.DB
}

// NewCertificateRepository returns a GORM-backed CertificateRepository
func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &gormCertificateRepository{db: db}
}

func (r *gormCertificateRepository) Create(c *models.Certificate) error {
	return r.db.Create(c).Error
}

func (r *gormCertificateRepository) Save(c *models.Certificate) error {
	return r.db.Save(c).Error
}

func (r *gormCertificateRepository) FindByID(id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.Where("id = ?", id).First(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *gormCertificateRepository) FindByNumber(number string) (*models.Certificate, error) {
	var cert models.Certificate
	if err := r.db.Where("certificate_number = ?", number).First(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *gormCertificateRepository) ExistsByNumber(number string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Certificate{}).
		Where("certificate_number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormCertificateRepository) List(filter CertificateFilter) ([]models.Certificate, int64, error) {
	query := r.db.Model(&models.Certificate{})
	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var certs []models.Certificate
	query = query.Order("created_at desc")
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		query = query.Offset(offset).Limit(filter.Limit)
	}
	if err := query.Find(&certs).Error; err != nil {
		return nil, 0, err
	}
	return certs, total, nil
}

func (r *gormCertificateRepository) Numbers() ([]string, error) {
	var numbers []string
	err := r.db.Model(&models.Certificate{}).Pluck("certificate_number", &numbers).Error
	return numbers, err
}

// isNotFound reports whether err is the repository's record-not-found error
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
