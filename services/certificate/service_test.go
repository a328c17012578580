package certificate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolms/models"
)

func certificateCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Certificate{}).Count(&count).Error)
	return count
}

func TestGenerate(t *testing.T) {
	db := openTestDB(t)
	renderer := &fakeRenderer{}
	svc := newTestService(t, db, renderer)
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John Doe", "class": "Class 10"},
		IssuedBy:   7,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^CERT-CHAR-\d{4}-\d{4}$`, cert.CertificateNumber)
	assert.Equal(t, models.CertificateStatusActive, cert.Status)
	assert.Equal(t, models.TypeCharacter, cert.Type)
	assert.Equal(t, uint(1), cert.StudentID)
	assert.Equal(t, uint(7), cert.IssuedBy)
	assert.Equal(t, testIssuedAt, cert.IssueDate)
	assert.Equal(t, "2081-06-15", cert.IssueDateBS)
	assert.Equal(t, "/certificates/"+cert.CertificateNumber+".pdf", cert.CertificateURL)
	assert.Equal(t,
		"https://school.example.com/api/v1/certificates/verify/"+cert.CertificateNumber,
		cert.VerificationURL)
	assert.Contains(t, cert.QRCode, "data:image/png;base64,")

	// the data map is augmented with the derived fields
	assert.Equal(t, cert.CertificateNumber, cert.Data["certificate_number"])
	assert.Equal(t, "2024-06-15", cert.Data["issue_date"])
	assert.Equal(t, "2081-06-15", cert.Data["issue_date_bs"])
	assert.Equal(t, cert.VerificationURL, cert.Data["verification_url"])

	// row was persisted
	persisted, err := NewCertificateRepository(db).FindByNumber(cert.CertificateNumber)
	require.NoError(t, err)
	assert.Equal(t, cert.ID, persisted.ID)
	assert.Equal(t, 1, renderer.calls)
}

func TestGenerateWithExplicitDates(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	issueDate := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	cert, err := svc.Generate(GenerateInput{
		TemplateID:  tpl.ID,
		StudentID:   2,
		Data:        map[string]interface{}{"student_name": "Gita", "class": "Class 9"},
		IssuedBy:    7,
		IssueDate:   &issueDate,
		IssueDateBS: "2080-08-15",
	})
	require.NoError(t, err)
	assert.Equal(t, issueDate, cert.IssueDate)
	assert.Equal(t, "2080-08-15", cert.IssueDateBS)
}

func TestGenerateMissingRequiredVariables(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	_, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John"},
		IssuedBy:   1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required variables: class")
	assert.Equal(t, int64(0), certificateCount(t, db))
}

func TestGenerateTemplateNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})

	_, err := svc.Generate(GenerateInput{TemplateID: 999, StudentID: 1, Data: map[string]interface{}{}})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestGenerateInactiveTemplate(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	_, err := svc.templates.Deactivate(tpl.ID)
	require.NoError(t, err)

	_, err = svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	assert.ErrorIs(t, err, ErrTemplateInactive)
}

func TestGenerateDocumentFailurePersistsNothing(t *testing.T) {
	db := openTestDB(t)
	renderer := &fakeRenderer{err: errors.New("disk full")}
	svc := newTestService(t, db, renderer)
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	_, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	require.Error(t, err)

	var docErr *DocumentProductionError
	assert.ErrorAs(t, err, &docErr)
	// no partial row with a broken document pointer
	assert.Equal(t, int64(0), certificateCount(t, db))
}

func TestBulkGenerateBatchIndependence(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	items := make([]BulkItem, 5)
	for i := range items {
		data := map[string]interface{}{
			"student_name": fmt.Sprintf("Student %d", i+1),
			"class":        "Class 10",
		}
		if i == 2 {
			delete(data, "class") // deliberately malformed
		}
		items[i] = BulkItem{StudentID: uint(i + 1), Data: data}
	}

	result, err := svc.BulkGenerate(tpl.ID, items, 7, nil, "")
	require.NoError(t, err)

	require.Len(t, result.Success, 4)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, uint(3), result.Failed[0].StudentID)
	assert.Contains(t, result.Failed[0].Error, "Missing required variables: class")

	// success list follows input order
	wantStudents := []uint{1, 2, 4, 5}
	for i, cert := range result.Success {
		assert.Equal(t, wantStudents[i], cert.StudentID)
	}

	// partial batches persist: the four good rows are committed
	assert.Equal(t, int64(4), certificateCount(t, db))
}

func TestBulkGenerateHundredItems(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	items := make([]BulkItem, 100)
	for i := range items {
		id := uint(i + 1)
		data := map[string]interface{}{"student_name": fmt.Sprintf("Student %d", id)}
		if id%5 != 0 {
			data["class"] = "Class 10"
		}
		items[i] = BulkItem{StudentID: id, Data: data}
	}

	result, err := svc.BulkGenerate(tpl.ID, items, 7, nil, "")
	require.NoError(t, err)

	assert.Len(t, result.Success, 80)
	assert.Len(t, result.Failed, 20)
	for _, failure := range result.Failed {
		assert.Zero(t, failure.StudentID%5, "failed student %d is not a multiple of 5", failure.StudentID)
	}

	// all certificates in one batch carry the same issue dates and unique numbers
	numbers := make(map[string]bool)
	for _, cert := range result.Success {
		assert.Equal(t, testIssuedAt, cert.IssueDate)
		assert.Equal(t, "2081-06-15", cert.IssueDateBS)
		assert.False(t, numbers[cert.CertificateNumber], "duplicate number %s", cert.CertificateNumber)
		numbers[cert.CertificateNumber] = true
	}
}

func TestBulkGenerateEmptyInput(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	result, err := svc.BulkGenerate(tpl.ID, nil, 7, nil, "")
	require.NoError(t, err)
	assert.Empty(t, result.Success)
	assert.Empty(t, result.Failed)
	assert.Equal(t, int64(0), certificateCount(t, db))
}

func TestBulkGenerateTemplatePreconditionAbortsBatch(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	_, err := svc.templates.Deactivate(tpl.ID)
	require.NoError(t, err)

	items := []BulkItem{{StudentID: 1, Data: map[string]interface{}{"student_name": "John", "class": "Class 10"}}}

	result, err := svc.BulkGenerate(tpl.ID, items, 7, nil, "")
	assert.ErrorIs(t, err, ErrTemplateInactive)
	assert.Nil(t, result)
	assert.Equal(t, int64(0), certificateCount(t, db))

	_, err = svc.BulkGenerate(999, items, 7, nil, "")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestVerify(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John Doe", "class": "Class 10"},
		IssuedBy:   7,
	})
	require.NoError(t, err)

	t.Run("empty number", func(t *testing.T) {
		result := svc.Verify("")
		assert.False(t, result.Valid)
		assert.Equal(t, "Certificate number is required", result.Message)
		assert.Nil(t, result.Certificate)
	})

	t.Run("whitespace number", func(t *testing.T) {
		result := svc.Verify("   ")
		assert.False(t, result.Valid)
		assert.Equal(t, "Certificate number is required", result.Message)
	})

	t.Run("unknown number", func(t *testing.T) {
		result := svc.Verify("CERT-CHAR-2024-9999x")
		assert.False(t, result.Valid)
		assert.Equal(t, "Certificate not found. Please verify the certificate number and try again.", result.Message)
	})

	t.Run("active certificate", func(t *testing.T) {
		result := svc.Verify(cert.CertificateNumber)
		assert.True(t, result.Valid)
		assert.Equal(t, "Certificate is valid and authentic", result.Message)
		require.NotNil(t, result.Certificate)
		assert.Equal(t, cert.CertificateNumber, result.Certificate.CertificateNumber)
		assert.Equal(t, models.TypeCharacter, result.Certificate.Type)
		assert.Equal(t, uint(1), result.Certificate.StudentID)
		assert.Equal(t, "2024-06-15", result.Certificate.IssueDate)
		assert.Equal(t, "2081-06-15", result.Certificate.IssueDateBS)
		assert.Equal(t, models.CertificateStatusActive, result.Certificate.Status)
		assert.Equal(t, cert.VerificationURL, result.Certificate.VerificationURL)
		assert.NotNil(t, result.Certificate.Data)
	})

	t.Run("revoked certificate", func(t *testing.T) {
		revokedAt := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return revokedAt }
		_, err := svc.Revoke(cert.ID, 9, "Student transferred")
		require.NoError(t, err)

		result := svc.Verify(cert.CertificateNumber)
		assert.False(t, result.Valid)
		assert.Contains(t, result.Message, "revoked")
		assert.Contains(t, result.Message, "2024-02-01")
		assert.Contains(t, result.Message, "Student transferred")
		require.NotNil(t, result.Certificate)
		assert.Equal(t, models.CertificateStatusRevoked, result.Certificate.Status)
		assert.Equal(t, "Student transferred", result.Certificate.RevokedReason)
	})
}

func TestVerifyRevokedWithoutReason(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	require.NoError(t, err)

	_, err = svc.Revoke(cert.ID, 9, "")
	require.NoError(t, err)

	result := svc.Verify(cert.CertificateNumber)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Reason: Not specified")
}

func TestRevoke(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	require.NoError(t, err)

	revoked, err := svc.Revoke(cert.ID, 9, "Issued in error")
	require.NoError(t, err)
	assert.Equal(t, models.CertificateStatusRevoked, revoked.Status)
	require.NotNil(t, revoked.RevokedAt)
	assert.Equal(t, testIssuedAt, *revoked.RevokedAt)
	require.NotNil(t, revoked.RevokedBy)
	assert.Equal(t, uint(9), *revoked.RevokedBy)
	assert.Equal(t, "Issued in error", revoked.RevokedReason)
}

func TestRevokeAlreadyRevoked(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	require.NoError(t, err)

	_, err = svc.Revoke(cert.ID, 9, "first reason")
	require.NoError(t, err)

	_, err = svc.Revoke(cert.ID, 10, "second reason")
	assert.ErrorIs(t, err, ErrAlreadyRevoked)

	// original revocation metadata is untouched
	persisted, err := svc.Get(cert.ID)
	require.NoError(t, err)
	assert.Equal(t, "first reason", persisted.RevokedReason)
	require.NotNil(t, persisted.RevokedBy)
	assert.Equal(t, uint(9), *persisted.RevokedBy)
}

func TestRevokeNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})

	_, err := svc.Revoke(424242, 1, "whatever")
	assert.ErrorIs(t, err, ErrCertificateNotFound)
}

func TestCertificateNumberImmutableUnderRevoke(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	require.NoError(t, err)

	revoked, err := svc.Revoke(cert.ID, 2, "cleanup")
	require.NoError(t, err)
	assert.Equal(t, cert.CertificateNumber, revoked.CertificateNumber)
}

func TestTypeSnapshotSurvivesTemplateEdit(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, &fakeRenderer{})
	tpl := createCharacterTemplate(t, svc, "Character Certificate")

	cert, err := svc.Generate(GenerateInput{
		TemplateID: tpl.ID,
		StudentID:  1,
		Data:       map[string]interface{}{"student_name": "John", "class": "Class 10"},
	})
	require.NoError(t, err)

	newType := models.TypeConduct
	_, err = svc.templates.Update(tpl.ID, UpdateTemplate{Type: &newType})
	require.NoError(t, err)

	persisted, err := svc.Get(cert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TypeCharacter, persisted.Type)
}
