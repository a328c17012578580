package certificate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"schoolms/models"
)

var (
	variableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	placeholderRe  = regexp.MustCompile(`\{\{([^}]+)\}\}`)
)

type (
	// NewTemplate carries the fields for template creation
	NewTemplate struct {
		Name      string
		Type      string
		Body      string
		Variables []string
		Active    *bool
	}

	// UpdateTemplate carries a partial update; nil fields are left unchanged
	UpdateTemplate struct {
		Name      *string
		Type      *string
		Body      *string
		Variables []string
		Active    *bool
	}

	// TemplateService is the template store: it validates, persists and
	// renders certificate templates.
	TemplateService struct {
		repo TemplateRepository
	}
)

// NewTemplateService returns a TemplateService backed by repo
func NewTemplateService(repo TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

// Create validates and persists a new template. Active defaults to true.
func (s *TemplateService) Create(in NewTemplate) (*models.CertificateTemplate, error) {
	if err := validateVariableNames(in.Variables); err != nil {
		return nil, err
	}
	if err := validateTemplateBody(in.Body, in.Variables); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(in.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateTemplateName
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	tpl := &models.CertificateTemplate{
		Name:     in.Name,
		Type:     in.Type,
		Body:     in.Body,
		IsActive: active,
	}
	tpl.SetVariableNames(in.Variables)

	if err := s.repo.Create(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Update applies a partial update, re-running the full validation against the
// merged body and variable list whenever either changes.
func (s *TemplateService) Update(id uint, in UpdateTemplate) (*models.CertificateTemplate, error) {
	tpl, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if in.Name != nil && *in.Name != tpl.Name {
		exists, err := s.repo.ExistsByName(*in.Name, tpl.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateTemplateName
		}
		tpl.Name = *in.Name
	}
	if in.Type != nil {
		tpl.Type = *in.Type
	}

	body := tpl.Body
	variables := tpl.VariableNames()
	changed := false
	if in.Body != nil {
		body = *in.Body
		changed = true
	}
	if in.Variables != nil {
		variables = in.Variables
		changed = true
	}
	if changed {
		if err := validateVariableNames(variables); err != nil {
			return nil, err
		}
		if err := validateTemplateBody(body, variables); err != nil {
			return nil, err
		}
		tpl.Body = body
		tpl.SetVariableNames(variables)
	}

	if in.Active != nil {
		tpl.IsActive = *in.Active
	}

	if err := s.repo.Save(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Get returns the template with the given id
func (s *TemplateService) Get(id uint) (*models.CertificateTemplate, error) {
	tpl, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return tpl, nil
}

// List returns templates matching filter plus the unpaged total
func (s *TemplateService) List(filter TemplateFilter) ([]models.CertificateTemplate, int64, error) {
	return s.repo.List(filter)
}

// Deactivate soft-deletes a template by clearing its active flag. The row is
// kept so issued certificates still resolve their template.
func (s *TemplateService) Deactivate(id uint) (*models.CertificateTemplate, error) {
	active := false
	return s.Update(id, UpdateTemplate{Active: &active})
}

// Render substitutes the data map into the template body. Every declared
// variable must be present as a key in data; presence is enough, an empty
// value still satisfies the check.
func (s *TemplateService) Render(id uint, data map[string]interface{}) (string, error) {
	tpl, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if !tpl.IsActive {
		return "", ErrTemplateInactive
	}
	if missing := missingVariables(tpl.VariableNames(), data); len(missing) > 0 {
		return "", &MissingRequiredVariablesError{Variables: missing}
	}
	return renderBody(tpl.Body, data), nil
}

// validateVariableNames rejects empty lists, malformed names and duplicates
func validateVariableNames(variables []string) error {
	if len(variables) == 0 {
		return ErrEmptyVariableList
	}
	seen := make(map[string]bool, len(variables))
	for _, name := range variables {
		if !variableNameRe.MatchString(name) {
			return &InvalidVariableNameError{Name: name}
		}
		if seen[name] {
			return &DuplicateVariableError{Name: name}
		}
		seen[name] = true
	}
	return nil
}

// validateTemplateBody rejects an empty body and any declared variable that
// never appears in it. Placeholders in the body that are not declared are
// tolerated; rendering blanks them out.
func validateTemplateBody(body string, variables []string) error {
	if strings.TrimSpace(body) == "" {
		return ErrEmptyTemplateBody
	}
	inBody := make(map[string]bool)
	for _, name := range extractVariables(body) {
		inBody[name] = true
	}
	var missing []string
	for _, name := range variables {
		if !inBody[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingTemplateVariablesError{Variables: missing}
	}
	return nil
}

// extractVariables returns the trimmed placeholder names found in body, in
// first-occurrence order with duplicates collapsed
func extractVariables(body string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, match := range placeholderRe.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(match[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// missingVariables returns declared variables absent as keys from data,
// preserving declaration order
func missingVariables(declared []string, data map[string]interface{}) []string {
	var missing []string
	for _, name := range declared {
		if _, ok := data[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// renderBody substitutes every {{ name }} occurrence with the stringified
// value from data. Whitespace inside the braces is ignored and placeholders
// without a matching key are replaced with the empty string.
func renderBody(body string, data map[string]interface{}) string {
	return placeholderRe.ReplaceAllStringFunc(body, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		value, ok := data[name]
		if !ok {
			return ""
		}
		return stringifyValue(value)
	})
}

// stringifyValue renders a data map value for substitution
func stringifyValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		return value.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", value)
	}
}
