package certificate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTemplateNotFound      = errors.New("certificate template not found")
	ErrTemplateInactive      = errors.New("certificate template is not active")
	ErrDuplicateTemplateName = errors.New("a template with this name already exists")
	ErrEmptyTemplateBody     = errors.New("template body cannot be empty")
	ErrEmptyVariableList     = errors.New("template must declare at least one variable")
	ErrCertificateNotFound   = errors.New("certificate not found")
	ErrAlreadyRevoked        = errors.New("certificate has already been revoked")
	ErrNumberExhausted       = errors.New("could not generate a unique certificate number")
)

// InvalidVariableNameError reports a declared variable name that does not
// match the allowed identifier pattern.
type InvalidVariableNameError struct {
	Name string
}

func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("invalid variable name: %q", e.Name)
}

// DuplicateVariableError reports a variable declared more than once.
type DuplicateVariableError struct {
	Name string
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("duplicate variable name: %q", e.Name)
}

// MissingTemplateVariablesError reports declared variables that never appear
// in the template body. Raised at template create/update time.
type MissingTemplateVariablesError struct {
	Variables []string
}

func (e *MissingTemplateVariablesError) Error() string {
	return "template body is missing declared variables: " + strings.Join(e.Variables, ", ")
}

// MissingRequiredVariablesError reports declared variables absent from a
// caller-supplied data map. A key mapped to an empty value still counts as
// present.
type MissingRequiredVariablesError struct {
	Variables []string
}

func (e *MissingRequiredVariablesError) Error() string {
	return "Missing required variables: " + strings.Join(e.Variables, ", ")
}

// ArtifactGenerationError wraps a failure from the QR encoder.
type ArtifactGenerationError struct {
	Err error
}

func (e *ArtifactGenerationError) Error() string {
	return "failed to generate verification artifact: " + e.Err.Error()
}

func (e *ArtifactGenerationError) Unwrap() error { return e.Err }

// DocumentProductionError wraps a failure while producing or persisting the
// certificate document. When it occurs no certificate row is written.
type DocumentProductionError struct {
	Err error
}

func (e *DocumentProductionError) Error() string {
	return "failed to produce certificate document: " + e.Err.Error()
}

func (e *DocumentProductionError) Unwrap() error { return e.Err }
