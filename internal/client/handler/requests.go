package handler

import (
	"regexp"
	"strings"

	"crmsimples/internal/client/models"
	"crmsimples/internal/client/service"
)

var (
	// Simple shape check; deliverability is not this service's problem.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Optional country code, optional area code, 4-5 digit prefix, 4 digit suffix.
	phonePattern = regexp.MustCompile(`^(\+?\d{1,3}[\s.-]?)?(\(?\d{2,3}\)?[\s.-]?)?\d{4,5}[\s.-]?\d{4}$`)
)

// CreateClientRequest is the POST /clients body.
type CreateClientRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	CPF    string `json:"taxId"`
	Status string `json:"status"`
}

// Validate checks field-level constraints and returns a field-keyed message
// map, empty when the request is well formed. Business rules (checksum,
// uniqueness) belong to the service.
func (r CreateClientRequest) Validate() map[string]string {
	details := make(map[string]string)

	if len(strings.TrimSpace(r.Name)) < 3 {
		details["name"] = "obrigatório, tamanho mínimo 3 caracteres"
	}
	if strings.TrimSpace(r.Email) == "" {
		details["email"] = "obrigatório"
	} else if !emailPattern.MatchString(r.Email) {
		details["email"] = "formato de email inválido"
	}
	if r.Phone != "" && !phonePattern.MatchString(r.Phone) {
		details["phone"] = "formato de telefone inválido"
	}
	if strings.TrimSpace(r.CPF) == "" {
		details["taxId"] = "obrigatório"
	}
	if strings.TrimSpace(r.Status) != "" && !models.Status(r.Status).IsValid() {
		details["status"] = "deve ser ACTIVE, INACTIVE ou PROSPECT"
	}

	return details
}

// ToModel builds the candidate record handed to the service.
func (r CreateClientRequest) ToModel() *models.Client {
	return &models.Client{
		Name:   strings.TrimSpace(r.Name),
		Email:  r.Email,
		Phone:  r.Phone,
		CPF:    r.CPF,
		Status: models.Status(r.Status),
	}
}

// UpdateClientRequest is the PUT /clients/{id} body. Absent fields are left
// unchanged; null and absent are equivalent.
type UpdateClientRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
	CPF    *string `json:"taxId"`
	Status *string `json:"status"`
}

// Validate checks only the fields present in the patch.
func (r UpdateClientRequest) Validate() map[string]string {
	details := make(map[string]string)

	if r.Name != nil && len(strings.TrimSpace(*r.Name)) < 3 {
		details["name"] = "obrigatório, tamanho mínimo 3 caracteres"
	}
	if r.Email != nil && !emailPattern.MatchString(*r.Email) {
		details["email"] = "formato de email inválido"
	}
	if r.Phone != nil && *r.Phone != "" && !phonePattern.MatchString(*r.Phone) {
		details["phone"] = "formato de telefone inválido"
	}
	if r.Status != nil && !models.Status(*r.Status).IsValid() {
		details["status"] = "deve ser ACTIVE, INACTIVE ou PROSPECT"
	}

	return details
}

// ToParams converts the request into service update parameters.
func (r UpdateClientRequest) ToParams() service.UpdateParams {
	return service.UpdateParams{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		CPF:    r.CPF,
		Status: r.Status,
	}
}
