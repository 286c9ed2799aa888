package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateClientRequestValidate(t *testing.T) {
	valid := CreateClientRequest{
		Name:  "Joana Silva",
		Email: "joana@x.com",
		Phone: "+55 (11) 91234-5678",
		CPF:   "123.456.789-09",
	}

	t.Run("well-formed request has no details", func(t *testing.T) {
		assert.Empty(t, valid.Validate())
	})

	t.Run("name shorter than 3 after trimming", func(t *testing.T) {
		req := valid
		req.Name = " Jo "
		assert.Contains(t, req.Validate(), "name")
	})

	t.Run("email shape", func(t *testing.T) {
		for _, email := range []string{"", "plain", "a@b", "a b@x.com"} {
			req := valid
			req.Email = email
			assert.Contains(t, req.Validate(), "email", "email %q should be rejected", email)
		}
	})

	t.Run("phone is optional but validated when present", func(t *testing.T) {
		req := valid
		req.Phone = ""
		assert.Empty(t, req.Validate())

		for _, phone := range []string{"abc", "12", "1234567", "91234567890123456789"} {
			req.Phone = phone
			assert.Contains(t, req.Validate(), "phone", "phone %q should be rejected", phone)
		}

		for _, phone := range []string{"91234-5678", "(11) 91234-5678", "+55 11 91234 5678", "1234-5678"} {
			req.Phone = phone
			assert.Empty(t, req.Validate(), "phone %q should be accepted", phone)
		}
	})

	t.Run("cpf presence only, checksum is a business rule", func(t *testing.T) {
		req := valid
		req.CPF = " "
		assert.Contains(t, req.Validate(), "taxId")

		req.CPF = "not-checked-here"
		assert.Empty(t, req.Validate())
	})

	t.Run("status enum when present", func(t *testing.T) {
		req := valid
		req.Status = "PROSPECT"
		assert.Empty(t, req.Validate())

		req.Status = "SUSPENDED"
		assert.Contains(t, req.Validate(), "status")
	})
}

func TestUpdateClientRequestValidate(t *testing.T) {
	str := func(v string) *string { return &v }

	t.Run("empty patch is valid", func(t *testing.T) {
		assert.Empty(t, UpdateClientRequest{}.Validate())
	})

	t.Run("present fields are checked", func(t *testing.T) {
		details := UpdateClientRequest{
			Name:   str("Jo"),
			Email:  str("bad"),
			Phone:  str("abc"),
			Status: str("SUSPENDED"),
		}.Validate()
		assert.Contains(t, details, "name")
		assert.Contains(t, details, "email")
		assert.Contains(t, details, "phone")
		assert.Contains(t, details, "status")
	})

	t.Run("clearing phone is allowed", func(t *testing.T) {
		assert.Empty(t, UpdateClientRequest{Phone: str("")}.Validate())
	})
}
