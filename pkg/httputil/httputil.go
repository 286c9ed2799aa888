// Package httputil centralizes JSON response writing and the error-to-response
// mapping applied uniformly by every handler.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "crmsimples/pkg/domainerrors"
)

// ErrorResponse is the body returned for business-rule failures.
type ErrorResponse struct {
	Erro string `json:"erro"`
}

// ValidationResponse is the body returned when individual fields fail
// validation; Detalhes maps field name to message.
type ValidationResponse struct {
	Erro     string            `json:"erro"`
	Detalhes map[string]string `json:"detalhes"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps a domain error to the HTTP contract:
//
//   - CodeNotFound            -> 404 {"erro": message}
//   - any other domain code   -> 400 {"erro": message}
//   - CodeInternal / unknown  -> 500 {"erro": "Erro interno do servidor"}
//
// Internal details never reach the client.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Erro: dErrors.MessageOf(err)})
	case dErrors.HasCode(err, dErrors.CodeValidation),
		dErrors.HasCode(err, dErrors.CodeInvalidCPF),
		dErrors.HasCode(err, dErrors.CodeConflict),
		dErrors.HasCode(err, dErrors.CodeImmutable):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Erro: dErrors.MessageOf(err)})
	default:
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Erro: "Erro interno do servidor"})
	}
}

// WriteBusinessError is WriteError except that not-found is reported as a
// business-rule failure (400). Update and delete keep this behavior for
// compatibility with the original API contract.
func WriteBusinessError(w http.ResponseWriter, err error) {
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Erro: dErrors.MessageOf(err)})
		return
	}
	WriteError(w, err)
}

// WriteValidation writes the field-keyed validation failure body.
func WriteValidation(w http.ResponseWriter, details map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{
		Erro:     "Dados inválidos",
		Detalhes: details,
	})
}
