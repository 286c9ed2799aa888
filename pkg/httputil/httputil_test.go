package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dErrors "crmsimples/pkg/domainerrors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error hides detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("db broke"), dErrors.CodeInternal, "failed to persist client"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["erro"] != "Erro interno do servidor" {
			t.Fatalf("expected generic message, got %q", body["erro"])
		}
	})

	t.Run("unrecognized error is treated as internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("plain error"))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})

	t.Run("business error includes its message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeConflict, "CPF já cadastrado"))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}

		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if body["erro"] != "CPF já cadastrado" {
			t.Fatalf("expected business message, got %q", body["erro"])
		}
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeNotFound, "Cliente não encontrado"))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}

func TestWriteBusinessError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteBusinessError(w, dErrors.New(dErrors.CodeNotFound, "Cliente não encontrado"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected not-found downgraded to %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestWriteValidation(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidation(w, map[string]string{"name": "obrigatório"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var body struct {
		Erro     string            `json:"erro"`
		Detalhes map[string]string `json:"detalhes"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Erro != "Dados inválidos" {
		t.Fatalf("expected validation envelope, got %q", body.Erro)
	}
	if body.Detalhes["name"] != "obrigatório" {
		t.Fatalf("expected field detail, got %v", body.Detalhes)
	}
}
