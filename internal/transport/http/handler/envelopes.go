package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phone-auth-api/internal/domain"
)

// CodeIssuedEnvelope is the response to a verification code request.
type CodeIssuedEnvelope struct {
	Success bool   `json:"success"`
	CodeID  string `json:"codeId"`
}

// VerifiedEnvelope is the response to a successful code exchange.
type VerifiedEnvelope struct {
	Success     bool   `json:"success"`
	UserID      string `json:"userId"`
	CustomToken string `json:"customToken"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// ErrorEnvelope is the generic failure wrapper. Details is only populated in
// non-production diagnostic mode.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorEnvelope{Error: msg})
}

// httpError maps domain sentinel errors to HTTP responses. The three
// verification failure categories share a 400 status but keep distinct
// messages for UX; anything unrecognised is a 500 with a generic message,
// carrying err.Error() as details only when diagnostics are on.
func httpError(w http.ResponseWriter, err error, diagnostics bool) {
	switch {
	case errors.Is(err, domain.ErrCodeExpired):
		writeError(w, http.StatusBadRequest, "Verification code has expired")
	case errors.Is(err, domain.ErrCodeMismatch):
		writeError(w, http.StatusBadRequest, "Incorrect verification code")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusBadRequest, "Verification code not found")
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		env := ErrorEnvelope{Error: "Internal server error"}
		if diagnostics {
			env.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, env)
	}
}
