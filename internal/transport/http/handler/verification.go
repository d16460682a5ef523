package handler

import (
	"encoding/json"
	"net/http"

	"github.com/phone-auth-api/internal/application/verification"
	"github.com/phone-auth-api/internal/pkg/validate"
)

// VerificationHandler handles the code request and code exchange endpoints.
type VerificationHandler struct {
	svc         verification.Service
	diagnostics bool
}

func NewVerificationHandler(svc verification.Service, diagnostics bool) *VerificationHandler {
	return &VerificationHandler{svc: svc, diagnostics: diagnostics}
}

// Request issues a fresh verification code for a phone number.
// POST /v1/verification/request
func (h *VerificationHandler) Request(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PhoneNumber string `json:"phoneNumber" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Phone number is required")
		return
	}

	codeID, err := h.svc.RequestCode(r.Context(), body.PhoneNumber)
	if err != nil {
		httpError(w, err, h.diagnostics)
		return
	}
	writeJSON(w, http.StatusOK, CodeIssuedEnvelope{Success: true, CodeID: codeID})
}

// Confirm exchanges a code for a signed identity token.
// POST /v1/verification/confirm
func (h *VerificationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req verification.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Field checks short-circuit in order: code fields first, then profile.
	if req.CodeID == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Missing code ID or verification code")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "Missing first or last name")
		return
	}

	result, err := h.svc.VerifyCode(r.Context(), req)
	if err != nil {
		httpError(w, err, h.diagnostics)
		return
	}
	writeJSON(w, http.StatusOK, VerifiedEnvelope{
		Success:     true,
		UserID:      result.UserID,
		CustomToken: result.CustomToken,
		FirstName:   result.FirstName,
		LastName:    result.LastName,
	})
}
