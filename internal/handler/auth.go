package handler

import "net/http"

type requestCodeRequest struct {
	Phone string `json:"phone" validate:"required,numeric,min=10,max=13"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone" validate:"required,numeric,min=10,max=13"`
	Code  string `json:"code" validate:"required,numeric,len=6"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RequestLoginCode issues a one-time login code for a registered phone.
// The response does not reveal whether the phone is registered.
func (h *Handler) RequestLoginCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.badRequest(w, "a valid phone number is required")
		return
	}

	if err := h.svc.RequestLoginCode(req.Phone); err != nil {
		h.log.Warnf("Login code request failed: %v", err)
	}
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "code sent if the phone is registered"})
}

// VerifyLoginCode exchanges a one-time code for a session token
func (h *Handler) VerifyLoginCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.badRequest(w, "phone and a 6-digit code are required")
		return
	}

	token, err := h.svc.VerifyLoginCode(req.Phone, req.Code)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}
