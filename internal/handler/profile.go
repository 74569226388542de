package handler

import "net/http"

// GetProfile returns the logged-in owner's profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	_, phone, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	owner, err := h.svc.OwnerByPhone(phone)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, owner)
}

type updateProfileRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateProfile updates the owner's contact details
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.badRequest(w, "a valid email and address are required")
		return
	}

	owner, err := h.svc.UpdateContact(ownerID, req.Email, req.Address)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, owner)
}
