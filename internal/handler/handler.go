package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/repository"
	"github.com/uida/property-portal/internal/service"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validate
	log      *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

// timeNow is swapped out in tests.
var timeNow = time.Now

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.log.Errorf("Failed to encode response: %v", err)
		}
	}
}

// respondError maps domain errors onto HTTP statuses. Unknown errors get a
// generic 500 so internals never leak to the client.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, repository.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, "property does not belong to you"
	case errors.Is(err, service.ErrInvalidLoginCode):
		status, message = http.StatusUnauthorized, "invalid or expired login code"
	case errors.Is(err, service.ErrQuoteMismatch):
		status, message = http.StatusUnprocessableEntity, "submitted payment does not match the amount due"
	case errors.Is(err, billing.ErrPlanIncomplete):
		status, message = http.StatusUnprocessableEntity, "installment plan details are not available"
	case errors.Is(err, billing.ErrSelectionNotPrefix),
		errors.Is(err, billing.ErrSelectionGap),
		errors.Is(err, billing.ErrYearNotSelectable):
		status, message = http.StatusUnprocessableEntity, "years must be selected starting from the earliest unpaid year"
	case errors.Is(err, service.ErrDocumentTooLarge),
		errors.Is(err, service.ErrDocumentNotPDF),
		errors.Is(err, service.ErrUnknownDocument):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, service.ErrGatewayUnavailable):
		status, message = http.StatusBadGateway, "payment could not be processed, please try again"
	}

	if status == http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
	}
	h.respondJSON(w, status, errorResponse{Error: message})
}

func (h *Handler) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
