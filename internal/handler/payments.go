package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/models"
	"github.com/uida/property-portal/internal/service"
)

type installmentPaymentRequest struct {
	PlanID        string        `json:"plan_id" validate:"required"`
	PaymentNumber int           `json:"payment_number" validate:"required,min=1"`
	PrincipalPaid models.Amount `json:"principal_paid" validate:"required"`
	InterestPaid  models.Amount `json:"interest_paid" validate:"required"`
	LateFeePaid   models.Amount `json:"late_fee_paid"`
	TotalPaid     models.Amount `json:"total_paid" validate:"required"`
	PaymentDate   models.Date   `json:"payment_date" validate:"required"`
	DueDate       models.Date   `json:"due_date" validate:"required"`
	DaysDelayed   int           `json:"days_delayed"`
}

// SubmitInstallmentPayment accepts a batch of exactly one EMI payment
// record, validates it against the server-side quote and settles it.
func (h *Handler) SubmitInstallmentPayment(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	var batch []installmentPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.badRequest(w, "a payment record array is required")
		return
	}
	if len(batch) != 1 {
		h.badRequest(w, "exactly one installment payment must be submitted")
		return
	}
	req := batch[0]
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, "payment record is incomplete")
		return
	}

	inst, err := h.svc.SubmitInstallmentPayment(ownerID, service.InstallmentSubmission{
		PlanID:        req.PlanID,
		PaymentNumber: req.PaymentNumber,
		PrincipalPaid: req.PrincipalPaid,
		InterestPaid:  req.InterestPaid,
		LateFeePaid:   req.LateFeePaid,
		TotalPaid:     req.TotalPaid,
		PaymentDate:   req.PaymentDate,
		DueDate:       req.DueDate,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, inst)
}

type serviceChargePaymentRequest struct {
	PropertyID    string        `json:"property_id" validate:"required"`
	FinancialYear string        `json:"financial_year" validate:"required"`
	BaseAmount    models.Amount `json:"base_amount" validate:"required"`
	LateFee       models.Amount `json:"late_fee"`
	PaymentDate   models.Date   `json:"payment_date" validate:"required"`
}

// SubmitServiceCharges accepts one record per selected financial year and
// settles them as a single batch.
func (h *Handler) SubmitServiceCharges(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	var batch []serviceChargePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		h.badRequest(w, "a service charge record array is required")
		return
	}
	if len(batch) == 0 {
		h.badRequest(w, "at least one service charge must be submitted")
		return
	}

	propertyID := batch[0].PropertyID
	subs := make([]service.ServiceChargeSubmission, 0, len(batch))
	for _, req := range batch {
		if err := h.validate.Struct(req); err != nil {
			h.badRequest(w, "service charge record is incomplete")
			return
		}
		if req.PropertyID != propertyID {
			h.badRequest(w, "all records in a batch must belong to one property")
			return
		}
		fy, err := billing.ParseFinancialYear(req.FinancialYear)
		if err != nil {
			h.badRequest(w, "financial year must look like 2022-2023")
			return
		}
		subs = append(subs, service.ServiceChargeSubmission{
			Year:       fy,
			BaseAmount: req.BaseAmount,
			LateFee:    req.LateFee,
		})
	}

	charges, err := h.svc.SubmitServiceCharges(ownerID, propertyID, subs)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{"data": charges})
}

// PaymentHistory returns the merged payment history of the owner
func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	_, phone, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	history, err := h.svc.PaymentHistory(phone)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"data": history})
}
