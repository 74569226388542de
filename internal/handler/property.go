package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/middleware"
	"github.com/uida/property-portal/internal/models"
)

// ownerPhone resolves the authenticated identity and enforces that any
// phone query parameter matches the session.
func (h *Handler) ownerPhone(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	ownerID, phone, err := middleware.OwnerFromContext(r)
	if err != nil {
		h.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return 0, "", false
	}
	if q := r.URL.Query().Get("phone"); q != "" && q != phone {
		h.respondJSON(w, http.StatusForbidden, errorResponse{Error: "phone does not match the session"})
		return 0, "", false
	}
	return ownerID, phone, true
}

// ListProperties returns every property bundle for the logged-in owner
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	_, phone, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	bundles, err := h.svc.PropertyBundles(phone)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"data": bundles})
}

// GetProperty returns one property bundle
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	bundle, err := h.svc.PropertyBundle(ownerID, mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, bundle)
}

type emiQuoteResponse struct {
	Settled           bool          `json:"settled"`
	InstallmentNumber int           `json:"installment_number,omitempty"`
	DueDate           *models.Date  `json:"due_date,omitempty"`
	DaysDelayed       int           `json:"days_delayed"`
	Principal         models.Amount `json:"principal"`
	Interest          models.Amount `json:"interest"`
	LateFee           models.Amount `json:"late_fee"`
	LateFeePerDay     models.Amount `json:"late_fee_per_day"`
	Total             models.Amount `json:"total"`
	PlanID            string        `json:"plan_id"`
}

// EMIQuote returns the server-computed quote for the next installment
func (h *Handler) EMIQuote(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	quote, plan, err := h.svc.EMIQuote(ownerID, mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}

	resp := emiQuoteResponse{
		Settled:       quote.Settled,
		DaysDelayed:   quote.DaysDelayed,
		Principal:     models.NewAmount(quote.Principal),
		Interest:      models.NewAmount(quote.Interest),
		LateFee:       models.NewAmount(quote.LateFee),
		LateFeePerDay: plan.LateFeePerDay,
		Total:         models.NewAmount(quote.Total),
		PlanID:        plan.PlanID,
	}
	if !quote.Settled {
		resp.InstallmentNumber = quote.InstallmentNumber
		due := models.NewDate(quote.DueDate)
		resp.DueDate = &due
	}
	h.respondJSON(w, http.StatusOK, resp)
}

type yearChargeResponse struct {
	FinancialYear  string        `json:"financial_year"`
	BaseAmount     models.Amount `json:"base_amount"`
	LateFeePercent int64         `json:"late_fee_percent"`
	LateFee        models.Amount `json:"late_fee"`
	Total          models.Amount `json:"total"`
}

type serviceChargeQuoteResponse struct {
	UnpaidYears []string             `json:"unpaid_years"`
	BaseAmount  models.Amount        `json:"base_amount"`
	Breakdown   []yearChargeResponse `json:"breakdown,omitempty"`
	TotalBase   models.Amount        `json:"total_base"`
	TotalLate   models.Amount        `json:"total_late_fees"`
	GrandTotal  models.Amount        `json:"grand_total"`
}

func parseYearsParam(raw string) ([]billing.FinancialYear, error) {
	if raw == "" {
		return nil, nil
	}
	var years []billing.FinancialYear
	for _, part := range strings.Split(raw, ",") {
		fy, err := billing.ParseFinancialYear(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		years = append(years, fy)
	}
	return years, nil
}

// ServiceChargeQuote lists the unpaid financial years of a property and,
// when a years parameter is given, prices that selection.
func (h *Handler) ServiceChargeQuote(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := h.ownerPhone(w, r)
	if !ok {
		return
	}

	propertyID := mux.Vars(r)["id"]
	selected, err := parseYearsParam(r.URL.Query().Get("years"))
	if err != nil {
		h.badRequest(w, "years must be a comma-separated list like 2022-2023,2023-2024")
		return
	}

	bundle, err := h.svc.PropertyBundle(ownerID, propertyID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	unpaid, err := h.svc.UnpaidServiceChargeYears(&bundle.PropertyRecord, timeNow())
	if err != nil {
		h.respondError(w, err)
		return
	}

	resp := serviceChargeQuoteResponse{
		UnpaidYears: []string{},
		BaseAmount:  models.NewAmount(billing.BaseCharge(bundle.PropertyRecord.FloorType)),
	}
	for _, fy := range unpaid {
		resp.UnpaidYears = append(resp.UnpaidYears, fy.String())
	}

	if len(selected) > 0 {
		charges, totals, err := h.svc.ServiceChargeQuote(ownerID, propertyID, selected)
		if err != nil {
			h.respondError(w, err)
			return
		}
		for _, yc := range charges {
			resp.Breakdown = append(resp.Breakdown, yearChargeResponse{
				FinancialYear:  yc.Year.String(),
				BaseAmount:     models.NewAmount(yc.BaseAmount),
				LateFeePercent: yc.Percent,
				LateFee:        models.NewAmount(yc.LateFee),
				Total:          models.NewAmount(yc.Total),
			})
		}
		resp.TotalBase = models.NewAmount(totals.Base)
		resp.TotalLate = models.NewAmount(totals.LateFees)
		resp.GrandTotal = models.NewAmount(totals.GrandTotal)
	}

	h.respondJSON(w, http.StatusOK, resp)
}
