package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/integrations/gateway"
	"github.com/uida/property-portal/internal/models"
)

// InstallmentSubmission is a client-submitted EMI payment. The server
// recomputes the quote and rejects submissions that disagree with it, so a
// stale page cannot settle the wrong amount.
type InstallmentSubmission struct {
	PlanID        string
	PaymentNumber int
	PrincipalPaid models.Amount
	InterestPaid  models.Amount
	LateFeePaid   models.Amount
	TotalPaid     models.Amount
	PaymentDate   models.Date
	DueDate       models.Date
}

// SubmitInstallmentPayment validates an EMI submission against the
// server-side quote, settles it with the gateway and records it. The stored
// record is built from the server's own calculation.
func (s *Service) SubmitInstallmentPayment(ownerID int64, sub InstallmentSubmission) (*models.Installment, error) {
	plan, err := s.repo.FindPlanByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	property, err := s.ownedProperty(ownerID, plan.PropertyID)
	if err != nil {
		return nil, err
	}
	owner, err := s.repo.FindOwnerByID(ownerID)
	if err != nil {
		return nil, err
	}

	quote, err := billing.NextInstallment(planTerms(plan), timeNow())
	if err != nil {
		return nil, err
	}
	if quote.Settled {
		return nil, fmt.Errorf("%w: plan %s is fully paid", ErrQuoteMismatch, plan.PlanID)
	}
	if sub.PaymentNumber != quote.InstallmentNumber ||
		!sub.PrincipalPaid.Equal(quote.Principal) ||
		!sub.InterestPaid.Equal(quote.Interest) ||
		!sub.LateFeePaid.Equal(quote.LateFee) {
		return nil, ErrQuoteMismatch
	}

	orderID := "EMI-" + uuid.NewString()
	receipt, err := s.gateway.Charge(gateway.ChargeRequest{
		OrderID:       orderID,
		PropertyID:    property.PropertyID,
		CustomerName:  owner.Name,
		CustomerPhone: owner.Phone,
		Amount:        quote.Total,
		Narration:     fmt.Sprintf("EMI installment %d for %s", quote.InstallmentNumber, property.PropertyID),
	})
	if err != nil {
		s.log.Errorf("Gateway charge failed for plan %s: %v", plan.PlanID, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	inst := &models.Installment{
		PaymentID:     "PAY-" + receipt.TransactionID,
		PlanID:        plan.PlanID,
		PaymentNumber: quote.InstallmentNumber,
		DueDate:       models.NewDate(quote.DueDate),
		PaymentDate:   models.NewDate(timeNow()),
		PrincipalPaid: models.NewAmount(quote.Principal),
		InterestPaid:  models.NewAmount(quote.Interest),
		LateFeePaid:   models.NewAmount(quote.LateFee),
		TotalPaid:     models.NewAmount(quote.Total),
		DaysDelayed:   quote.DaysDelayed,
	}
	if err := s.repo.RecordInstallmentPayment(inst); err != nil {
		// Settled at the bank but not recorded; reconciliation picks these
		// up by order id.
		s.log.Errorf("Settled order %s could not be recorded: %v", orderID, err)
		return nil, err
	}

	s.log.Infof("Installment %d recorded for plan %s (%s)", inst.PaymentNumber, plan.PlanID, inst.TotalPaid.StringFixed(2))
	return inst, nil
}

// ServiceChargeSubmission is one client-submitted service-charge record.
type ServiceChargeSubmission struct {
	Year       billing.FinancialYear
	BaseAmount models.Amount
	LateFee    models.Amount
}

// SubmitServiceCharges settles the selected unpaid financial years for a
// property as one batch: a single gateway charge for the grand total, then
// one recorded charge per year. All-or-nothing from the caller's view. The
// submitted amounts must match the server-side quote.
func (s *Service) SubmitServiceCharges(ownerID int64, propertyID string, subs []ServiceChargeSubmission) ([]models.ServiceCharge, error) {
	property, err := s.ownedProperty(ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	owner, err := s.repo.FindOwnerByID(ownerID)
	if err != nil {
		return nil, err
	}

	selected := make([]billing.FinancialYear, 0, len(subs))
	for _, sub := range subs {
		selected = append(selected, sub.Year)
	}

	today := timeNow()
	quoted, totals, err := s.quoteSelectedYears(property, selected, today)
	if err != nil {
		return nil, err
	}
	for i, yc := range quoted {
		if !subs[i].BaseAmount.Equal(yc.BaseAmount) || !subs[i].LateFee.Equal(yc.LateFee) {
			return nil, fmt.Errorf("%w: year %s", ErrQuoteMismatch, yc.Year)
		}
	}

	orderID := "SC-" + uuid.NewString()
	receipt, err := s.gateway.Charge(gateway.ChargeRequest{
		OrderID:       orderID,
		PropertyID:    property.PropertyID,
		CustomerName:  owner.Name,
		CustomerPhone: owner.Phone,
		Amount:        totals.GrandTotal,
		Narration:     fmt.Sprintf("Service charges for %d year(s) on %s", len(quoted), property.PropertyID),
	})
	if err != nil {
		s.log.Errorf("Gateway charge failed for property %s: %v", property.PropertyID, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	paymentDate := models.NewDate(today)
	charges := make([]models.ServiceCharge, 0, len(quoted))
	for i, yc := range quoted {
		charges = append(charges, models.ServiceCharge{
			ChargeID:      fmt.Sprintf("SC-%s-%d", receipt.TransactionID, i+1),
			PropertyID:    property.PropertyID,
			FinancialYear: yc.Year.String(),
			BaseAmount:    models.NewAmount(yc.BaseAmount),
			LateFee:       models.NewAmount(yc.LateFee),
			Total:         models.NewAmount(yc.Total),
			PaymentDate:   paymentDate,
		})
	}
	if err := s.repo.RecordServiceCharges(charges); err != nil {
		s.log.Errorf("Settled order %s could not be recorded: %v", orderID, err)
		return nil, err
	}

	s.log.Infof("Service charges recorded for %s: %d year(s), total %s",
		property.PropertyID, len(charges), totals.GrandTotal.StringFixed(2))
	return charges, nil
}

// PropertyPayments groups a property's payment history.
type PropertyPayments struct {
	PropertyID     string                 `json:"property_id"`
	SchemeName     string                 `json:"scheme_name"`
	Installments   []models.Installment   `json:"installments"`
	ServiceCharges []models.ServiceCharge `json:"service_charges"`
}

// PaymentHistory returns the full payment history across all of an owner's
// properties.
func (s *Service) PaymentHistory(phone string) ([]PropertyPayments, error) {
	bundles, err := s.PropertyBundles(phone)
	if err != nil {
		return nil, err
	}

	history := make([]PropertyPayments, 0, len(bundles))
	for _, b := range bundles {
		history = append(history, PropertyPayments{
			PropertyID:     b.PropertyRecord.PropertyID,
			SchemeName:     b.PropertyRecord.SchemeName,
			Installments:   b.Installments,
			ServiceCharges: b.ServiceCharges,
		})
	}
	return history, nil
}
