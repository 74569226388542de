package service

import (
	"time"

	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/models"
	"github.com/uida/property-portal/internal/repository"
)

// PropertyBundles assembles the full portal view for every property of the
// owner registered under the given phone number.
func (s *Service) PropertyBundles(phone string) ([]models.PropertyBundle, error) {
	owner, err := s.repo.FindOwnerByPhone(phone)
	if err != nil {
		return nil, err
	}

	properties, err := s.repo.FindPropertiesByOwner(owner.ID)
	if err != nil {
		return nil, err
	}

	bundles := make([]models.PropertyBundle, 0, len(properties))
	for i := range properties {
		bundle, err := s.assembleBundle(&properties[i])
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, *bundle)
	}
	return bundles, nil
}

// PropertyBundle assembles the portal view of a single property, verifying
// it belongs to the requesting owner.
func (s *Service) PropertyBundle(ownerID int64, propertyID string) (*models.PropertyBundle, error) {
	property, err := s.ownedProperty(ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	return s.assembleBundle(property)
}

func (s *Service) ownedProperty(ownerID int64, propertyID string) (*models.PropertyRecord, error) {
	property, err := s.repo.FindPropertyByID(propertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return property, nil
}

func (s *Service) assembleBundle(property *models.PropertyRecord) (*models.PropertyBundle, error) {
	bundle := &models.PropertyBundle{
		PropertyRecord: *property,
		Installments:   []models.Installment{},
		ServiceCharges: []models.ServiceCharge{},
	}

	plan, err := s.repo.FindPlanByProperty(property.PropertyID)
	if err != nil && err != repository.ErrNotFound {
		return nil, err
	}
	bundle.InstallmentPlan = plan

	if plan != nil {
		installments, err := s.repo.FindInstallmentsByPlan(plan.PlanID)
		if err != nil {
			return nil, err
		}
		if installments != nil {
			bundle.Installments = installments
		}
	}

	charges, err := s.repo.FindServiceCharges(property.PropertyID)
	if err != nil {
		return nil, err
	}
	if charges != nil {
		bundle.ServiceCharges = charges
	}
	return bundle, nil
}

// planTerms converts a stored plan into calculator input.
func planTerms(plan *models.InstallmentPlan) billing.PlanTerms {
	return billing.PlanTerms{
		PrincipalPerInstallment: plan.PrincipalPerInstallment.Decimal,
		InterestPerInstallment:  plan.InterestPerInstallment.Decimal,
		LateFeePerDay:           plan.LateFeePerDay.Decimal,
		IdealInstallments:       plan.IdealInstallments,
		InstallmentsPaid:        plan.InstallmentsPaid,
		FirstDueDate:            plan.FirstDueDate.Time,
	}
}

// EMIQuote computes the next installment due for a property as of today.
func (s *Service) EMIQuote(ownerID int64, propertyID string) (*billing.EMIQuote, *models.InstallmentPlan, error) {
	property, err := s.ownedProperty(ownerID, propertyID)
	if err != nil {
		return nil, nil, err
	}

	plan, err := s.repo.FindPlanByProperty(property.PropertyID)
	if err != nil {
		return nil, nil, err
	}

	quote, err := billing.NextInstallment(planTerms(plan), timeNow())
	if err != nil {
		return nil, nil, err
	}
	return &quote, plan, nil
}

// ServiceChargeQuote prices the selected unpaid financial years for a
// property. The selection must be a contiguous prefix of the unpaid years.
func (s *Service) ServiceChargeQuote(ownerID int64, propertyID string, selected []billing.FinancialYear) ([]billing.YearCharge, billing.ChargeTotals, error) {
	property, err := s.ownedProperty(ownerID, propertyID)
	if err != nil {
		return nil, billing.ChargeTotals{}, err
	}
	return s.quoteSelectedYears(property, selected, timeNow())
}

// UnpaidServiceChargeYears lists the financial years still owed on a
// property, ascending.
func (s *Service) UnpaidServiceChargeYears(property *models.PropertyRecord, today time.Time) ([]billing.FinancialYear, error) {
	charges, err := s.repo.FindServiceCharges(property.PropertyID)
	if err != nil {
		return nil, err
	}

	paid := make([]billing.FinancialYear, 0, len(charges))
	for _, sc := range charges {
		fy, err := billing.ParseFinancialYear(sc.FinancialYear)
		if err != nil {
			s.log.Warnf("Skipping malformed financial year %q on %s", sc.FinancialYear, property.PropertyID)
			continue
		}
		paid = append(paid, fy)
	}

	billable := billing.BillableYears(property.AllotmentDate.Time, today)
	return billing.UnpaidYears(billable, paid), nil
}

func (s *Service) quoteSelectedYears(property *models.PropertyRecord, selected []billing.FinancialYear, today time.Time) ([]billing.YearCharge, billing.ChargeTotals, error) {
	unpaid, err := s.UnpaidServiceChargeYears(property, today)
	if err != nil {
		return nil, billing.ChargeTotals{}, err
	}
	if err := billing.ValidateSelection(unpaid, selected); err != nil {
		return nil, billing.ChargeTotals{}, err
	}

	base := billing.BaseCharge(property.FloorType)
	charges, totals := billing.QuoteServiceCharges(selected, today, base)
	return charges, totals, nil
}
