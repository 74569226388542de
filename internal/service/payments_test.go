package service

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uida/property-portal/internal/billing"
	"github.com/uida/property-portal/internal/config"
	"github.com/uida/property-portal/internal/integrations/gateway"
	"github.com/uida/property-portal/internal/models"
	"github.com/uida/property-portal/internal/repository"
)

// fakeStore backs the service with in-memory fixtures. Methods a test never
// reaches fall through to the embedded nil Store.
type fakeStore struct {
	Store
	owner     *models.Owner
	property  *models.PropertyRecord
	plan      *models.InstallmentPlan
	charges   []models.ServiceCharge
	loginCode *repository.LoginCode

	recordedInstallment *models.Installment
	recordedCharges     []models.ServiceCharge
	createdHash         string
	consumed            bool
}

func (f *fakeStore) FindOwnerByPhone(phone string) (*models.Owner, error) {
	if f.owner == nil || f.owner.Phone != phone {
		return nil, repository.ErrNotFound
	}
	return f.owner, nil
}

func (f *fakeStore) FindOwnerByID(id int64) (*models.Owner, error) {
	if f.owner == nil || f.owner.ID != id {
		return nil, repository.ErrNotFound
	}
	return f.owner, nil
}

func (f *fakeStore) FindPropertyByID(propertyID string) (*models.PropertyRecord, error) {
	if f.property == nil || f.property.PropertyID != propertyID {
		return nil, repository.ErrNotFound
	}
	return f.property, nil
}

func (f *fakeStore) FindPlanByID(planID string) (*models.InstallmentPlan, error) {
	if f.plan == nil || f.plan.PlanID != planID {
		return nil, repository.ErrNotFound
	}
	return f.plan, nil
}

func (f *fakeStore) FindServiceCharges(propertyID string) ([]models.ServiceCharge, error) {
	return f.charges, nil
}

func (f *fakeStore) RecordInstallmentPayment(inst *models.Installment) error {
	f.recordedInstallment = inst
	return nil
}

func (f *fakeStore) RecordServiceCharges(charges []models.ServiceCharge) error {
	f.recordedCharges = charges
	return nil
}

func (f *fakeStore) CreateLoginCode(ownerID int64, codeHash string, expiresAt time.Time) error {
	f.createdHash = codeHash
	return nil
}

func (f *fakeStore) LatestLoginCode(ownerID int64) (*repository.LoginCode, error) {
	if f.loginCode == nil {
		return nil, repository.ErrNotFound
	}
	return f.loginCode, nil
}

func (f *fakeStore) ConsumeLoginCode(id int64) error {
	f.consumed = true
	return nil
}

type fakeGateway struct {
	calls []gateway.ChargeRequest
	err   error
}

func (g *fakeGateway) Charge(req gateway.ChargeRequest) (*gateway.Receipt, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.calls = append(g.calls, req)
	return &gateway.Receipt{OrderID: req.OrderID, TransactionID: "TXN100", Status: "SUCCESS"}, nil
}

func newTestService(store *fakeStore, gw *fakeGateway) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewService(store, gw, log, &config.Config{JWTSecret: "test-secret"})
}

func setNow(t *testing.T, now time.Time) {
	t.Helper()
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = time.Now })
}

func amt(s string) models.Amount {
	return models.NewAmount(decimal.RequireFromString(s))
}

func billingStore() *fakeStore {
	return &fakeStore{
		owner: &models.Owner{ID: 7, Phone: "9452624111", Name: "Asha Devi"},
		property: &models.PropertyRecord{
			PropertyID:    "SHOP-114",
			OwnerID:       7,
			SchemeName:    "Carpet Expo Mart",
			FloorType:     "UGF",
			AllotmentDate: models.NewDate(time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC)),
		},
		plan: &models.InstallmentPlan{
			PlanID:                  "PL-114",
			PropertyID:              "SHOP-114",
			PrincipalPerInstallment: amt("25000"),
			InterestPerInstallment:  amt("1500"),
			LateFeePerDay:           amt("50"),
			IdealInstallments:       4,
			InstallmentsPaid:        1,
			FirstDueDate:            models.NewDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
}

// The second installment of the fixture plan fell due 2024-04-01, so on
// 2024-07-01 it is 91 days late: 25000 + 1500 + 91*50 = 31050.
func matchingSubmission() InstallmentSubmission {
	return InstallmentSubmission{
		PlanID:        "PL-114",
		PaymentNumber: 2,
		PrincipalPaid: amt("25000"),
		InterestPaid:  amt("1500"),
		LateFeePaid:   amt("4550"),
		TotalPaid:     amt("31050"),
	}
}

func TestSubmitInstallmentPaymentSettlesMatchingQuote(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	inst, err := svc.SubmitInstallmentPayment(7, matchingSubmission())
	require.NoError(t, err)

	require.Len(t, gw.calls, 1)
	assert.True(t, gw.calls[0].Amount.Equal(decimal.RequireFromString("31050")))

	require.NotNil(t, store.recordedInstallment)
	assert.Equal(t, "PAY-TXN100", inst.PaymentID)
	assert.Equal(t, 2, inst.PaymentNumber)
	assert.Equal(t, 91, inst.DaysDelayed)
	assert.Equal(t, "31050.00", inst.TotalPaid.StringFixed(2))
}

func TestSubmitInstallmentPaymentRejectsStaleQuote(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	// A quote from an earlier day carries a smaller late fee.
	sub := matchingSubmission()
	sub.LateFeePaid = amt("4500")
	sub.TotalPaid = amt("31000")

	_, err := svc.SubmitInstallmentPayment(7, sub)
	assert.ErrorIs(t, err, ErrQuoteMismatch)
	assert.Empty(t, gw.calls)
	assert.Nil(t, store.recordedInstallment)
}

func TestSubmitInstallmentPaymentRejectsSettledPlan(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	store.plan.InstallmentsPaid = 4
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	_, err := svc.SubmitInstallmentPayment(7, matchingSubmission())
	assert.ErrorIs(t, err, ErrQuoteMismatch)
	assert.Empty(t, gw.calls)
}

func TestSubmitInstallmentPaymentGatewayFailure(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{err: errors.New("connection refused")}
	svc := newTestService(store, gw)

	_, err := svc.SubmitInstallmentPayment(7, matchingSubmission())
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Nil(t, store.recordedInstallment)
}

func TestSubmitServiceChargesSettlesMatchingQuote(t *testing.T) {
	// FY 2024-2025; unpaid years are 2022-2023 through 2024-2025. The
	// earliest is two years late, so 10% of the UGF tariff accrues.
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	charges, err := svc.SubmitServiceCharges(7, "SHOP-114", []ServiceChargeSubmission{{
		Year:       billing.FinancialYear{Start: 2022},
		BaseAmount: amt("11005"),
		LateFee:    amt("1100.50"),
	}})
	require.NoError(t, err)

	require.Len(t, gw.calls, 1)
	assert.True(t, gw.calls[0].Amount.Equal(decimal.RequireFromString("12105.5")))

	require.Len(t, charges, 1)
	assert.Equal(t, "SC-TXN100-1", charges[0].ChargeID)
	assert.Equal(t, "2022-2023", charges[0].FinancialYear)
	assert.Equal(t, "12105.50", charges[0].Total.StringFixed(2))
	assert.Len(t, store.recordedCharges, 1)
}

func TestSubmitServiceChargesRejectsTamperedAmount(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	_, err := svc.SubmitServiceCharges(7, "SHOP-114", []ServiceChargeSubmission{{
		Year:       billing.FinancialYear{Start: 2022},
		BaseAmount: amt("10610"),
		LateFee:    amt("1061"),
	}})
	assert.ErrorIs(t, err, ErrQuoteMismatch)
	assert.Empty(t, gw.calls)
	assert.Nil(t, store.recordedCharges)
}

func TestSubmitServiceChargesRejectsNonPrefixSelection(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	// 2023-2024 without the earlier unpaid 2022-2023.
	_, err := svc.SubmitServiceCharges(7, "SHOP-114", []ServiceChargeSubmission{{
		Year:       billing.FinancialYear{Start: 2023},
		BaseAmount: amt("11005"),
		LateFee:    amt("550.25"),
	}})
	assert.ErrorIs(t, err, billing.ErrSelectionNotPrefix)
	assert.Empty(t, gw.calls)
}

func TestSubmitServiceChargesForbidden(t *testing.T) {
	setNow(t, time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC))
	store := billingStore()
	gw := &fakeGateway{}
	svc := newTestService(store, gw)

	_, err := svc.SubmitServiceCharges(8, "SHOP-114", []ServiceChargeSubmission{{
		Year:       billing.FinancialYear{Start: 2022},
		BaseAmount: amt("11005"),
		LateFee:    amt("1100.50"),
	}})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, gw.calls)
}
