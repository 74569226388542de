package service

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uida/property-portal/internal/config"
	"github.com/uida/property-portal/internal/integrations/gateway"
	"github.com/uida/property-portal/internal/models"
	"github.com/uida/property-portal/internal/repository"
)

// Service errors surfaced to handlers.
var (
	ErrForbidden          = errors.New("property does not belong to owner")
	ErrQuoteMismatch      = errors.New("submitted payment does not match the amount due")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrInvalidLoginCode   = errors.New("invalid or expired login code")
)

// PaymentGateway settles charges with the authority's bank gateway.
type PaymentGateway interface {
	Charge(req gateway.ChargeRequest) (*gateway.Receipt, error)
}

// Store is the persistence surface the service depends on. Satisfied by
// repository.Repository.
type Store interface {
	FindOwnerByPhone(phone string) (*models.Owner, error)
	FindOwnerByID(id int64) (*models.Owner, error)
	UpdateOwnerContact(id int64, email, address string) error
	CreateLoginCode(ownerID int64, codeHash string, expiresAt time.Time) error
	LatestLoginCode(ownerID int64) (*repository.LoginCode, error)
	ConsumeLoginCode(id int64) error
	FindPropertiesByOwner(ownerID int64) ([]models.PropertyRecord, error)
	FindPropertyByID(propertyID string) (*models.PropertyRecord, error)
	FindPlanByProperty(propertyID string) (*models.InstallmentPlan, error)
	FindPlanByID(planID string) (*models.InstallmentPlan, error)
	FindInstallmentsByPlan(planID string) ([]models.Installment, error)
	FindServiceCharges(propertyID string) ([]models.ServiceCharge, error)
	RecordInstallmentPayment(inst *models.Installment) error
	RecordServiceCharges(charges []models.ServiceCharge) error
	SaveDocument(doc *models.Document) error
	ListDocuments(ownerID int64) ([]models.Document, error)
	GetDocument(ownerID int64, kind string) (*models.Document, error)
}

// Service handles business logic
type Service struct {
	repo     Store
	gateway  PaymentGateway
	notifier Notifier
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(repo Store, gw PaymentGateway, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, gateway: gw, log: log, config: cfg}
}

// timeNow is swapped out in tests.
var timeNow = time.Now
