package service

import "github.com/uida/property-portal/internal/models"

// OwnerByPhone looks up the owner profile for a registered phone number.
func (s *Service) OwnerByPhone(phone string) (*models.Owner, error) {
	return s.repo.FindOwnerByPhone(phone)
}

// UpdateContact updates the owner's contact details.
func (s *Service) UpdateContact(ownerID int64, email, address string) (*models.Owner, error) {
	if err := s.repo.UpdateOwnerContact(ownerID, email, address); err != nil {
		return nil, err
	}
	return s.repo.FindOwnerByID(ownerID)
}
