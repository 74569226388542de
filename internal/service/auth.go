package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uida/property-portal/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const loginCodeTTL = 5 * time.Minute

// Notifier delivers one-time login codes to owners. Wired to the email
// sender in production.
type Notifier interface {
	SendLoginCode(to, name, code string, expiresAt time.Time) error
}

// SetNotifier attaches the login-code notifier.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// RequestLoginCode issues a one-time login code for a registered phone
// number. Only the bcrypt hash is stored.
func (s *Service) RequestLoginCode(phone string) error {
	owner, err := s.repo.FindOwnerByPhone(phone)
	if err != nil {
		return err
	}

	code, err := utils.GenerateLoginCode()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash login code: %w", err)
	}

	expiresAt := time.Now().Add(loginCodeTTL)
	if err := s.repo.CreateLoginCode(owner.ID, string(hash), expiresAt); err != nil {
		return err
	}

	if s.notifier != nil && owner.Email != "" {
		if err := s.notifier.SendLoginCode(owner.Email, owner.Name, code, expiresAt); err != nil {
			// Delivery failure is not fatal; the owner can request again.
			s.log.Errorf("Failed to deliver login code to owner %d: %v", owner.ID, err)
		}
	}

	s.log.Infof("Login code issued for %s", utils.MaskPhone(phone))
	return nil
}

// VerifyLoginCode checks a one-time code and returns a signed session token
func (s *Service) VerifyLoginCode(phone, code string) (string, error) {
	owner, err := s.repo.FindOwnerByPhone(phone)
	if err != nil {
		return "", ErrInvalidLoginCode
	}

	stored, err := s.repo.LatestLoginCode(owner.ID)
	if err != nil {
		return "", ErrInvalidLoginCode
	}
	if time.Now().After(stored.ExpiresAt) {
		return "", ErrInvalidLoginCode
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)); err != nil {
		return "", ErrInvalidLoginCode
	}

	// Generate JWT before burning the code, so a signing failure leaves it
	// usable for a retry.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", owner.ID),
		"phone": owner.Phone,
		"exp":   jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.repo.ConsumeLoginCode(stored.ID); err != nil {
		return "", err
	}

	s.log.Infof("Owner logged in: %s", utils.MaskPhone(owner.Phone))
	return tokenString, nil
}
