package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/uida/property-portal/internal/models"
)

// FindOwnerByPhone retrieves an owner by registered phone number
func (r *Repository) FindOwnerByPhone(phone string) (*models.Owner, error) {
	owner := &models.Owner{}
	query := `
		SELECT id, phone, name, guardian_name, email, address, created_at
		FROM portal.owners
		WHERE phone = $1`
	err := r.db.QueryRow(query, phone).
		Scan(&owner.ID, &owner.Phone, &owner.Name, &owner.GuardianName, &owner.Email, &owner.Address, &owner.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return owner, nil
}

// FindOwnerByID retrieves an owner by id
func (r *Repository) FindOwnerByID(id int64) (*models.Owner, error) {
	owner := &models.Owner{}
	query := `
		SELECT id, phone, name, guardian_name, email, address, created_at
		FROM portal.owners
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&owner.ID, &owner.Phone, &owner.Name, &owner.GuardianName, &owner.Email, &owner.Address, &owner.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}
	return owner, nil
}

// UpdateOwnerContact updates the mutable profile fields of an owner
func (r *Repository) UpdateOwnerContact(id int64, email, address string) error {
	query := `
		UPDATE portal.owners
		SET email = $2, address = $3
		WHERE id = $1`
	res, err := r.db.Exec(query, id, email, address)
	if err != nil {
		return fmt.Errorf("failed to update owner: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// LoginCode is a stored one-time login code challenge.
type LoginCode struct {
	ID        int64
	OwnerID   int64
	CodeHash  string
	ExpiresAt time.Time
	Consumed  bool
}

// CreateLoginCode stores a hashed one-time login code for an owner
func (r *Repository) CreateLoginCode(ownerID int64, codeHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO portal.login_codes (owner_id, code_hash, expires_at)
		VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(query, ownerID, codeHash, expiresAt); err != nil {
		return fmt.Errorf("failed to create login code: %w", err)
	}
	return nil
}

// LatestLoginCode retrieves the most recent unconsumed login code for an owner
func (r *Repository) LatestLoginCode(ownerID int64) (*LoginCode, error) {
	code := &LoginCode{}
	query := `
		SELECT id, owner_id, code_hash, expires_at, consumed
		FROM portal.login_codes
		WHERE owner_id = $1 AND NOT consumed
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRow(query, ownerID).
		Scan(&code.ID, &code.OwnerID, &code.CodeHash, &code.ExpiresAt, &code.Consumed)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find login code: %w", err)
	}
	return code, nil
}

// ConsumeLoginCode marks a login code as used
func (r *Repository) ConsumeLoginCode(id int64) error {
	query := `UPDATE portal.login_codes SET consumed = TRUE WHERE id = $1`
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to consume login code: %w", err)
	}
	return nil
}
