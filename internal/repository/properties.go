package repository

import (
	"database/sql"
	"fmt"

	"github.com/uida/property-portal/internal/models"
)

const propertyColumns = `
	property_id, owner_id, scheme_id, scheme_name, owner_name, unit_number,
	category, floor_type, allotment_date, registration_date,
	allotment_amount, sale_value, created_at`

func scanProperty(row interface{ Scan(...interface{}) error }) (*models.PropertyRecord, error) {
	p := &models.PropertyRecord{}
	var registrationDate sql.NullTime
	err := row.Scan(
		&p.PropertyID, &p.OwnerID, &p.SchemeID, &p.SchemeName, &p.OwnerName,
		&p.UnitNumber, &p.Category, &p.FloorType, &p.AllotmentDate,
		&registrationDate, &p.AllotmentAmount, &p.SaleValue, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if registrationDate.Valid {
		p.RegistrationDate = models.NewDate(registrationDate.Time)
	}
	return p, nil
}

// FindPropertiesByOwner lists all properties allotted to an owner
func (r *Repository) FindPropertiesByOwner(ownerID int64) ([]models.PropertyRecord, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM portal.properties
		WHERE owner_id = $1
		ORDER BY property_id`
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []models.PropertyRecord
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}
	return properties, nil
}

// FindPropertyByID retrieves a property record by its unique id
func (r *Repository) FindPropertyByID(propertyID string) (*models.PropertyRecord, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM portal.properties
		WHERE property_id = $1`
	p, err := scanProperty(r.db.QueryRow(query, propertyID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return p, nil
}
