package repository

import (
	"database/sql"
	"fmt"

	"github.com/uida/property-portal/internal/models"
)

// FindPlanByProperty retrieves the installment plan attached to a property.
// Fully-paid-up properties without a plan return ErrNotFound.
func (r *Repository) FindPlanByProperty(propertyID string) (*models.InstallmentPlan, error) {
	return r.findPlan("property_id", propertyID)
}

// FindPlanByID retrieves an installment plan by plan id
func (r *Repository) FindPlanByID(planID string) (*models.InstallmentPlan, error) {
	return r.findPlan("plan_id", planID)
}

func (r *Repository) findPlan(column, value string) (*models.InstallmentPlan, error) {
	plan := &models.InstallmentPlan{}
	query := fmt.Sprintf(`
		SELECT plan_id, property_id, total_due, paid_amount, remaining_balance,
		       principal_per_installment, interest_per_installment, late_fee_per_day,
		       ideal_installment_count, installments_paid, first_due_date,
		       created_at, updated_at
		FROM portal.installment_plans
		WHERE %s = $1`, column)
	err := r.db.QueryRow(query, value).Scan(
		&plan.PlanID, &plan.PropertyID, &plan.TotalDue, &plan.PaidAmount,
		&plan.RemainingBalance, &plan.PrincipalPerInstallment,
		&plan.InterestPerInstallment, &plan.LateFeePerDay,
		&plan.IdealInstallments, &plan.InstallmentsPaid, &plan.FirstDueDate,
		&plan.CreatedAt, &plan.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installment plan: %w", err)
	}
	return plan, nil
}

// FindInstallmentsByPlan lists the paid installments of a plan in payment order
func (r *Repository) FindInstallmentsByPlan(planID string) ([]models.Installment, error) {
	query := `
		SELECT payment_id, plan_id, payment_number, due_date, payment_date,
		       principal_paid, interest_paid, late_fee_paid, total_paid,
		       days_delayed, created_at
		FROM portal.installments
		WHERE plan_id = $1
		ORDER BY payment_number`
	rows, err := r.db.Query(query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []models.Installment
	for rows.Next() {
		var inst models.Installment
		if err := rows.Scan(
			&inst.PaymentID, &inst.PlanID, &inst.PaymentNumber, &inst.DueDate,
			&inst.PaymentDate, &inst.PrincipalPaid, &inst.InterestPaid,
			&inst.LateFeePaid, &inst.TotalPaid, &inst.DaysDelayed, &inst.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read installments: %w", err)
	}
	return installments, nil
}

// FindServiceCharges lists the paid service charges of a property in
// financial-year order
func (r *Repository) FindServiceCharges(propertyID string) ([]models.ServiceCharge, error) {
	query := `
		SELECT charge_id, property_id, financial_year, base_amount, late_fee,
		       total, payment_date, created_at
		FROM portal.service_charges
		WHERE property_id = $1
		ORDER BY financial_year`
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service charges: %w", err)
	}
	defer rows.Close()

	var charges []models.ServiceCharge
	for rows.Next() {
		var sc models.ServiceCharge
		if err := rows.Scan(
			&sc.ChargeID, &sc.PropertyID, &sc.FinancialYear, &sc.BaseAmount,
			&sc.LateFee, &sc.Total, &sc.PaymentDate, &sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan service charge: %w", err)
		}
		charges = append(charges, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read service charges: %w", err)
	}
	return charges, nil
}

// RecordInstallmentPayment inserts a paid installment and advances the plan
// counters in one transaction. Installment rows are append-only.
func (r *Repository) RecordInstallmentPayment(inst *models.Installment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO portal.installments (
			payment_id, plan_id, payment_number, due_date, payment_date,
			principal_paid, interest_paid, late_fee_paid, total_paid, days_delayed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`
	err = tx.QueryRow(insertQuery,
		inst.PaymentID, inst.PlanID, inst.PaymentNumber, inst.DueDate,
		inst.PaymentDate, inst.PrincipalPaid, inst.InterestPaid,
		inst.LateFeePaid, inst.TotalPaid, inst.DaysDelayed,
	).Scan(&inst.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert installment: %w", err)
	}

	updateQuery := `
		UPDATE portal.installment_plans
		SET installments_paid = installments_paid + 1,
		    paid_amount = paid_amount + $2,
		    remaining_balance = GREATEST(remaining_balance - $2, 0),
		    updated_at = CURRENT_TIMESTAMP
		WHERE plan_id = $1`
	if _, err := tx.Exec(updateQuery, inst.PlanID, inst.TotalPaid); err != nil {
		return fmt.Errorf("failed to update installment plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installment payment: %w", err)
	}
	return nil
}

// RecordServiceCharges inserts a batch of paid service charges in one
// transaction. The batch is all-or-nothing.
func (r *Repository) RecordServiceCharges(charges []models.ServiceCharge) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO portal.service_charges (
			charge_id, property_id, financial_year, base_amount, late_fee,
			total, payment_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i := range charges {
		sc := &charges[i]
		if _, err := tx.Exec(query,
			sc.ChargeID, sc.PropertyID, sc.FinancialYear, sc.BaseAmount,
			sc.LateFee, sc.Total, sc.PaymentDate,
		); err != nil {
			return fmt.Errorf("failed to insert service charge for %s: %w", sc.FinancialYear, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit service charges: %w", err)
	}
	return nil
}

// DueReminder is one row of the reminder sweep: a plan with its property and
// owner contact.
type DueReminder struct {
	Plan     models.InstallmentPlan
	Property models.PropertyRecord
	Owner    models.Owner
}

// FindOpenPlans lists plans that still have installments outstanding, with
// owner contact details for reminders.
func (r *Repository) FindOpenPlans() ([]DueReminder, error) {
	query := `
		SELECT pl.plan_id, pl.property_id, pl.principal_per_installment,
		       pl.interest_per_installment, pl.late_fee_per_day,
		       pl.ideal_installment_count, pl.installments_paid, pl.first_due_date,
		       p.scheme_name, p.unit_number,
		       o.id, o.phone, o.name, o.email
		FROM portal.installment_plans pl
		JOIN portal.properties p ON p.property_id = pl.property_id
		JOIN portal.owners o ON o.id = p.owner_id
		WHERE pl.installments_paid < pl.ideal_installment_count`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list open plans: %w", err)
	}
	defer rows.Close()

	var reminders []DueReminder
	for rows.Next() {
		var rem DueReminder
		if err := rows.Scan(
			&rem.Plan.PlanID, &rem.Plan.PropertyID,
			&rem.Plan.PrincipalPerInstallment, &rem.Plan.InterestPerInstallment,
			&rem.Plan.LateFeePerDay, &rem.Plan.IdealInstallments,
			&rem.Plan.InstallmentsPaid, &rem.Plan.FirstDueDate,
			&rem.Property.SchemeName, &rem.Property.UnitNumber,
			&rem.Owner.ID, &rem.Owner.Phone, &rem.Owner.Name, &rem.Owner.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan open plan: %w", err)
		}
		rem.Property.PropertyID = rem.Plan.PropertyID
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read open plans: %w", err)
	}
	return reminders, nil
}
