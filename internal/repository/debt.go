package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"debtster-insights/internal/domain"
)

type DebtsFilter struct {
	CustomerID *string
	StatusID   *int64
	AgentID    *int64
}

type DebtRepository struct {
	db *sql.DB
}

func NewDebtRepository(db *sql.DB) *DebtRepository {
	return &DebtRepository{db: db}
}

func (r *DebtRepository) List(ctx context.Context, f DebtsFilter) ([]domain.DebtRecord, error) {
	baseQuery := `
		SELECT
			d.customer_id,
			d.amount,
			d.paid_amount,
			d.amount - d.paid_amount AS remaining_debt,
			d.due_date,
			d.notes,
			d.created_at,
			d.updated_at,

			dbt.full_name AS customer_name,
			dbt.id_number,
			dbt.phone,

			ds.name AS status_name,

			u.full_name AS agent_name,

			lp.last_payment_date
		FROM debts d
		LEFT JOIN debtors       dbt ON dbt.id = d.debtor_id
		LEFT JOIN debt_statuses ds  ON ds.id  = d.status_id
		LEFT JOIN users         u   ON u.id   = d.agent_id

		LEFT JOIN (
			SELECT
				p.debt_id,
				max(p.paid_at) AS last_payment_date
			FROM payments p
			GROUP BY p.debt_id
		) lp ON lp.debt_id = d.id
	`

	where := []string{"1=1"}
	args := []any{}
	i := 1

	if f.CustomerID != nil {
		where = append(where, fmt.Sprintf("d.customer_id = $%d", i))
		args = append(args, *f.CustomerID)
		i++
	}

	if f.StatusID != nil {
		where = append(where, fmt.Sprintf("d.status_id = $%d", i))
		args = append(args, *f.StatusID)
		i++
	}

	if f.AgentID != nil {
		where = append(where, fmt.Sprintf("d.agent_id = $%d", i))
		args = append(args, *f.AgentID)
		i++
	}

	query := baseQuery + " WHERE " + strings.Join(where, " AND ") + " ORDER BY d.customer_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DebtRecord

	for rows.Next() {
		var (
			rec         domain.DebtRecord
			name        sql.NullString
			idNumber    sql.NullString
			phone       sql.NullString
			status      sql.NullString
			agent       sql.NullString
			notes       sql.NullString
			lastPayment sql.NullTime
		)

		if err := rows.Scan(
			&rec.CustomerID,
			&rec.DebtAmount,
			&rec.PaidAmount,
			&rec.RemainingDebt,
			&rec.DueDate,
			&notes,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&name,
			&idNumber,
			&phone,
			&status,
			&agent,
			&lastPayment,
		); err != nil {
			return nil, err
		}

		rec.CustomerName = name.String
		rec.IDNumber = idNumber.String
		rec.Phone = phone.String
		rec.Status = domain.DebtStatus(status.String)
		rec.CollectionAgent = agent.String
		rec.Notes = notes.String
		if lastPayment.Valid {
			t := lastPayment.Time
			rec.LastPaymentDate = &t
		}

		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *DebtRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.DebtRecord, error) {
	records, err := r.List(ctx, DebtsFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return &records[0], nil
}
