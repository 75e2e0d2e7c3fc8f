package repository

import (
	"context"
	"database/sql"

	"debtster-insights/internal/domain"
)

type AgentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{
		db: db,
	}
}

// List returns collection agents together with their open caseload.
func (r *AgentRepository) List(ctx context.Context) ([]domain.Agent, error) {
	baseQuery := `
		SELECT
			u.full_name,
			u.email,
			u.phone,
			ac.active_debts
		FROM users u
		LEFT JOIN (
			SELECT
				d.agent_id,
				count(*) AS active_debts
			FROM debts d
			JOIN debt_statuses ds ON ds.id = d.status_id
			WHERE ds.name IN ('פעיל', 'בטיפול')
			GROUP BY d.agent_id
		) ac ON ac.agent_id = u.id
		WHERE u.deleted_at IS NULL
		ORDER BY u.full_name
	`

	rows, err := r.db.QueryContext(ctx, baseQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agent

	for rows.Next() {
		var (
			a      domain.Agent
			email  sql.NullString
			phone  sql.NullString
			active sql.NullInt64
		)

		if err := rows.Scan(
			&a.FullName,
			&email,
			&phone,
			&active,
		); err != nil {
			return nil, err
		}

		a.Email = email.String
		a.Phone = phone.String
		a.ActiveDebts = int(active.Int64)

		result = append(result, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
