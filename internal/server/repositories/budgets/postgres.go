// Package budgets provides the PostgreSQL-backed budget repository.
package budgets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/dbx"
	"github.com/learnbudget/server/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, name, total_amount, period_start, period_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		budget.UserID, budget.Name, budget.TotalAmount, budget.PeriodStart, budget.PeriodEnd).
		Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return budget, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Budget, error) {
	query := `
		SELECT id, user_id, name, total_amount, period_start, period_end, created_at, updated_at
		FROM budgets
		WHERE id = $1
	`
	b := &models.Budget{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.UserID, &b.Name, &b.TotalAmount, &b.PeriodStart, &b.PeriodEnd, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Budget, error) {
	query := `
		SELECT id, user_id, name, total_amount, period_start, period_end, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY period_start DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.TotalAmount, &b.PeriodStart, &b.PeriodEnd, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query := `
		UPDATE budgets
		SET name = $1, total_amount = $2, period_start = $3, period_end = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		budget.Name, budget.TotalAmount, budget.PeriodStart, budget.PeriodEnd, budget.ID).
		Scan(&budget.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return budget, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM budgets WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
