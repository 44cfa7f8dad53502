// Package allocations provides the PostgreSQL-backed repository for budget
// allocations (per-category slices of a budget with spent tracking).
package allocations

import (
	"context"
	"fmt"

	"github.com/learnbudget/server/internal/dbx"
	"github.com/learnbudget/server/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, allocation *models.BudgetAllocation) (*models.BudgetAllocation, error) {
	query := `
		INSERT INTO budget_allocations (budget_id, category_id, allocated_amount, spent_amount)
		VALUES ($1, $2, $3, 0)
		RETURNING id, spent_amount, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		allocation.BudgetID, allocation.CategoryID, allocation.AllocatedAmount).
		Scan(&allocation.ID, &allocation.SpentAmount, &allocation.CreatedAt, &allocation.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return allocation, nil
}

func (r *PostgresRepository) ListByBudget(ctx context.Context, budgetID int64) ([]*models.BudgetAllocation, error) {
	query := `
		SELECT id, budget_id, category_id, allocated_amount, spent_amount, created_at, updated_at
		FROM budget_allocations
		WHERE budget_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.BudgetAllocation
	for rows.Next() {
		var a models.BudgetAllocation
		if err := rows.Scan(&a.ID, &a.BudgetID, &a.CategoryID, &a.AllocatedAmount, &a.SpentAmount, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) AddSpent(ctx context.Context, budgetID, categoryID int64, amount float64) error {
	query := `
		UPDATE budget_allocations
		SET spent_amount = spent_amount + $1, updated_at = now()
		WHERE budget_id = $2 AND category_id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, amount, budgetID, categoryID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM budget_allocations WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
