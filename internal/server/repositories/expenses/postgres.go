// Package expenses provides the PostgreSQL-backed expense repository.
package expenses

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

func (r *PostgresRepository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, budget_id, category_id, amount, description, expense_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		expense.UserID, expense.BudgetID, expense.CategoryID, expense.Amount, expense.Description, expense.ExpenseDate).
		Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return expense, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Expense, error) {
	query := `
		SELECT id, user_id, budget_id, category_id, amount, description, expense_date, created_at
		FROM expenses
		WHERE id = $1
	`
	e := &models.Expense{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.UserID, &e.BudgetID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Expense, error) {
	query := `
		SELECT id, user_id, budget_id, category_id, amount, description, expense_date, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY expense_date DESC
	`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListByBudget(ctx context.Context, budgetID int64) ([]*models.Expense, error) {
	query := `
		SELECT id, user_id, budget_id, category_id, amount, description, expense_date, created_at
		FROM expenses
		WHERE budget_id = $1
		ORDER BY expense_date DESC
	`
	return r.list(ctx, query, budgetID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM expenses WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.BudgetID, &e.CategoryID, &e.Amount, &e.Description, &e.ExpenseDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
