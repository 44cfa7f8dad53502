package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnbudget/server/internal/common"
	"github.com/learnbudget/server/internal/dbx"
	"github.com/learnbudget/server/internal/server/models"
	"github.com/learnbudget/server/internal/server/repositories/repomanager"
)

// ExpenseService records expenses and keeps the matching budget
// allocation's spent amount in step, inside one transaction.
type ExpenseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewExpenseService(db *sql.DB, m repomanager.RepositoryManager) *ExpenseService {
	return &ExpenseService{db: db, repomanager: m}
}

// Create verifies the target budget belongs to the user, then inserts the
// expense and bumps spent_amount on the budget/category allocation in the
// same transaction. Budgets without an allocation for the category simply
// don't track the spend.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	budget, err := s.repomanager.Budgets(s.db).GetByID(ctx, expense.BudgetID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding budget: %w", err)
	}
	if budget.UserID != expense.UserID {
		return nil, common.ErrorUnauthorized
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Expenses(tx).Create(ctx, expense); err != nil {
			return err
		}
		return s.repomanager.Allocations(tx).AddSpent(ctx, expense.BudgetID, expense.CategoryID, expense.Amount)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating expense: %w", err)
	}
	return expense, nil
}

func (s *ExpenseService) Get(ctx context.Context, id, userID int64) (*models.Expense, error) {
	return s.ownedExpense(ctx, id, userID)
}

func (s *ExpenseService) ListByUser(ctx context.Context, userID int64) ([]*models.Expense, error) {
	return s.repomanager.Expenses(s.db).ListByUser(ctx, userID)
}

// Delete removes the expense and reverses its contribution to the
// allocation's spent amount, transactionally.
func (s *ExpenseService) Delete(ctx context.Context, id, userID int64) error {
	expense, err := s.ownedExpense(ctx, id, userID)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Expenses(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Allocations(tx).AddSpent(ctx, expense.BudgetID, expense.CategoryID, -expense.Amount)
	})
	if err != nil {
		return fmt.Errorf("error deleting expense: %w", err)
	}
	return nil
}

func (s *ExpenseService) ownedExpense(ctx context.Context, id, userID int64) (*models.Expense, error) {
	e, err := s.repomanager.Expenses(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error finding expense: %w", err)
	}
	if e.UserID != userID {
		return nil, common.ErrorUnauthorized
	}
	return e, nil
}
