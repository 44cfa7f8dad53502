package allocations

import (
	"context"

	"github.com/learnbudget/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, allocation *models.BudgetAllocation) (*models.BudgetAllocation, error)
	ListByBudget(ctx context.Context, budgetID int64) ([]*models.BudgetAllocation, error)
	// AddSpent increments spent_amount on the allocation matching the
	// budget/category pair. A missing allocation is not an error; the
	// expense is simply untracked.
	AddSpent(ctx context.Context, budgetID, categoryID int64, amount float64) error
	Delete(ctx context.Context, id int64) error
}
