package expenses

import (
	"context"

	"github.com/learnbudget/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	GetByID(ctx context.Context, id int64) (*models.Expense, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Expense, error)
	ListByBudget(ctx context.Context, budgetID int64) ([]*models.Expense, error)
	Delete(ctx context.Context, id int64) error
}
