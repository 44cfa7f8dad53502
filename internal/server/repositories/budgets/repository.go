package budgets

import (
	"context"

	"github.com/learnbudget/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	GetByID(ctx context.Context, id int64) (*models.Budget, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Delete(ctx context.Context, id int64) error
}
