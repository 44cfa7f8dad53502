package receipts

import (
	"context"

	"github.com/learnbudget/server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error)
	GetByID(ctx context.Context, id int64) (*models.Receipt, error)
	GetByExpense(ctx context.Context, expenseID int64) (*models.Receipt, error)
	Delete(ctx context.Context, id int64) error
}
